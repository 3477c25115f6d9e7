package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// Timeout is the time budget of a test rule. The zero value is unlimited.
type Timeout struct {
	d       time.Duration
	limited bool
}

// Unlimited returns a timeout that never expires.
func Unlimited() Timeout {
	return Timeout{}
}

// Limit returns a timeout bounded by d.
func Limit(d time.Duration) Timeout {
	return Timeout{d: d, limited: true}
}

// ResolveTimeout picks the explicit override if set, else the fallback, else unlimited.
func ResolveTimeout(override, fallback *time.Duration) Timeout {
	switch {
	case override != nil:
		return Limit(*override)
	case fallback != nil:
		return Limit(*fallback)
	default:
		return Unlimited()
	}
}

// ParseTimeout parses a Go duration string. An empty string yields nil.
func ParseTimeout(s string) (*time.Duration, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(ErrInvalidTimeout, err.Error()), "timeout", s)
	}
	if d < 0 {
		return nil, zerr.With(zerr.Wrap(ErrInvalidTimeout, "timeout must not be negative"), "timeout", s)
	}
	return &d, nil
}

// Duration returns the bound and whether the timeout is limited at all.
func (t Timeout) Duration() (time.Duration, bool) {
	return t.d, t.limited
}

// IsUnlimited reports whether the timeout never expires.
func (t Timeout) IsUnlimited() bool {
	return !t.limited
}

func (t Timeout) String() string {
	if !t.limited {
		return "unlimited"
	}
	return t.d.String()
}
