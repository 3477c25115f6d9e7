// Package registry implements the per-invocation rule registry.
package registry

import (
	"context"
	"slices"
	"sync"

	"go.trai.ch/rulegen/internal/core/domain"
	"go.trai.ch/rulegen/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var _ ports.RuleRegistry = (*Registry)(nil)

// Registry stores constructed rules by identity.
// Construction of one identity is coordinated through a singleflight group, so
// concurrent requests for the same identity share a single build while requests
// for unrelated identities never wait on each other.
type Registry struct {
	rules   sync.Map // domain.TargetIdentity -> *domain.BuildRule
	pending sync.Map // domain.TargetIdentity -> chan struct{}

	requestGroup singleflight.Group
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Get returns the completed rule for id without waiting.
func (r *Registry) Get(id domain.TargetIdentity) (*domain.BuildRule, bool) {
	v, ok := r.rules.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*domain.BuildRule), true
}

// Require returns the rule for id, waiting for an in-flight construction of it.
func (r *Registry) Require(ctx context.Context, id domain.TargetIdentity) (*domain.BuildRule, error) {
	if rule, ok := r.Get(id); ok {
		return rule, nil
	}

	if v, inFlight := r.pending.Load(id); inFlight {
		select {
		case <-v.(chan struct{}):
		case <-ctx.Done():
			return nil, aborted(ctx, id)
		}
		if rule, ok := r.Get(id); ok {
			return rule, nil
		}
	}

	return nil, zerr.With(zerr.Wrap(domain.ErrUnresolvedDependency, "no rule registered for "+id.String()), "dependency", id.String())
}

// ComputeIfAbsent returns the rule registered under id, constructing it with build if needed.
// If ctx is done while waiting for the construction, it fails with domain.ErrAborted.
// A failed construction is not memoized; a later call retries it.
func (r *Registry) ComputeIfAbsent(
	ctx context.Context,
	id domain.TargetIdentity,
	build ports.BuildFunc,
) (*domain.BuildRule, error) {
	if rule, ok := r.Get(id); ok {
		return rule, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, aborted(ctx, id)
	}

	ch := r.requestGroup.DoChan(id.Key(), func() (any, error) {
		// Another flight may have completed between the fast path and this one.
		if rule, ok := r.Get(id); ok {
			return rule, nil
		}

		done := make(chan struct{})
		r.pending.Store(id, done)
		defer func() {
			r.pending.Delete(id)
			close(done)
		}()

		rule, err := build(ctx)
		if err != nil {
			return nil, err
		}
		if rule.Target() != id {
			return nil, zerr.With(
				zerr.With(zerr.Wrap(domain.ErrDuplicateRegistration, "constructed rule has a different identity"), "target", id.String()),
				"constructed", rule.Target().String(),
			)
		}
		return r.store(rule)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.BuildRule), nil
	case <-ctx.Done():
		return nil, aborted(ctx, id)
	}
}

// Register stores an already constructed rule.
func (r *Registry) Register(rule *domain.BuildRule) (*domain.BuildRule, error) {
	return r.store(rule)
}

// Snapshot returns every completed rule in identity order.
func (r *Registry) Snapshot() []*domain.BuildRule {
	var rules []*domain.BuildRule
	r.rules.Range(func(_, v any) bool {
		rules = append(rules, v.(*domain.BuildRule))
		return true
	})
	slices.SortFunc(rules, func(a, b *domain.BuildRule) int {
		return domain.CompareTargets(a.Target(), b.Target())
	})
	return rules
}

// store inserts rule unless its identity is already taken.
// An existing rule with the same key wins; a different one is an internal consistency error.
func (r *Registry) store(rule *domain.BuildRule) (*domain.BuildRule, error) {
	existing, loaded := r.rules.LoadOrStore(rule.Target(), rule)
	if !loaded {
		return rule, nil
	}

	prev := existing.(*domain.BuildRule)
	if prev == rule {
		return prev, nil
	}

	prevKey, newKey := domain.RuleKey(prev), domain.RuleKey(rule)
	if prevKey == newKey {
		return prev, nil
	}

	err := zerr.Wrap(domain.ErrDuplicateRegistration, "rule differs from the registered one")
	err = zerr.With(err, "target", rule.Target().String())
	err = zerr.With(err, "registered_key", prevKey)
	return nil, zerr.With(err, "rejected_key", newKey)
}

func aborted(ctx context.Context, id domain.TargetIdentity) error {
	err := zerr.Wrap(domain.ErrAborted, "waiting for rule construction")
	err = zerr.With(err, "target", id.String())
	return zerr.With(err, "cause", context.Cause(ctx).Error())
}
