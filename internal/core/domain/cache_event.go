package domain

import "time"

// CacheOutcome is the result of an artifact cache operation.
type CacheOutcome string

const (
	// CacheOutcomeHit means the stored entry matched.
	CacheOutcomeHit CacheOutcome = "hit"
	// CacheOutcomeMiss means no usable entry was found.
	CacheOutcomeMiss CacheOutcome = "miss"
	// CacheOutcomeStored means a new entry was written.
	CacheOutcomeStored CacheOutcome = "stored"
	// CacheOutcomeError means the operation failed.
	CacheOutcomeError CacheOutcome = "error"
)

// CacheEvent describes one finished artifact cache operation.
type CacheEvent struct {
	BuildID   string        `json:"build_id"`
	Operation string        `json:"operation"`
	Target    string        `json:"target"`
	RuleKey   string        `json:"rule_key,omitempty"`
	Outcome   CacheOutcome  `json:"outcome"`
	Duration  time.Duration `json:"duration_ns"`
	Size      int64         `json:"size"`
	Timestamp int64         `json:"timestamp"`
}
