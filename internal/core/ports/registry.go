// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/rulegen/internal/core/domain"
)

// BuildFunc constructs the rule for an identity that is not registered yet.
type BuildFunc func(ctx context.Context) (*domain.BuildRule, error)

// RuleRegistry maps target identities to constructed rules for one build invocation.
// A given identity is constructed at most once, even under concurrent use.
//
//go:generate go run go.uber.org/mock/mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type RuleRegistry interface {
	// Get returns the completed rule for id without waiting.
	Get(id domain.TargetIdentity) (*domain.BuildRule, bool)

	// Require returns the rule for id, waiting for an in-flight construction of that
	// identity to finish. It fails with domain.ErrUnresolvedDependency if no rule exists
	// and with domain.ErrAborted if ctx is done while waiting.
	Require(ctx context.Context, id domain.TargetIdentity) (*domain.BuildRule, error)

	// ComputeIfAbsent returns the rule registered under id, calling build to construct it
	// if no rule exists yet. Concurrent callers for the same id share one construction.
	ComputeIfAbsent(ctx context.Context, id domain.TargetIdentity, build BuildFunc) (*domain.BuildRule, error)

	// Register stores an already constructed rule. Registering an identical rule again
	// returns the existing instance; a different rule fails with domain.ErrDuplicateRegistration.
	Register(rule *domain.BuildRule) (*domain.BuildRule, error)

	// Snapshot returns every completed rule in identity order.
	Snapshot() []*domain.BuildRule
}
