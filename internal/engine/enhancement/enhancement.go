// Package enhancement implements the optional native-library step of a test expansion.
package enhancement

import (
	"context"
	"errors"
	"slices"
	"strings"

	"go.trai.ch/rulegen/internal/core/domain"
	"go.trai.ch/rulegen/internal/core/ports"
	"go.trai.ch/zerr"
)

// Mode selects what an enhancement does.
type Mode int

const (
	// ModeDisabled leaves deps and environment untouched.
	ModeDisabled Mode = iota
	// ModeNativeLibraries links native libraries found in the dependency closure.
	ModeNativeLibraries
)

func (m Mode) String() string {
	switch m {
	case ModeNativeLibraries:
		return "native-libraries"
	default:
		return "disabled"
	}
}

// Enhancement is the strategy chosen for one expansion.
type Enhancement struct {
	mode      Mode
	whitelist []domain.TargetIdentity
}

// Select picks the enhancement for a test. An empty whitelist selects every
// native library of the closure; a non-empty one restricts the selection to the
// listed identities.
func Select(requested bool, whitelist []domain.TargetIdentity) Enhancement {
	if !requested {
		return Enhancement{mode: ModeDisabled}
	}
	return Enhancement{mode: ModeNativeLibraries, whitelist: slices.Clone(whitelist)}
}

// Mode returns the selected mode.
func (e Enhancement) Mode() Mode {
	return e.mode
}

// Whitelist returns the identities the enhancement is restricted to.
func (e Enhancement) Whitelist() []domain.TargetIdentity {
	return slices.Clone(e.whitelist)
}

// Result is the outcome of applying an enhancement.
type Result struct {
	// Deps is the input deps followed by any additions, without repeats.
	Deps []domain.TargetIdentity
	// Env holds the runtime environment the test rule must receive. Never nil.
	Env map[string]string
}

// Enhancer applies enhancements against a rule registry.
type Enhancer struct {
	registry ports.RuleRegistry
	platform ports.NativePlatform
}

// New creates an Enhancer.
func New(registry ports.RuleRegistry, platform ports.NativePlatform) *Enhancer {
	return &Enhancer{
		registry: registry,
		platform: platform,
	}
}

// Apply runs the enhancement over deps. It only ever adds dependencies.
func (h *Enhancer) Apply(ctx context.Context, e Enhancement, deps []domain.TargetIdentity) (Result, error) {
	if e.mode != ModeNativeLibraries {
		return Result{Deps: slices.Clone(deps), Env: map[string]string{}}, nil
	}

	allowed := make(map[domain.TargetIdentity]bool, len(e.whitelist))
	for _, id := range e.whitelist {
		if _, err := h.registry.Require(ctx, id); err != nil {
			return Result{}, zerr.With(zerr.Wrap(err, "whitelisted native library"), "whitelisted", id.String())
		}
		allowed[id] = true
	}

	selected, err := h.collectNativeLibraries(ctx, deps, func(id domain.TargetIdentity) bool {
		return len(allowed) == 0 || allowed[id]
	})
	if err != nil {
		return Result{}, err
	}

	closure := domain.NewDependencyClosure(deps...)
	var searchPath []string
	for _, rule := range selected {
		payload, _ := rule.Payload().(domain.NativeLibraryPayload)
		closure = closure.Append(rule.Target())
		closure = closure.Append(payload.LinkDeps...)
		if payload.SearchPath != "" && !slices.Contains(searchPath, payload.SearchPath) {
			searchPath = append(searchPath, payload.SearchPath)
		}
	}

	env := map[string]string{}
	if len(searchPath) > 0 {
		env[h.platform.LibrarySearchPathVar()] = strings.Join(searchPath, ":")
	}

	return Result{Deps: closure.Targets(), Env: env}, nil
}

// collectNativeLibraries walks the transitive closure of deps depth-first and returns
// the native library rules accepted by keep, in discovery order. Identities without a
// registered rule are skipped here; the closure builder reports them.
func (h *Enhancer) collectNativeLibraries(
	ctx context.Context,
	deps []domain.TargetIdentity,
	keep func(domain.TargetIdentity) bool,
) ([]*domain.BuildRule, error) {
	var selected []*domain.BuildRule
	visited := make(map[domain.TargetIdentity]bool)

	var visit func(id domain.TargetIdentity) error
	visit = func(id domain.TargetIdentity) error {
		if visited[id] {
			return nil
		}
		visited[id] = true

		rule, err := h.registry.Require(ctx, id)
		if errors.Is(err, domain.ErrUnresolvedDependency) {
			return nil
		}
		if err != nil {
			return err
		}

		if rule.Kind() == domain.RuleKindNativeLibrary && keep(id) {
			selected = append(selected, rule)
		}

		for dep := range rule.Deps().All() {
			if err := visit(dep); err != nil {
				return err
			}
		}
		for _, dep := range rule.ExportedDeps() {
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}

	for _, id := range deps {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return selected, nil
}
