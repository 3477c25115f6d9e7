// Package expander expands a test target description into its build rules.
package expander

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.trai.ch/rulegen/internal/core/domain"
	"go.trai.ch/rulegen/internal/core/ports"
	"go.trai.ch/rulegen/internal/engine/enhancement"
	"go.trai.ch/zerr"
)

// Expansion is the result of expanding one test target.
type Expansion struct {
	// Test is the primary result, registered under the base identity.
	Test *domain.BuildRule
	// Library is the compiled test library rule.
	Library *domain.BuildRule
	// ABI is the interface stub rule of the library.
	ABI *domain.BuildRule
	// States lists every state the expansion went through, in order.
	States []State
}

// State returns the last state the expansion reached.
func (x *Expansion) State() State {
	if len(x.States) == 0 {
		return StateStart
	}
	return x.States[len(x.States)-1]
}

// Rules returns the library, test and ABI rules in registration order.
func (x *Expansion) Rules() []*domain.BuildRule {
	return []*domain.BuildRule{x.Library, x.Test, x.ABI}
}

// Expander turns test descriptions into registered build rules.
// An Expander is safe for concurrent use; one expansion runs sequentially.
type Expander struct {
	registry       ports.RuleRegistry
	toolchain      ports.Toolchain
	fs             ports.ProjectFilesystem
	enhancer       *enhancement.Enhancer
	root           string
	defaultTimeout *time.Duration
}

// Option configures an Expander.
type Option func(*Expander)

// WithProjectRoot sets the root resource paths are validated against.
func WithProjectRoot(root string) Option {
	return func(e *Expander) {
		e.root = root
	}
}

// WithDefaultTimeout sets the timeout used when a test does not override it.
func WithDefaultTimeout(d *time.Duration) Option {
	return func(e *Expander) {
		e.defaultTimeout = d
	}
}

// New creates an Expander.
func New(
	registry ports.RuleRegistry,
	toolchain ports.Toolchain,
	fs ports.ProjectFilesystem,
	enhancer *enhancement.Enhancer,
	opts ...Option,
) *Expander {
	e := &Expander{
		registry:  registry,
		toolchain: toolchain,
		fs:        fs,
		enhancer:  enhancer,
		root:      ".",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ImplicitDeps returns the deps every test needs besides its declared ones:
// the runtime library, then the compiler if one is configured.
// It has no side effects and does not consult the registry.
func (e *Expander) ImplicitDeps(_ domain.TargetIdentity, _ domain.TestArg) []domain.TargetIdentity {
	deps := []domain.TargetIdentity{e.toolchain.LibraryTarget()}
	if compiler, ok := e.toolchain.CompilerTarget(); ok {
		deps = append(deps, compiler)
	}
	return deps
}

// Expand constructs and registers the library, test and ABI rules of a test target.
// Rules that are already registered are reused, so expanding a target twice yields
// the same rule instances.
func (e *Expander) Expand(ctx context.Context, target domain.TargetIdentity, arg domain.TestArg) (*Expansion, error) {
	x := &expansion{
		Expander: e,
		target:   target,
		arg:      arg,
		result:   &Expansion{States: []State{StateStart}},
	}

	steps := []func(context.Context) error{
		x.resolveImplicitDeps,
		x.enhance,
		x.buildLibrary,
		x.buildTest,
		x.buildABI,
		func(context.Context) error { return nil },
	}

	for _, step := range steps {
		if err := x.advance(ctx, step); err != nil {
			return nil, err
		}
	}

	return x.result, nil
}

// expansion holds the working state of one Expand call.
type expansion struct {
	*Expander

	target domain.TargetIdentity
	arg    domain.TestArg
	result *Expansion

	augmentedDeps []domain.TargetIdentity
	enhanced      enhancement.Result
}

// advance runs step and moves to the next state.
func (x *expansion) advance(ctx context.Context, step func(context.Context) error) error {
	from := x.result.State()
	to := from + 1

	if ctx.Err() != nil {
		err := zerr.Wrap(domain.ErrAborted, "expansion cancelled")
		err = zerr.With(err, "target", x.target.String())
		return zerr.With(err, "state", from.String())
	}

	if err := step(ctx); err != nil {
		return err
	}

	x.result.States = append(x.result.States, to)
	if v, ok := ports.VertexFromContext(ctx); ok {
		v.Log(domain.LogLevelDebug, fmt.Sprintf("%s: %s", x.target, to))
	}
	return nil
}

func (x *expansion) resolveImplicitDeps(ctx context.Context) error {
	for _, id := range x.ImplicitDeps(x.target, x.arg) {
		if _, err := x.registry.Require(ctx, id); err != nil {
			return zerr.With(zerr.Wrap(err, "implicit toolchain dependency is missing"), "target", x.target.String())
		}
	}

	x.augmentedDeps = domain.NewDependencyClosure(x.arg.Library.Deps...).
		Append(x.toolchain.LibraryTarget()).
		Targets()
	return nil
}

func (x *expansion) enhance(ctx context.Context) error {
	selected := enhancement.Select(x.arg.EffectiveUseNativeLibraries(), x.arg.NativeLibraryWhitelist)

	res, err := x.enhancer.Apply(ctx, selected, x.augmentedDeps)
	if err != nil {
		return zerr.With(err, "target", x.target.String())
	}
	x.enhanced = res
	return nil
}

func (x *expansion) libraryTarget() domain.TargetIdentity {
	return domain.Derive(x.target, domain.FlavorCompiledTestLibrary)
}

func (x *expansion) abiTarget() domain.TargetIdentity {
	return domain.Derive(x.target, domain.FlavorABI)
}

func (x *expansion) buildLibrary(ctx context.Context) error {
	id := x.libraryTarget()

	rule, err := x.registry.ComputeIfAbsent(ctx, id, func(ctx context.Context) (*domain.BuildRule, error) {
		lib := x.arg.Library

		resources, err := x.validateResources(id, lib.Resources)
		if err != nil {
			return nil, err
		}

		var toolDeps []domain.TargetIdentity
		compiler, hasCompiler := x.toolchain.CompilerTarget()
		if hasCompiler {
			toolDeps = append(toolDeps, compiler)
		}

		deps, err := x.resolveClosure(ctx, id, x.enhanced.Deps, lib.ProvidedDeps, toolDeps)
		if err != nil {
			return nil, err
		}

		payload := domain.LibraryPayload{
			Sources:       slices.Clone(lib.Srcs),
			Resources:     resources,
			CompilerFlags: slices.Concat(x.toolchain.CompilerFlags(), lib.ExtraArguments),
			AbiJar:        domain.SourcePath{Target: x.abiTarget()},
			ResourcesRoot: lib.ResourcesRoot,
			ManifestFile:  lib.ManifestFile,
			MavenCoords:   lib.MavenCoords,
		}
		if hasCompiler {
			payload.Compiler = compiler
		}

		return domain.NewBuildRule(id, deps, nil, payload), nil
	})
	if err != nil {
		return err
	}

	x.result.Library = rule
	return nil
}

func (x *expansion) buildTest(ctx context.Context) error {
	rule, err := x.registry.ComputeIfAbsent(ctx, x.target, func(context.Context) (*domain.BuildRule, error) {
		arg := x.arg
		payload := domain.TestPayload{
			Library:        x.result.Library.OutputPath(),
			TestType:       arg.EffectiveTestType(),
			Labels:         slices.Clone(arg.Labels),
			Contacts:       slices.Clone(arg.Contacts),
			VMArgs:         slices.Clone(arg.VMArgs),
			ForkMode:       arg.EffectiveForkMode(),
			Timeout:        domain.ResolveTimeout(arg.TestRuleTimeout, x.defaultTimeout),
			StdOutLogLevel: arg.StdOutLogLevel,
			StdErrLogLevel: arg.StdErrLogLevel,
			Env:            domain.MergeEnvironment(x.enhanced.Env, arg.Env),
			RunSeparately:  arg.EffectiveRunTestSeparately(),
		}
		return domain.NewBuildRule(x.target, domain.NewDependencyClosure(x.result.Library.Target()), nil, payload), nil
	})
	if err != nil {
		return err
	}

	x.result.Test = rule
	return nil
}

func (x *expansion) buildABI(ctx context.Context) error {
	id := x.abiTarget()

	rule, err := x.registry.ComputeIfAbsent(ctx, id, func(context.Context) (*domain.BuildRule, error) {
		library := x.result.Library
		return domain.NewBuildRule(
			id,
			domain.NewDependencyClosure(library.Target()),
			nil,
			domain.ABIPayload{Input: library.OutputPath()},
		), nil
	})
	if err != nil {
		return err
	}

	x.result.ABI = rule
	return nil
}
