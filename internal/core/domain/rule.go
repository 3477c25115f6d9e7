package domain

import (
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// RuleKind identifies the kind of a build rule.
type RuleKind string

const (
	// RuleKindLibrary compiles sources into a library artifact.
	RuleKindLibrary RuleKind = "library"
	// RuleKindABI computes an interface stub from a library artifact.
	RuleKindABI RuleKind = "abi"
	// RuleKindTest runs tests against a compiled library.
	RuleKindTest RuleKind = "test"
	// RuleKindPrebuiltLibrary wraps an already built library artifact.
	RuleKindPrebuiltLibrary RuleKind = "prebuilt_library"
	// RuleKindNativeLibrary wraps a native shared library.
	RuleKindNativeLibrary RuleKind = "native_library"
)

// ParseRuleKind converts a declared rule kind into a RuleKind.
// Only kinds that can be declared directly in a workspace are accepted.
func ParseRuleKind(s string) (RuleKind, error) {
	switch RuleKind(s) {
	case RuleKindPrebuiltLibrary:
		return RuleKindPrebuiltLibrary, nil
	case RuleKindNativeLibrary:
		return RuleKindNativeLibrary, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidRuleKind, "unknown rule kind"), "kind", s)
	}
}

// SourcePath is a handle to the output artifact of the rule named by Target.
// It is resolved through the registry and may name a rule that is registered later.
type SourcePath struct {
	Target TargetIdentity
}

func (p SourcePath) String() string {
	return p.Target.String()
}

// RulePayload holds the kind-specific data of a build rule.
type RulePayload interface {
	Kind() RuleKind
	isRulePayload()
}

// LibraryPayload describes how a library is compiled.
type LibraryPayload struct {
	Sources       []string
	Resources     []string
	CompilerFlags []string
	Compiler      TargetIdentity
	AbiJar        SourcePath
	ResourcesRoot string
	ManifestFile  string
	MavenCoords   string
}

// Kind implements RulePayload.
func (LibraryPayload) Kind() RuleKind { return RuleKindLibrary }
func (LibraryPayload) isRulePayload() {}

// ABIPayload describes an interface stub computation.
type ABIPayload struct {
	Input SourcePath
}

// Kind implements RulePayload.
func (ABIPayload) Kind() RuleKind { return RuleKindABI }
func (ABIPayload) isRulePayload() {}

// TestPayload describes how a test rule runs.
type TestPayload struct {
	Library        SourcePath
	TestType       TestType
	Labels         []string
	Contacts       []string
	VMArgs         []string
	ForkMode       ForkMode
	Timeout        Timeout
	StdOutLogLevel *LogLevel
	StdErrLogLevel *LogLevel
	Env            map[string]string
	RunSeparately  bool
}

// Kind implements RulePayload.
func (TestPayload) Kind() RuleKind { return RuleKindTest }
func (TestPayload) isRulePayload() {}

// PrebuiltPayload describes a library artifact that already exists on disk.
type PrebuiltPayload struct {
	BinaryJar string
}

// Kind implements RulePayload.
func (PrebuiltPayload) Kind() RuleKind { return RuleKindPrebuiltLibrary }
func (PrebuiltPayload) isRulePayload() {}

// NativeLibraryPayload describes a native shared library and what it needs at link time.
type NativeLibraryPayload struct {
	LibraryName string
	SearchPath  string
	LinkDeps    []TargetIdentity
}

// Kind implements RulePayload.
func (NativeLibraryPayload) Kind() RuleKind { return RuleKindNativeLibrary }
func (NativeLibraryPayload) isRulePayload() {}

// BuildRule is a node of the build graph. It is immutable once constructed.
type BuildRule struct {
	target       TargetIdentity
	deps         DependencyClosure
	exportedDeps []TargetIdentity
	payload      RulePayload
}

// NewBuildRule creates a rule. Slices and maps reachable from the payload must not be
// modified by the caller afterwards.
func NewBuildRule(target TargetIdentity, deps DependencyClosure, exported []TargetIdentity, payload RulePayload) *BuildRule {
	return &BuildRule{
		target:       target,
		deps:         deps,
		exportedDeps: slices.Clone(exported),
		payload:      payload,
	}
}

// Target returns the identity of the rule.
func (r *BuildRule) Target() TargetIdentity {
	return r.target
}

// Deps returns the dependency closure of the rule.
func (r *BuildRule) Deps() DependencyClosure {
	return r.deps
}

// ExportedDeps returns the deps the rule re-exports to its dependents.
func (r *BuildRule) ExportedDeps() []TargetIdentity {
	return slices.Clone(r.exportedDeps)
}

// Payload returns the kind-specific data of the rule.
func (r *BuildRule) Payload() RulePayload {
	return r.payload
}

// Kind returns the kind of the rule.
func (r *BuildRule) Kind() RuleKind {
	if r.payload == nil {
		return ""
	}
	return r.payload.Kind()
}

// OutputPath returns the handle to the artifact the rule produces.
func (r *BuildRule) OutputPath() SourcePath {
	return SourcePath{Target: r.target}
}

// Env returns a copy of the runtime environment of a test rule, or nil for other kinds.
func (r *BuildRule) Env() map[string]string {
	if p, ok := r.payload.(TestPayload); ok {
		return maps.Clone(p.Env)
	}
	return nil
}
