package domain

import (
	"slices"
	"time"
)

// DefaultLibrarySearchPathVar is the dynamic linker search path variable used when
// the workspace does not name one.
const DefaultLibrarySearchPathVar = "LD_LIBRARY_PATH"

// ToolchainConfig names the implicit dependencies every test expansion needs.
type ToolchainConfig struct {
	Library     TargetIdentity
	Compiler    TargetIdentity
	HasCompiler bool
	Flags       []string
}

// LibraryTarget returns the runtime library every test links against.
func (c ToolchainConfig) LibraryTarget() TargetIdentity {
	return c.Library
}

// CompilerTarget returns the compiler tool rule, if one is configured.
func (c ToolchainConfig) CompilerTarget() (TargetIdentity, bool) {
	return c.Compiler, c.HasCompiler
}

// CompilerFlags returns the flags passed to every compilation.
func (c ToolchainConfig) CompilerFlags() []string {
	return slices.Clone(c.Flags)
}

// PlatformConfig describes the native platform tests run on.
type PlatformConfig struct {
	SearchPathVar string
}

// LibrarySearchPathVar returns the dynamic linker search path variable.
func (c PlatformConfig) LibrarySearchPathVar() string {
	if c.SearchPathVar == "" {
		return DefaultLibrarySearchPathVar
	}
	return c.SearchPathVar
}

// TestDeclaration binds a test argument to the target identity it was declared under.
type TestDeclaration struct {
	Target TargetIdentity
	Arg    TestArg
}

// Workspace is the fully parsed content of a workspace file.
type Workspace struct {
	Root               string
	Toolchain          ToolchainConfig
	Platform           PlatformConfig
	DefaultTestTimeout *time.Duration
	Rules              []*BuildRule
	Tests              []TestDeclaration
}

// Test returns the declaration of the given test target.
func (w *Workspace) Test(id TargetIdentity) (TestDeclaration, bool) {
	i := slices.IndexFunc(w.Tests, func(d TestDeclaration) bool { return d.Target == id })
	if i < 0 {
		return TestDeclaration{}, false
	}
	return w.Tests[i], true
}

// TestTargets returns the identities of every declared test in declaration order.
func (w *Workspace) TestTargets() []TargetIdentity {
	res := make([]TargetIdentity, len(w.Tests))
	for i, d := range w.Tests {
		res[i] = d.Target
	}
	return res
}
