package domain

import (
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// ForkMode controls whether a test runner forks a fresh process per test.
type ForkMode string

const (
	// ForkModeNone runs every test in the same runner process.
	ForkModeNone ForkMode = "none"
	// ForkModePerTest forks a runner process for each test.
	ForkModePerTest ForkMode = "per_test"
)

// ParseForkMode converts a textual fork mode into a ForkMode.
func ParseForkMode(s string) (ForkMode, error) {
	switch ForkMode(strings.ToLower(strings.TrimSpace(s))) {
	case ForkModeNone:
		return ForkModeNone, nil
	case ForkModePerTest:
		return ForkModePerTest, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidForkMode, "unknown fork mode"), "fork_mode", s)
	}
}

// TestType names the test framework a test rule runs with.
type TestType string

const (
	// TestTypeJUnit runs tests with JUnit.
	TestTypeJUnit TestType = "junit"
	// TestTypeTestNG runs tests with TestNG.
	TestTypeTestNG TestType = "testng"
)

// ParseTestType converts a textual test type into a TestType.
func ParseTestType(s string) (TestType, error) {
	switch TestType(strings.ToLower(strings.TrimSpace(s))) {
	case TestTypeJUnit:
		return TestTypeJUnit, nil
	case TestTypeTestNG:
		return TestTypeTestNG, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidTestType, "unknown test type"), "test_type", s)
	}
}

// LibraryArg is the declarative description of a compiled library.
type LibraryArg struct {
	Srcs           []string
	Resources      []string
	Deps           []TargetIdentity
	ProvidedDeps   []TargetIdentity
	ExportedDeps   []TargetIdentity
	ExtraArguments []string
	ResourcesRoot  string
	ManifestFile   string
	MavenCoords    string
}

// TestArg is the declarative description of a test target.
// The library part of the description is embedded as a value.
type TestArg struct {
	Library LibraryArg

	Contacts               []string
	Labels                 []string
	VMArgs                 []string
	TestType               *TestType
	RunTestSeparately      *bool
	ForkMode               *ForkMode
	StdOutLogLevel         *LogLevel
	StdErrLogLevel         *LogLevel
	UseNativeLibraries     *bool
	NativeLibraryWhitelist []TargetIdentity
	TestRuleTimeout        *time.Duration
	Env                    map[string]string
}

// EffectiveTestType returns the configured test type, defaulting to JUnit.
func (a TestArg) EffectiveTestType() TestType {
	if a.TestType == nil {
		return TestTypeJUnit
	}
	return *a.TestType
}

// EffectiveForkMode returns the configured fork mode, defaulting to no forking.
func (a TestArg) EffectiveForkMode() ForkMode {
	if a.ForkMode == nil {
		return ForkModeNone
	}
	return *a.ForkMode
}

// EffectiveRunTestSeparately reports whether the test must run alone.
func (a TestArg) EffectiveRunTestSeparately() bool {
	return a.RunTestSeparately != nil && *a.RunTestSeparately
}

// EffectiveUseNativeLibraries reports whether native-library enhancement was requested.
func (a TestArg) EffectiveUseNativeLibraries() bool {
	return a.UseNativeLibraries != nil && *a.UseNativeLibraries
}
