package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidTarget is returned when a target string cannot be parsed into a TargetIdentity.
	ErrInvalidTarget = zerr.New("invalid build target")

	// ErrUnresolvedDependency is returned when a referenced target has no rule in the registry.
	ErrUnresolvedDependency = zerr.New("unresolved dependency")

	// ErrInvalidResource is returned when one or more listed resource paths do not exist.
	ErrInvalidResource = zerr.New("invalid resource")

	// ErrAborted is returned when the build invocation was cancelled while an expansion was in flight.
	ErrAborted = zerr.New("expansion aborted")

	// ErrDuplicateRegistration is returned when two different rules are registered under one identity.
	ErrDuplicateRegistration = zerr.New("duplicate rule registration")

	// ErrRuleAlreadyExists is returned when adding a rule to a graph that already holds that identity.
	ErrRuleAlreadyExists = zerr.New("rule already exists")

	// ErrMissingDependency is returned when a rule references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the rule dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTargetNotFound is returned when a requested test target is not declared in the workspace.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrNoTargetsSpecified is returned when no targets are specified for a command.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrExpansionFailed is returned when at least one target failed to expand.
	ErrExpansionFailed = zerr.New("expansion failed")

	// ErrInvalidForkMode is returned when a fork mode value is not recognised.
	ErrInvalidForkMode = zerr.New("invalid fork mode, expected 'none' or 'per_test'")

	// ErrInvalidTestType is returned when a test type value is not recognised.
	ErrInvalidTestType = zerr.New("invalid test type, expected 'junit' or 'testng'")

	// ErrInvalidLogLevel is returned when a log level value is not recognised.
	ErrInvalidLogLevel = zerr.New("invalid log level")

	// ErrInvalidTimeout is returned when a timeout value cannot be parsed or is negative.
	ErrInvalidTimeout = zerr.New("invalid timeout")

	// ErrInvalidRuleKind is returned when a declared rule uses an unsupported kind.
	ErrInvalidRuleKind = zerr.New("invalid rule kind, expected 'prebuilt_library' or 'native_library'")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrMissingToolchainLibrary is returned when the toolchain does not name a runtime library target.
	ErrMissingToolchainLibrary = zerr.New("toolchain runtime library target is not configured")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrStoreCreateFailed is returned when the state store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create state store directory")

	// ErrStoreReadFailed is returned when the state store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read state store")

	// ErrStoreUnmarshalFailed is returned when the state store cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal state store")

	// ErrStoreMarshalFailed is returned when the state store cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal state store")

	// ErrStoreWriteFailed is returned when the state store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write state store")

	// ErrSinkClosed is returned when writing to a log sink that was already closed.
	ErrSinkClosed = zerr.New("log sink is closed")
)
