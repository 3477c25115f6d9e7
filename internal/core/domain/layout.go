package domain

import "path/filepath"

const (
	// RulegenDirName is the name of the internal workspace directory.
	RulegenDirName = ".rulegen"

	// StateDirName is the name of the expansion state directory.
	StateDirName = "state"

	// TraceDirName is the name of the cache event trace directory.
	TraceDirName = "traces"

	// RulesFileName is the name of the workspace file.
	RulesFileName = "rules.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStatePath returns the default path for the expansion state store.
// It joins .rulegen and state.
func DefaultStatePath() string {
	return filepath.Join(RulegenDirName, StateDirName)
}

// DefaultTracePath returns the default path for cache event traces.
// It joins .rulegen and traces.
func DefaultTracePath() string {
	return filepath.Join(RulegenDirName, TraceDirName)
}
