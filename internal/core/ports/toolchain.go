package ports

import "go.trai.ch/rulegen/internal/core/domain"

// Toolchain exposes the implicit dependencies of the test language toolchain.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type Toolchain interface {
	// LibraryTarget returns the runtime library every test links against.
	LibraryTarget() domain.TargetIdentity

	// CompilerTarget returns the compiler tool rule, if one is configured.
	CompilerTarget() (domain.TargetIdentity, bool)

	// CompilerFlags returns the flags passed to every compilation.
	CompilerFlags() []string
}

// NativePlatform exposes the platform facts native-library enhancement needs.
type NativePlatform interface {
	// LibrarySearchPathVar returns the environment variable the dynamic linker reads
	// its search path from, e.g. LD_LIBRARY_PATH.
	LibrarySearchPathVar() string
}
