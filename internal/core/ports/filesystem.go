package ports

// ProjectFilesystem answers questions about paths inside a project root.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type ProjectFilesystem interface {
	// Exists reports whether path, relative to root, exists.
	Exists(root, path string) (bool, error)
}
