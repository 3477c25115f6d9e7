package ports

import "go.trai.ch/rulegen/internal/core/domain"

// ConfigLoader defines the interface for loading the workspace configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the workspace file at the given path and returns the parsed workspace.
	Load(path string) (*domain.Workspace, error)
}
