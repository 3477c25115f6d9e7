package ports

import "go.trai.ch/rulegen/internal/core/domain"

// StateStore defines the interface for storing and retrieving expansion records.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type StateStore interface {
	// Get retrieves the record for a given test target from the state directory dir.
	// Returns nil, nil if not found.
	Get(dir, target string) (*domain.ExpansionRecord, error)

	// Put stores the record in the state directory dir.
	Put(dir string, record domain.ExpansionRecord) error
}
