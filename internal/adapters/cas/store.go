// Package cas implements the expansion state store.
package cas

import (
	_ "crypto/sha256" // registers the digest algorithm
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"
	"go.trai.ch/rulegen/internal/core/domain"
	"go.trai.ch/rulegen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StateStore = (*Store)(nil)

// Store implements ports.StateStore using a file-per-target strategy.
// Files are named after the content digest of the target identity.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the record for a given test target.
func (s *Store) Get(dir, target string) (*domain.ExpansionRecord, error) {
	filename := s.filename(dir, target)
	//nolint:gosec // Path is constructed from a trusted directory and a digest
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(storeError(domain.ErrStoreReadFailed, err), "path", filename)
	}

	var record domain.ExpansionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(storeError(domain.ErrStoreUnmarshalFailed, err), "path", filename)
	}

	return &record, nil
}

// Put stores the record, replacing any earlier record of the same target.
func (s *Store) Put(dir string, record domain.ExpansionRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return storeError(domain.ErrStoreMarshalFailed, err)
	}

	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(storeError(domain.ErrStoreCreateFailed, err), "path", dir)
	}

	filename := s.filename(dir, record.Target)
	tmp := filename + ".tmp"
	//nolint:gosec // Path is constructed from a trusted directory and a digest
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.With(storeError(domain.ErrStoreWriteFailed, err), "path", tmp)
	}
	if err := os.Rename(tmp, filename); err != nil {
		return zerr.With(storeError(domain.ErrStoreWriteFailed, err), "path", filename)
	}

	return nil
}

func (s *Store) filename(dir, target string) string {
	return filepath.Join(dir, digest.FromString(target).Encoded()+".json")
}

// storeError keeps both the store sentinel and the underlying cause matchable.
func storeError(sentinel, cause error) error {
	return fmt.Errorf("%w: %w", sentinel, cause)
}
