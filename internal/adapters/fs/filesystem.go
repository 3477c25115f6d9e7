// Package fs provides the file system adapter used to validate project paths.
package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/rulegen/internal/core/domain"
	"go.trai.ch/rulegen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProjectFilesystem = (*Filesystem)(nil)

// Filesystem answers path questions against the real file system.
type Filesystem struct{}

// NewFilesystem creates a new Filesystem.
func NewFilesystem() *Filesystem {
	return &Filesystem{}
}

// Exists reports whether path exists below root. Files and directories both count.
func (f *Filesystem) Exists(root, path string) (bool, error) {
	full := path
	if !filepath.IsAbs(path) {
		full = filepath.Join(root, path)
	}

	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", full)
	}
	return true, nil
}
