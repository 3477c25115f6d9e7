package telemetry

import (
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/rulegen/internal/core/domain"
	"go.trai.ch/zerr"
)

// CacheEventFileName is the file cache event rows are appended to.
const CacheEventFileName = "cache_events.log"

// FileSink appends to a file below dir. The file is created on the first write,
// so invocations without cache events leave no trace behind.
type FileSink struct {
	dir string

	mu   sync.Mutex
	file *os.File
}

// NewFileSink returns a sink writing to dir/cache_events.log.
func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

// Path returns the file the sink writes to.
func (s *FileSink) Path() string {
	return filepath.Join(s.dir, CacheEventFileName)
}

// Write appends p to the file.
func (s *FileSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
			return 0, zerr.With(zerr.Wrap(err, "failed to create trace directory"), "path", s.dir)
		}
		//nolint:gosec // Path is built from the configured trace directory
		f, err := os.OpenFile(s.Path(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.FilePerm)
		if err != nil {
			return 0, zerr.With(zerr.Wrap(err, "failed to open trace file"), "path", s.Path())
		}
		s.file = f
	}

	return s.file.Write(p)
}

// Close closes the file if it was opened.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
