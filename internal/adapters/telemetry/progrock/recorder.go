// Package progrock records expansion progress on a progrock tape.
package progrock

import (
	"context"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/rulegen/internal/core/domain"
	"go.trai.ch/rulegen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry with one progrock vertex per recorded name.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu   sync.Mutex
	open map[*Vertex]struct{}
}

// New creates a new Recorder with an in-memory tape.
func New() ports.Telemetry {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder writing to w.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:    w,
		rec:  progrock.NewRecorder(w),
		open: make(map[*Vertex]struct{}),
	}
}

// Record starts a vertex for name and returns a context carrying it.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := &Vertex{
		vertex: r.rec.Vertex(digest.FromString(name), name),
		onDone: r.forget,
	}

	r.mu.Lock()
	r.open[v] = struct{}{}
	r.mu.Unlock()

	return ports.ContextWithVertex(ctx, v), v
}

// Close completes vertices that are still running as aborted, then closes the writer.
func (r *Recorder) Close() error {
	r.mu.Lock()
	pending := make([]*Vertex, 0, len(r.open))
	for v := range r.open {
		pending = append(pending, v)
	}
	r.mu.Unlock()

	for _, v := range pending {
		v.Complete(zerr.Wrap(domain.ErrAborted, "recording closed before the vertex completed"))
	}

	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (r *Recorder) forget(v *Vertex) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.open, v)
}
