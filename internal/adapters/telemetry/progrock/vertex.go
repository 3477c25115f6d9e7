package progrock

import (
	"fmt"
	"io"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/rulegen/internal/core/domain"
)

// Vertex implements ports.Vertex on top of a progrock vertex.
type Vertex struct {
	vertex *progrock.VertexRecorder
	onDone func(*Vertex)
	once   sync.Once
}

// Stdout returns the regular output stream of the vertex.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Stderr returns the error output stream of the vertex.
func (v *Vertex) Stderr() io.Writer {
	return v.vertex.Stderr()
}

// Log writes a leveled line. Warnings and errors go to stderr.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	w := v.vertex.Stdout()
	if level >= domain.LogLevelWarn {
		w = v.vertex.Stderr()
	}
	_, _ = fmt.Fprintf(w, "[%s] %s\n", level, msg)
}

// Complete marks the vertex finished. Only the first call has an effect.
func (v *Vertex) Complete(err error) {
	v.once.Do(func() {
		v.vertex.Done(err)
		if v.onDone != nil {
			v.onDone(v)
		}
	})
}

// Cached marks the vertex as satisfied from recorded state.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
