package ports

import (
	"context"
	"io"

	"go.trai.ch/rulegen/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records the progress of target expansions.
type Telemetry interface {
	// Record starts a new vertex and returns a context carrying it.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and ends the recording session.
	Close() error
}

// Vertex is a unit of recorded work.
type Vertex interface {
	// Stdout returns a writer for regular output of the vertex.
	Stdout() io.Writer
	// Stderr returns a writer for error output of the vertex.
	Stderr() io.Writer
	// Log records a message at the given level.
	Log(level domain.LogLevel, msg string)
	// Complete marks the vertex finished, successfully if err is nil.
	Complete(err error)
	// Cached marks the vertex as satisfied from recorded state.
	Cached()
}

type vertexKey struct{}

// ContextWithVertex returns a copy of ctx carrying v.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex carried by ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}

// CacheEventListener receives artifact cache events of a build invocation.
type CacheEventListener interface {
	// OnCacheEvent records one finished cache operation.
	OnCacheEvent(event domain.CacheEvent)
	// OutputTrace finalises the event log of the given build. It is safe to call more than once.
	OutputTrace(buildID string) error
}

// CacheEventLogFactory opens the cache event log of one build, writing below traceDir.
type CacheEventLogFactory func(traceDir string) CacheEventListener
