package telemetry

import (
	"context"
	"io"

	"go.trai.ch/rulegen/internal/core/domain"
	"go.trai.ch/rulegen/internal/core/ports"
)

var (
	_ ports.Telemetry          = (*NoOpTelemetry)(nil)
	_ ports.CacheEventListener   = (*NoOpCacheEventListener)(nil)
	_ ports.CacheEventLogFactory = NoOpCacheEventLog
)

// NoOpTelemetry is a no-op implementation of ports.Telemetry.
type NoOpTelemetry struct{}

// NewNoOpTelemetry creates a new NoOpTelemetry.
func NewNoOpTelemetry() *NoOpTelemetry {
	return &NoOpTelemetry{}
}

// Record returns a vertex that discards everything.
func (t *NoOpTelemetry) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	v := &NoOpVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (t *NoOpTelemetry) Close() error { return nil }

// NoOpVertex is a no-op implementation of ports.Vertex.
type NoOpVertex struct{}

// Stdout returns io.Discard.
func (v *NoOpVertex) Stdout() io.Writer { return io.Discard }

// Stderr returns io.Discard.
func (v *NoOpVertex) Stderr() io.Writer { return io.Discard }

// Log does nothing.
func (v *NoOpVertex) Log(domain.LogLevel, string) {}

// Complete does nothing.
func (v *NoOpVertex) Complete(error) {}

// Cached does nothing.
func (v *NoOpVertex) Cached() {}

// NoOpCacheEventListener drops every event.
type NoOpCacheEventListener struct{}

// OnCacheEvent does nothing.
func (NoOpCacheEventListener) OnCacheEvent(domain.CacheEvent) {}

// OutputTrace does nothing.
func (NoOpCacheEventListener) OutputTrace(string) error { return nil }

// NoOpCacheEventLog opens a NoOpCacheEventListener regardless of the trace directory.
func NoOpCacheEventLog(string) ports.CacheEventListener { return NoOpCacheEventListener{} }
