package progrock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rulegen/internal/adapters/telemetry/progrock"
	"go.trai.ch/rulegen/internal/core/domain"
	"go.trai.ch/rulegen/internal/core/ports"
)

func TestRecorder_Record(t *testing.T) {
	recorder := progrock.New()

	ctx, vertex := recorder.Record(context.Background(), "expand //app:test")
	require.NotNil(t, vertex)

	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, fromCtx)

	_, err := vertex.Stdout().Write([]byte("library-rule-built\n"))
	require.NoError(t, err)
	vertex.Log(domain.LogLevelDebug, "debug msg")
	vertex.Log(domain.LogLevelError, "error msg")

	vertex.Complete(nil)
	vertex.Complete(nil)

	require.NoError(t, recorder.Close())
}

func TestRecorder_CloseCompletesOpenVertices(t *testing.T) {
	recorder := progrock.New()

	_, finished := recorder.Record(context.Background(), "finished")
	finished.Cached()
	finished.Complete(nil)

	_, _ = recorder.Record(context.Background(), "still running")

	assert.NotPanics(t, func() {
		require.NoError(t, recorder.Close())
	})
}
