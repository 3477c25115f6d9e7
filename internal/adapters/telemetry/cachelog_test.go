package telemetry_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rulegen/internal/adapters/telemetry"
	"go.trai.ch/rulegen/internal/core/domain"
)

// recordingWriter is a thread-safe buffer that counts Close calls.
type recordingWriter struct {
	mu       sync.Mutex
	buf      bytes.Buffer
	closed   int
	writeErr error
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.writeErr != nil {
		return 0, w.writeErr
	}
	return w.buf.Write(p)
}

func (w *recordingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed++
	return nil
}

func (w *recordingWriter) rows() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return strings.Split(strings.TrimSuffix(w.buf.String(), "\n"), "\n")
}

func testEvent() domain.CacheEvent {
	return domain.CacheEvent{
		BuildID:   "build-1",
		Operation: "store",
		Target:    "//app:test",
		RuleKey:   "00000000000000aa",
		Outcome:   domain.CacheOutcomeStored,
		Duration:  3 * time.Millisecond,
		Size:      128,
		Timestamp: 1_700_000_000_123_456_789,
	}
}

func decodeRow(t *testing.T, row string) (map[string]any, string) {
	t.Helper()
	fields := strings.Split(row, telemetry.HiveFieldSeparator)
	require.Len(t, fields, 2)

	dec := json.NewDecoder(strings.NewReader(fields[0]))
	dec.UseNumber()
	var event map[string]any
	require.NoError(t, dec.Decode(&event))
	return event, fields[1]
}

func TestCacheEventLog_WritesRows(t *testing.T) {
	out := &recordingWriter{}
	log := telemetry.NewCacheEventLogWithLimits(out, nil, 1000, time.Hour)

	log.OnCacheEvent(testEvent())
	second := testEvent()
	second.Outcome = domain.CacheOutcomeHit
	second.Operation = "fetch"
	log.OnCacheEvent(second)

	require.NoError(t, log.OutputTrace("build-1"))

	rows := out.rows()
	require.Len(t, rows, 2)

	event, buildID := decodeRow(t, rows[0])
	assert.Equal(t, "build-1", buildID)
	assert.Equal(t, "stored", event["outcome"])
	assert.Equal(t, "//app:test", event["target"])
	assert.Equal(t, json.Number("1700000000123456789"), event["timestamp"])
	assert.Equal(t, json.Number("3000000"), event["duration_ns"])
	assert.NotContains(t, event, "environment")

	event, _ = decodeRow(t, rows[1])
	assert.Equal(t, "hit", event["outcome"])
}

func TestCacheEventLog_Environment(t *testing.T) {
	out := &recordingWriter{}
	env := map[string]string{"user": "ci", "hostname": "builder-7"}
	log := telemetry.NewCacheEventLogWithLimits(out, env, 1000, time.Hour)

	env["user"] = "mutated"
	log.OnCacheEvent(testEvent())
	require.NoError(t, log.OutputTrace("build-1"))

	event, _ := decodeRow(t, out.rows()[0])
	assert.Equal(t, map[string]any{"user": "ci", "hostname": "builder-7"}, event["environment"])
}

func TestCacheEventLog_OutputTraceClosesOnce(t *testing.T) {
	out := &recordingWriter{}
	log := telemetry.NewCacheEventLogWithLimits(out, nil, 1000, time.Hour)

	log.OnCacheEvent(testEvent())
	require.NoError(t, log.OutputTrace("build-1"))
	require.NoError(t, log.OutputTrace("build-1"))
	assert.Equal(t, 1, out.closed)

	// Events after the trace was written are dropped.
	log.OnCacheEvent(testEvent())
	assert.Len(t, out.rows(), 1)
}

func TestCacheEventLog_ReportsWriteFailure(t *testing.T) {
	out := &recordingWriter{writeErr: errors.New("disk full")}
	log := telemetry.NewCacheEventLogWithLimits(out, nil, 1000, time.Hour)

	log.OnCacheEvent(testEvent())
	err := log.OutputTrace("build-9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	// The failure is reported again on repeated calls.
	assert.Equal(t, err, log.OutputTrace("build-9"))
}

func TestCacheEventLog_DeliversFullBatchesBeforeTrace(t *testing.T) {
	out := &recordingWriter{}
	log := telemetry.NewCacheEventLogWithLimits(out, nil, 2, time.Hour)

	log.OnCacheEvent(testEvent())
	log.OnCacheEvent(testEvent())
	log.OnCacheEvent(testEvent())
	assert.Len(t, out.rows(), 2)

	require.NoError(t, log.OutputTrace("build-1"))
	assert.Len(t, out.rows(), 3)
}

func TestCacheEventLogFactory_WritesBelowTraceDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "workspace", domain.DefaultTracePath())
	open := telemetry.NewCacheEventLogFactory(map[string]string{"os": "linux"})

	log := open(dir)
	log.OnCacheEvent(testEvent())
	require.NoError(t, log.OutputTrace("build-1"))

	data, err := os.ReadFile(filepath.Join(dir, telemetry.CacheEventFileName))
	require.NoError(t, err)
	event, buildID := decodeRow(t, strings.TrimSuffix(string(data), "\n"))
	assert.Equal(t, "build-1", buildID)
	assert.Equal(t, map[string]any{"os": "linux"}, event["environment"])

	// Each build gets its own log; a finished one does not affect the next.
	next := open(dir)
	next.OnCacheEvent(testEvent())
	require.NoError(t, next.OutputTrace("build-2"))

	data, err = os.ReadFile(filepath.Join(dir, telemetry.CacheEventFileName))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}
