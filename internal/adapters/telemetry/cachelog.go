package telemetry

import (
	"encoding/json"
	"io"
	"maps"
	"strings"
	"sync"
	"time"

	"go.trai.ch/rulegen/internal/core/domain"
	"go.trai.ch/rulegen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheEventListener = (*CacheEventLog)(nil)

// CacheEventLog writes finished cache events as Hive rows to a batching sink.
// Each row holds the JSON encoding of the event and its build id.
type CacheEventLog struct {
	environment map[string]string
	batcher     *RowBatcher
	out         io.Writer

	mu       sync.Mutex
	writeErr error

	closeOnce sync.Once
	closeErr  error
}

// NewCacheEventLog creates a CacheEventLog flushing rows to out.
// Non-empty environment metadata is attached to every event under "environment".
func NewCacheEventLog(out io.Writer, environment map[string]string) *CacheEventLog {
	return NewCacheEventLogWithLimits(out, environment, DefaultMaxRows, DefaultMaxDelay)
}

// NewCacheEventLogFactory returns a factory that opens a file backed CacheEventLog per build.
func NewCacheEventLogFactory(environment map[string]string) ports.CacheEventLogFactory {
	return func(traceDir string) ports.CacheEventListener {
		return NewCacheEventLog(NewFileSink(traceDir), environment)
	}
}

// NewCacheEventLogWithLimits is NewCacheEventLog with explicit batching limits.
func NewCacheEventLogWithLimits(out io.Writer, environment map[string]string, maxRows int, maxDelay time.Duration) *CacheEventLog {
	l := &CacheEventLog{
		environment: maps.Clone(environment),
		out:         out,
	}
	l.batcher = NewRowBatcher(maxRows, maxDelay, l.flush)
	return l
}

// OnCacheEvent formats event and queues it for writing.
// Events arriving after OutputTrace are dropped.
func (l *CacheEventLog) OnCacheEvent(event domain.CacheEvent) {
	row, err := l.formatRow(event)
	if err != nil {
		l.recordErr(err)
		return
	}
	_ = l.batcher.Log(row)
}

// OutputTrace flushes the queued rows and closes the sink. Only the first call has an effect;
// later calls return the same result.
func (l *CacheEventLog) OutputTrace(buildID string) error {
	l.closeOnce.Do(func() {
		l.batcher.Close()

		if c, ok := l.out.(io.Closer); ok {
			if err := c.Close(); err != nil {
				l.recordErr(zerr.Wrap(err, "failed to close cache event log"))
			}
		}

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.writeErr != nil {
			l.closeErr = zerr.With(l.writeErr, "build_id", buildID)
		}
	})
	return l.closeErr
}

// cacheEventRecord is the JSON shape of a logged event.
type cacheEventRecord struct {
	domain.CacheEvent
	Environment map[string]string `json:"environment,omitempty"`
}

func (l *CacheEventLog) formatRow(event domain.CacheEvent) (string, error) {
	data, err := json.Marshal(cacheEventRecord{CacheEvent: event, Environment: l.environment})
	if err != nil {
		return "", zerr.Wrap(err, "failed to encode cache event")
	}

	return NewHiveRowFormatter().
		AppendString(string(data)).
		AppendString(event.BuildID).
		Build(), nil
}

// flush runs on the batcher with its lock held, so batches reach out in order.
func (l *CacheEventLog) flush(rows []string) {
	if _, err := io.WriteString(l.out, strings.Join(rows, "")); err != nil {
		l.recordErr(zerr.Wrap(err, "failed to write cache events"))
	}
}

func (l *CacheEventLog) recordErr(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.writeErr == nil {
		l.writeErr = err
	}
}
