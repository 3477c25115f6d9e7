// Package telemetry provides adapters for recording expansion progress and cache events.
package telemetry

import (
	"sync"
	"time"

	"go.trai.ch/rulegen/internal/core/domain"
)

const (
	// DefaultMaxRows is the number of queued rows that triggers a delivery.
	DefaultMaxRows = 64
	// DefaultMaxDelay is the longest a queued row waits before it is delivered.
	DefaultMaxDelay = time.Second
)

// RowBatcher queues Hive rows and delivers them in batches. A batch is delivered
// once maxRows rows are queued or maxDelay after the first row of the batch was
// queued, whichever comes first. It is safe for concurrent use.
type RowBatcher struct {
	maxRows  int
	maxDelay time.Duration
	deliver  func(rows []string)

	mu      sync.Mutex
	pending []string
	timer   *time.Timer
	closed  bool
}

// NewRowBatcher returns a RowBatcher handing batches to deliver in queue order.
// deliver runs with the batcher locked, so batches never interleave.
func NewRowBatcher(maxRows int, maxDelay time.Duration, deliver func(rows []string)) *RowBatcher {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}
	return &RowBatcher{
		maxRows:  maxRows,
		maxDelay: maxDelay,
		deliver:  deliver,
	}
}

// Log queues row. It fails with domain.ErrSinkClosed after Close.
func (b *RowBatcher) Log(row string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return domain.ErrSinkClosed
	}

	b.pending = append(b.pending, row)
	if len(b.pending) >= b.maxRows {
		b.deliverLocked()
		return nil
	}
	if b.timer == nil {
		b.timer = time.AfterFunc(b.maxDelay, b.Flush)
	}
	return nil
}

// Pending returns the number of queued rows.
func (b *RowBatcher) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Flush delivers the queued rows now.
func (b *RowBatcher) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.deliverLocked()
}

// Close delivers the queued rows and rejects further ones. Later calls do nothing.
func (b *RowBatcher) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	b.deliverLocked()
}

func (b *RowBatcher) deliverLocked() {
	if b.timer != nil {
		// A timer that already fired finds the queue empty or flushes the next batch early.
		b.timer.Stop()
		b.timer = nil
	}
	if len(b.pending) == 0 {
		return
	}

	rows := b.pending
	b.pending = nil
	if b.deliver != nil {
		b.deliver(rows)
	}
}
