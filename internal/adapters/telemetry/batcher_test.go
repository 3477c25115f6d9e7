package telemetry_test

import (
	"fmt"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rulegen/internal/adapters/telemetry"
	"go.trai.ch/rulegen/internal/core/domain"
)

// batchRecorder keeps every delivered batch.
type batchRecorder struct {
	mu      sync.Mutex
	batches [][]string
}

func (r *batchRecorder) deliver(rows []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, rows)
}

func (r *batchRecorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.batches...)
}

func (r *batchRecorder) rows() []string {
	var rows []string
	for _, batch := range r.snapshot() {
		rows = append(rows, batch...)
	}
	return rows
}

func TestRowBatcher_DeliversFullBatches(t *testing.T) {
	r := &batchRecorder{}
	b := telemetry.NewRowBatcher(2, time.Hour, r.deliver)
	defer b.Close()

	require.NoError(t, b.Log("hit\n"))
	assert.Empty(t, r.snapshot())
	assert.Equal(t, 1, b.Pending())

	require.NoError(t, b.Log("miss\n"))
	require.NoError(t, b.Log("stored\n"))

	assert.Equal(t, [][]string{{"hit\n", "miss\n"}}, r.snapshot())
	assert.Equal(t, 1, b.Pending())
}

func TestRowBatcher_DeliversAfterDelay(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := &batchRecorder{}
		b := telemetry.NewRowBatcher(100, time.Second, r.deliver)
		defer b.Close()

		require.NoError(t, b.Log("first\n"))
		time.Sleep(500 * time.Millisecond)
		require.NoError(t, b.Log("second\n"))

		// The delay counts from the first row of the batch.
		time.Sleep(600 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, [][]string{{"first\n", "second\n"}}, r.snapshot())

		require.NoError(t, b.Log("third\n"))
		time.Sleep(999 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, r.snapshot(), 1)

		time.Sleep(2 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, []string{"first\n", "second\n", "third\n"}, r.rows())
	})
}

func TestRowBatcher_FullBatchResetsDelay(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := &batchRecorder{}
		b := telemetry.NewRowBatcher(2, time.Second, r.deliver)
		defer b.Close()

		require.NoError(t, b.Log("a\n"))
		require.NoError(t, b.Log("b\n"))
		time.Sleep(2 * time.Second)
		synctest.Wait()

		assert.Equal(t, [][]string{{"a\n", "b\n"}}, r.snapshot(), "no empty batch after the delay")
	})
}

func TestRowBatcher_Close(t *testing.T) {
	r := &batchRecorder{}
	b := telemetry.NewRowBatcher(100, time.Hour, r.deliver)

	require.NoError(t, b.Log("pending\n"))
	b.Flush()
	b.Flush()
	require.NoError(t, b.Log("last\n"))

	b.Close()
	b.Close()
	assert.Equal(t, [][]string{{"pending\n"}, {"last\n"}}, r.snapshot())

	require.ErrorIs(t, b.Log("late\n"), domain.ErrSinkClosed)
	b.Flush()
	assert.Equal(t, 0, b.Pending())
	assert.Len(t, r.snapshot(), 2)
}

func TestRowBatcher_ConcurrentLoggers(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := &batchRecorder{}
		b := telemetry.NewRowBatcher(7, 10*time.Millisecond, r.deliver)

		const workers, rowsPerWorker = 8, 50

		var wg sync.WaitGroup
		for w := range workers {
			wg.Go(func() {
				for i := range rowsPerWorker {
					_ = b.Log(fmt.Sprintf("%d-%d\n", w, i))
					if i%10 == 0 {
						time.Sleep(time.Millisecond)
					}
				}
			})
		}
		wg.Wait()
		b.Close()

		rows := r.rows()
		assert.Len(t, rows, workers*rowsPerWorker)
		for _, batch := range r.snapshot() {
			assert.LessOrEqual(t, len(batch), 7)
		}
	})
}
