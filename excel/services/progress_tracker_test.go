package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressTracker_StartsIdleAtZero(t *testing.T) {
	tracker := NewProgressTracker()

	progress, status := tracker.Snapshot()
	assert.Equal(t, 0.0, progress)
	assert.Equal(t, StatusProcessing, status)
}

func TestProgressTracker_AdvanceRecomputesFromCounts(t *testing.T) {
	tracker := NewProgressTracker()
	tracker.Reset()

	tracker.Advance(1, 3)
	progress, status := tracker.Snapshot()
	assert.Equal(t, 33.33, progress)
	assert.Equal(t, StatusProcessing, status)

	tracker.Advance(3, 3)
	progress, status = tracker.Snapshot()
	assert.Equal(t, 100.0, progress)
	assert.Equal(t, StatusCompleted, status)
}

func TestProgressTracker_AdvanceIgnoresZeroTotal(t *testing.T) {
	tracker := NewProgressTracker()
	tracker.Advance(5, 0)

	progress, _ := tracker.Snapshot()
	assert.Equal(t, 0.0, progress)
}

func TestProgressTracker_CompleteIsExactlyOneHundred(t *testing.T) {
	tracker := NewProgressTracker()
	tracker.Advance(999, 1000)
	tracker.Complete()

	progress, status := tracker.Snapshot()
	assert.Equal(t, 100.0, progress)
	assert.Equal(t, StatusCompleted, status)
}

func TestProgressTracker_ResetDiscardsTerminalState(t *testing.T) {
	tracker := NewProgressTracker()
	tracker.Complete()
	tracker.Reset()

	progress, status := tracker.Snapshot()
	assert.Equal(t, 0.0, progress)
	assert.Equal(t, StatusProcessing, status)
}

// Readers sampling during one job must never observe progress going
// backward.
func TestProgressTracker_ConcurrentReadersSeeMonotonicProgress(t *testing.T) {
	tracker := NewProgressTracker()
	tracker.Reset()

	const totalRows = 5000
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 1; i <= totalRows; i++ {
			tracker.Advance(i, totalRows)
		}
	}()

	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := -1.0
			for {
				progress, _ := tracker.Snapshot()
				require.GreaterOrEqual(t, progress, last)
				last = progress
				select {
				case <-done:
					return
				default:
				}
			}
		}()
	}
	wg.Wait()

	progress, _ := tracker.Snapshot()
	assert.Equal(t, 100.0, progress)
}
