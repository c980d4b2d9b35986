package services

import (
	"math"
	"sync/atomic"
)

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
)

// ProgressTracker holds the completion percentage of the in-flight
// ingestion job. One writer (the ingestion loop) and any number of
// readers (poll endpoint, websocket subscribers) share it; the value is
// stored as a single atomic word so readers never observe a torn value.
//
// Only one job is tracked at a time. Starting a new upload resets the
// tracker and discards the previous job's terminal reading, so two
// concurrent ingestions would corrupt each other's progress. That is a
// known limitation of the single-job model, not something this type
// guards against.
type ProgressTracker struct {
	percent atomic.Uint64 // float64 bits
}

func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{}
}

// Reset sets progress back to zero. Called exactly once per job, at job
// start.
func (t *ProgressTracker) Reset() {
	t.store(0)
}

// Advance recomputes the percentage from absolute counts rather than
// accumulating increments, so the value is self-correcting and ends at
// exactly 100 when rowsDone == totalRows.
func (t *ProgressTracker) Advance(rowsDone, totalRows int) {
	if totalRows <= 0 {
		return
	}
	t.store(float64(rowsDone) / float64(totalRows) * 100)
}

// Complete marks the job finished at exactly 100.
func (t *ProgressTracker) Complete() {
	t.store(100)
}

// Snapshot returns the current percentage (rounded to two decimals) and
// the status derived from it. It never blocks.
func (t *ProgressTracker) Snapshot() (float64, string) {
	percent := math.Round(t.load()*100) / 100
	status := StatusProcessing
	if percent >= 100 {
		status = StatusCompleted
	}
	return percent, status
}

func (t *ProgressTracker) store(v float64) {
	t.percent.Store(math.Float64bits(v))
}

func (t *ProgressTracker) load() float64 {
	return math.Float64frombits(t.percent.Load())
}
