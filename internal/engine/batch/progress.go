package batch

import (
	"sync"
	"time"
)

// Progress tracks how many windows and items have been consumed from a stream
// whose total length is unknown. It is safe for concurrent use.
type Progress struct {
	// ProcessedItems is the number of values consumed so far.
	ProcessedItems int

	// ProcessedBatches is the number of windows consumed so far.
	ProcessedBatches int

	// BatchSize is the configured window size.
	BatchSize int

	// StartTime is when consumption started.
	StartTime time.Time

	// LastUpdateTime is when a window was last recorded.
	LastUpdateTime time.Time

	mu sync.RWMutex
}

// NewProgress creates a progress tracker for windows of batchSize.
func NewProgress(batchSize int) *Progress {
	now := time.Now()
	return &Progress{
		BatchSize:      batchSize,
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// AddProcessed records one window of itemsProcessed values.
func (p *Progress) AddProcessed(itemsProcessed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ProcessedItems += itemsProcessed
	p.ProcessedBatches++
	p.LastUpdateTime = time.Now()
}

// ElapsedTime returns the time since consumption started.
func (p *Progress) ElapsedTime() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return time.Since(p.StartTime)
}

// ItemsPerSecond returns the consumption rate in values per second.
func (p *Progress) ItemsPerSecond() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.itemsPerSecondUnsafe()
}

// Snapshot returns a copy of the current progress state.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return ProgressSnapshot{
		ProcessedItems:   p.ProcessedItems,
		ProcessedBatches: p.ProcessedBatches,
		BatchSize:        p.BatchSize,
		StartTime:        p.StartTime,
		LastUpdateTime:   p.LastUpdateTime,
		ElapsedTime:      time.Since(p.StartTime),
		ItemsPerSecond:   p.itemsPerSecondUnsafe(),
	}
}

// ProgressSnapshot is an immutable copy of Progress.
type ProgressSnapshot struct {
	ProcessedItems   int
	ProcessedBatches int
	BatchSize        int
	StartTime        time.Time
	LastUpdateTime   time.Time
	ElapsedTime      time.Duration
	ItemsPerSecond   float64
}

// itemsPerSecondUnsafe must be called with the lock held.
func (p *Progress) itemsPerSecondUnsafe() float64 {
	elapsed := time.Since(p.StartTime).Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(p.ProcessedItems) / elapsed
}
