package parsort

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting sort metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Methods other than RecordSort are called from concurrently running sort
// tasks and must be safe for concurrent use.
type MetricsCollector interface {
	// RecordSort is called once per top-level Sort with the length of the
	// requested range.
	RecordSort(records int, duration time.Duration, err error)

	// RecordSplit is called after a range has been partitioned for
	// concurrent sorting.
	RecordSplit(records int)

	// RecordSequential is called after a range has been sorted on the
	// current goroutine.
	RecordSequential(records int, duration time.Duration)

	// RecordDispatchFailure is called when a task could not be started.
	RecordDispatchFailure(err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSort(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSplit(int)                      {}
func (NoopMetricsCollector) RecordSequential(int, time.Duration)  {}
func (NoopMetricsCollector) RecordDispatchFailure(error)          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SortCount         atomic.Int64
	SortErrors        atomic.Int64
	SortRecords       atomic.Int64
	SortTotalNanos    atomic.Int64
	SplitCount        atomic.Int64
	SequentialCount   atomic.Int64
	SequentialRecords atomic.Int64
	SequentialNanos   atomic.Int64
	DispatchFailures  atomic.Int64
	LargestSequential atomic.Int64
}

// RecordSort implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSort(records int, duration time.Duration, err error) {
	b.SortCount.Add(1)
	b.SortRecords.Add(int64(records))
	b.SortTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SortErrors.Add(1)
	}
}

// RecordSplit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSplit(int) {
	b.SplitCount.Add(1)
}

// RecordSequential implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSequential(records int, duration time.Duration) {
	b.SequentialCount.Add(1)
	b.SequentialRecords.Add(int64(records))
	b.SequentialNanos.Add(duration.Nanoseconds())
	for {
		cur := b.LargestSequential.Load()
		if int64(records) <= cur || b.LargestSequential.CompareAndSwap(cur, int64(records)) {
			return
		}
	}
}

// RecordDispatchFailure implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDispatchFailure(error) {
	b.DispatchFailures.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	stats := BasicMetricsStats{
		SortCount:         b.SortCount.Load(),
		SortErrors:        b.SortErrors.Load(),
		SortRecords:       b.SortRecords.Load(),
		SplitCount:        b.SplitCount.Load(),
		SequentialCount:   b.SequentialCount.Load(),
		SequentialRecords: b.SequentialRecords.Load(),
		DispatchFailures:  b.DispatchFailures.Load(),
		LargestSequential: b.LargestSequential.Load(),
	}
	if stats.SortCount > 0 {
		stats.SortAvgNanos = b.SortTotalNanos.Load() / stats.SortCount
	}
	return stats
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	SortCount         int64
	SortErrors        int64
	SortRecords       int64
	SortAvgNanos      int64
	SplitCount        int64
	SequentialCount   int64
	SequentialRecords int64
	DispatchFailures  int64
	LargestSequential int64
}
