package parsort

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/hupe1980/parsort/internal/resource"
)

// Engine sorts record slices with a parallel quicksort.
//
// An Engine holds no per-sort state and may run several sorts at once; they
// share the task limit configured with WithMaxTasks.
type Engine struct {
	rc      *resource.Controller
	spawner Spawner
	metrics MetricsCollector
	logger  *Logger
}

// New creates an Engine.
func New(optFns ...Option) *Engine {
	o := applyOptions(optFns)

	e := &Engine{
		rc:      resource.NewController(resource.Config{MaxTasks: max(o.maxTasks, 0)}),
		spawner: o.spawner,
		metrics: o.metricsCollector,
		logger:  o.logger,
	}
	if e.spawner == nil {
		e.spawner = goSpawner{rc: e.rc}
	}
	return e
}

// TaskStats describes the goroutines started by the default spawner.
type TaskStats struct {
	Live  int64 // Tasks running or waiting on their children right now.
	Peak  int64
	Total int64
}

// Tasks returns task counters of the default spawner.
func (e *Engine) Tasks() TaskStats {
	return TaskStats{
		Live:  e.rc.LiveTasks(),
		Peak:  e.rc.PeakTasks(),
		Total: e.rc.TotalTasks(),
	}
}

// Sort sorts data[r.Start:r.End] ascending in place.
//
// Ranges no longer than threshold are sorted on the calling goroutine.
// Longer ranges are partitioned and both partitions are sorted by new
// tasks; Sort returns once every task it started has finished. If any task
// could not be started the returned error matches ErrDispatch and the
// range is left in an unspecified order.
func (e *Engine) Sort(ctx context.Context, data []int64, r Range, threshold int) error {
	if threshold < 0 {
		return ErrInvalidThreshold
	}
	if err := r.Validate(len(data)); err != nil {
		return err
	}

	start := time.Now()
	err := e.sort(ctx, data, r, threshold)
	elapsed := time.Since(start)

	e.metrics.RecordSort(r.Len(), elapsed, err)
	e.logger.LogSort(ctx, r, threshold, elapsed, err)
	return err
}

func (e *Engine) sort(ctx context.Context, data []int64, r Range, threshold int) error {
	n := r.Len()
	if n < 2 {
		return nil
	}

	if n <= threshold {
		start := time.Now()
		slices.SortFunc(data[r.Start:r.End], Compare)
		e.metrics.RecordSequential(n, time.Since(start))
		return nil
	}

	p := Partition(data, r)
	e.metrics.RecordSplit(n)

	left := Range{Start: r.Start, End: p}
	right := Range{Start: p + 1, End: r.End}

	var (
		wg                sync.WaitGroup
		leftErr, rightErr error
	)

	wg.Add(1)
	if err := e.spawner.Spawn(ctx, func() {
		defer wg.Done()
		leftErr = e.sort(ctx, data, left, threshold)
	}); err != nil {
		wg.Done()
		return e.dispatchFailed(ctx, left, err)
	}

	wg.Add(1)
	if err := e.spawner.Spawn(ctx, func() {
		defer wg.Done()
		rightErr = e.sort(ctx, data, right, threshold)
	}); err != nil {
		wg.Done()
		rightErr = e.dispatchFailed(ctx, right, err)
	}

	// The left task is joined even when the right one never started.
	wg.Wait()

	return errors.Join(leftErr, rightErr)
}

func (e *Engine) dispatchFailed(ctx context.Context, r Range, err error) error {
	e.metrics.RecordDispatchFailure(err)
	e.logger.LogDispatchFailure(ctx, r, err)
	return dispatchError(r, err)
}
