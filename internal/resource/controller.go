package resource

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrTaskLimitExceeded is returned when every task slot is in use.
var ErrTaskLimitExceeded = errors.New("task limit exceeded")

// Config holds resource limits.
type Config struct {
	// MaxTasks is the maximum number of concurrently running tasks.
	// If 0, tasks are only counted.
	MaxTasks int64

	// IOLimitBytesPerSec is the maximum IO throughput for background copies.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller manages global resources (tasks, IO).
type Controller struct {
	cfg Config

	// Concurrency
	taskSem    *semaphore.Weighted // nil if unlimited
	tasksLive  atomic.Int64
	tasksPeak  atomic.Int64
	tasksTotal atomic.Int64

	// IO
	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MaxTasks > 0 {
		c.taskSem = semaphore.NewWeighted(cfg.MaxTasks)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// TryAcquireTask reserves a task slot without blocking.
// Returns ErrTaskLimitExceeded when all slots are taken. A task that is
// waiting on its own children keeps its slot, so a blocking acquire here
// could never be satisfied once the tree is deeper than MaxTasks.
func (c *Controller) TryAcquireTask() error {
	if c == nil {
		return nil
	}
	if c.taskSem != nil && !c.taskSem.TryAcquire(1) {
		return ErrTaskLimitExceeded
	}

	live := c.tasksLive.Add(1)
	c.tasksTotal.Add(1)
	for {
		peak := c.tasksPeak.Load()
		if live <= peak || c.tasksPeak.CompareAndSwap(peak, live) {
			break
		}
	}
	return nil
}

// ReleaseTask releases a task slot.
func (c *Controller) ReleaseTask() {
	if c == nil {
		return
	}
	if c.taskSem != nil {
		c.taskSem.Release(1)
	}
	c.tasksLive.Add(-1)
}

// LiveTasks returns the number of task slots currently held.
func (c *Controller) LiveTasks() int64 {
	if c == nil {
		return 0
	}
	return c.tasksLive.Load()
}

// PeakTasks returns the highest number of simultaneously held task slots.
func (c *Controller) PeakTasks() int64 {
	if c == nil {
		return 0
	}
	return c.tasksPeak.Load()
}

// TotalTasks returns the number of task slots ever granted.
func (c *Controller) TotalTasks() int64 {
	if c == nil {
		return 0
	}
	return c.tasksTotal.Load()
}

// MaxTasks returns the configured task limit (0 if unlimited).
func (c *Controller) MaxTasks() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MaxTasks
}

// AcquireIO waits until the IO limit allows the specified number of bytes.
// Requests larger than the burst size are split into burst-sized waits.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	burst := c.ioLimiter.Burst()
	for bytes > 0 {
		n := min(bytes, burst)
		if err := c.ioLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}

// TryAcquireIO attempts to acquire IO tokens without blocking.
// Returns true if tokens were acquired, false otherwise.
func (c *Controller) TryAcquireIO(bytes int) bool {
	if c == nil || c.ioLimiter == nil {
		return true
	}
	return c.ioLimiter.AllowN(time.Now(), bytes)
}
