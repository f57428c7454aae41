// Package resource implements the Controller for global limits.
//
// The Controller provides centralized management of two resource types:
//
//   - Tasks: bound the number of live sort tasks (fail-fast)
//   - IO: rate-limit backup copies so they do not starve the sort
//
// # Architecture
//
//	┌───────────────────────────────────────────┐
//	│                Controller                 │
//	├─────────────────┬─────────────────────────┤
//	│  Task Slots     │  IO Rate Limiter        │
//	│  (fail-fast)    │  (token bucket)         │
//	├─────────────────┼─────────────────────────┤
//	│  TryAcquireTask │  AcquireIO              │
//	│  ReleaseTask    │  RateLimitedWriter      │
//	│  Live/PeakTasks │  RateLimitedReader      │
//	└─────────────────┴─────────────────────────┘
//
// # Task Slots
//
// Every concurrent sort task holds one slot for its lifetime, including
// the time it spends waiting on its two children. Acquisition therefore
// never blocks; an exhausted pool is reported to the caller, which turns
// it into a dispatch failure:
//
//	rc := resource.NewController(resource.Config{MaxTasks: 64})
//	if err := rc.TryAcquireTask(); err != nil {
//	    // ErrTaskLimitExceeded
//	}
//	defer rc.ReleaseTask()
//
// # IO Rate Limiting
//
//	rc := resource.NewController(resource.Config{
//	    IOLimitBytesPerSec: 100 * 1024 * 1024, // 100MB/s
//	})
//	writer := resource.NewRateLimitedWriter(ctx, file, rc)
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
