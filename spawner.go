package parsort

import (
	"context"

	"github.com/hupe1980/parsort/internal/resource"
)

// Spawner starts sort tasks on new execution contexts.
//
// Spawn either arranges for task to run exactly once and returns nil, or
// returns an error and never runs task.
type Spawner interface {
	Spawn(ctx context.Context, task func()) error
}

// SpawnerFunc adapts a function to the Spawner interface.
type SpawnerFunc func(ctx context.Context, task func()) error

// Spawn implements Spawner.
func (f SpawnerFunc) Spawn(ctx context.Context, task func()) error { return f(ctx, task) }

// goSpawner runs each task on its own goroutine, admitted by a task slot.
type goSpawner struct {
	rc *resource.Controller
}

func (s goSpawner) Spawn(ctx context.Context, task func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.rc.TryAcquireTask(); err != nil {
		return err
	}
	go func() {
		defer s.rc.ReleaseTask()
		task()
	}()
	return nil
}
