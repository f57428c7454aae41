package parsort

import (
	"log/slog"
)

type options struct {
	maxTasks         int64
	spawner          Spawner
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures an Engine.
type Option func(*options)

// WithMaxTasks bounds the number of sort tasks alive at once.
//
// A task keeps its slot while it waits for its two children, so the bound
// applies to the whole tree of splits, not just to running goroutines. When
// the bound is reached the next split fails with ErrDispatch instead of
// waiting; choose a threshold large enough that the tree fits.
//
// If maxTasks <= 0, the number of tasks is unbounded (the default).
func WithMaxTasks(maxTasks int64) Option {
	return func(o *options) {
		o.maxTasks = maxTasks
	}
}

// WithSpawner replaces the goroutine spawner used for splits.
// Pass nil to restore the default. WithMaxTasks has no effect on a custom
// spawner.
func WithSpawner(s Spawner) Option {
	return func(o *options) {
		o.spawner = s
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
//	metrics := &parsort.BasicMetricsCollector{}
//	engine := parsort.New(parsort.WithMetricsCollector(metrics))
//	// ... sort ...
//	stats := metrics.GetStats()
//	fmt.Printf("splits: %d, sequential: %d\n", stats.SplitCount, stats.SequentialCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
