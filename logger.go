package parsort

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with parsort-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// LogSort logs a top-level sort.
func (l *Logger) LogSort(ctx context.Context, r Range, threshold int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "sort failed",
			"range", r.String(),
			"threshold", threshold,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "sort completed",
		"records", r.Len(),
		"threshold", threshold,
		"elapsed", elapsed,
	)
}

// LogDispatchFailure logs a task that could not be started.
func (l *Logger) LogDispatchFailure(ctx context.Context, r Range, err error) {
	l.WarnContext(ctx, "dispatch failed",
		"range", r.String(),
		"records", r.Len(),
		"error", err,
	)
}

// LogOpen logs mapping a record file.
func (l *Logger) LogOpen(ctx context.Context, path string, records int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed",
			"path", path,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "store mapped",
		"path", path,
		"records", records,
	)
}

// LogBackup logs writing a compressed copy of a record file.
func (l *Logger) LogBackup(ctx context.Context, path string, raw, written int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "backup failed",
			"path", path,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "backup written",
		"path", path,
		"raw_bytes", raw,
		"written_bytes", written,
	)
}

// LogVerify logs the outcome of a post-sort verification.
func (l *Logger) LogVerify(ctx context.Context, report Report, fingerprintOK bool) {
	if report.Sorted() && fingerprintOK {
		l.InfoContext(ctx, "verify passed",
			"records", report.Len,
		)
		return
	}
	l.ErrorContext(ctx, "verify failed",
		"records", report.Len,
		"descents", report.Descents.GetCardinality(),
		"fingerprint_ok", fingerprintOK,
	)
}
