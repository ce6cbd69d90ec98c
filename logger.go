package sfcgo

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with sfcgo-specific context.
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
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithDimensions adds a dimensions field to the logger.
func (l *Logger) WithDimensions(dimensions int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimensions", dimensions),
	}
}

// WithCellBits adds a cell_bits field to the logger.
func (l *Logger) WithCellBits(cellBits int) *Logger {
	return &Logger{
		Logger: l.Logger.With("cell_bits", cellBits),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogBuild logs the outcome of an index build.
func (l *Logger) LogBuild(items, indexed, dropped, cells int, duration time.Duration) {
	if dropped > 0 {
		l.Warn("build completed with dropped items",
			"items", items,
			"indexed", indexed,
			"dropped", dropped,
			"cells", cells,
			"duration", duration,
		)
	} else {
		l.Info("build completed",
			"items", items,
			"indexed", indexed,
			"cells", cells,
			"duration", duration,
		)
	}
}

// LogDroppedItem logs a per-item build failure. Dropped items are
// diagnostics, not control flow; the build continues without them.
func (l *Logger) LogDroppedItem(ordinal int, err error) {
	l.Warn("dropping item",
		"ordinal", ordinal,
		"error", err,
	)
}

// LogQueryMiss logs a query key that could not be resolved against the
// grid. Such keys are answered with an empty result.
func (l *Logger) LogQueryMiss(op string, err error) {
	l.Debug("query key outside grid",
		"op", op,
		"error", err,
	)
}
