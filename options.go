package sfcgo

import (
	"log/slog"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	buildConcurrency int
}

// Option configures Build behavior.
type Option func(*options)

// WithLogger configures structured logging for build and query diagnostics.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := sfcgo.NewJSONLogger(slog.LevelInfo)
//	idx, _ := sfcgo.Build(ctx, items, 3, 8, sfcgo.WithLogger(logger))
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

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &sfcgo.BasicMetricsCollector{}
//	idx, _ := sfcgo.Build(ctx, items, 3, 8, sfcgo.WithMetricsCollector(metrics))
//	// ... query idx ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithBuildConcurrency bounds the number of goroutines used for the
// quantize+encode pass of Build. Values < 1 fall back to GOMAXPROCS.
//
// The pass is embarrassingly parallel; the resulting index is identical
// for any concurrency level.
func WithBuildConcurrency(n int) Option {
	return func(o *options) {
		o.buildConcurrency = n
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
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	return o
}
