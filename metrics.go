package sfcgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordBuild is called once per Build call. items is the number of
	// source items seen, dropped the number that failed quantization or
	// encoding, duration the total build time. err is nil unless the build
	// failed as a whole.
	RecordBuild(items, dropped int, duration time.Duration, err error)

	// RecordFind is called after each exact lookup.
	RecordFind(duration time.Duration, results int)

	// RecordFindRange is called after each range query.
	RecordFindRange(duration time.Duration, results int)

	// RecordFindByValue is called after each reverse lookup.
	RecordFindByValue(duration time.Duration, results int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordFind(time.Duration, int)               {}
func (NoopMetricsCollector) RecordFindRange(time.Duration, int)          {}
func (NoopMetricsCollector) RecordFindByValue(time.Duration, int)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount        atomic.Int64
	BuildErrors       atomic.Int64
	BuildItems        atomic.Int64
	BuildDropped      atomic.Int64
	BuildTotalNanos   atomic.Int64
	FindCount         atomic.Int64
	FindResults       atomic.Int64
	FindTotalNanos    atomic.Int64
	RangeCount        atomic.Int64
	RangeResults      atomic.Int64
	RangeTotalNanos   atomic.Int64
	ByValueCount      atomic.Int64
	ByValueResults    atomic.Int64
	ByValueTotalNanos atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(items, dropped int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildItems.Add(int64(items))
	b.BuildDropped.Add(int64(dropped))
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordFind implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFind(duration time.Duration, results int) {
	b.FindCount.Add(1)
	b.FindResults.Add(int64(results))
	b.FindTotalNanos.Add(duration.Nanoseconds())
}

// RecordFindRange implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFindRange(duration time.Duration, results int) {
	b.RangeCount.Add(1)
	b.RangeResults.Add(int64(results))
	b.RangeTotalNanos.Add(duration.Nanoseconds())
}

// RecordFindByValue implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFindByValue(duration time.Duration, results int) {
	b.ByValueCount.Add(1)
	b.ByValueResults.Add(int64(results))
	b.ByValueTotalNanos.Add(duration.Nanoseconds())
}

// BasicMetricsStats is a point-in-time snapshot of a BasicMetricsCollector.
type BasicMetricsStats struct {
	BuildCount     int64
	BuildErrors    int64
	BuildItems     int64
	BuildDropped   int64
	BuildAvgNanos  int64
	FindCount      int64
	FindResults    int64
	FindAvgNanos   int64
	RangeCount     int64
	RangeResults   int64
	RangeAvgNanos  int64
	ByValueCount   int64
	ByValueResults int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:     b.BuildCount.Load(),
		BuildErrors:    b.BuildErrors.Load(),
		BuildItems:     b.BuildItems.Load(),
		BuildDropped:   b.BuildDropped.Load(),
		BuildAvgNanos:  avgNanos(b.BuildCount.Load(), b.BuildTotalNanos.Load()),
		FindCount:      b.FindCount.Load(),
		FindResults:    b.FindResults.Load(),
		FindAvgNanos:   avgNanos(b.FindCount.Load(), b.FindTotalNanos.Load()),
		RangeCount:     b.RangeCount.Load(),
		RangeResults:   b.RangeResults.Load(),
		RangeAvgNanos:  avgNanos(b.RangeCount.Load(), b.RangeTotalNanos.Load()),
		ByValueCount:   b.ByValueCount.Load(),
		ByValueResults: b.ByValueResults.Load(),
	}
}

func avgNanos(count, total int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}
