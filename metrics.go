package querystore

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordIndexBuild is called after each index construction pass.
	// items is the number of records indexed, duration the time taken.
	RecordIndexBuild(items int, duration time.Duration)

	// RecordQuery is called after each index query.
	// op names the query kind (equals, range, first_n, last_n),
	// matched is the result cardinality.
	RecordQuery(op string, matched int, duration time.Duration)

	// RecordFilter is called after each filter materialization.
	// filters is the number of filters passed, selected the number of
	// positions in the (post-conjunction) selection.
	RecordFilter(filters, selected int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIndexBuild(int, time.Duration)    {}
func (NoopMetricsCollector) RecordQuery(string, int, time.Duration) {}
func (NoopMetricsCollector) RecordFilter(int, int, time.Duration)   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	IndexBuildCount      atomic.Int64
	IndexBuildItems      atomic.Int64
	IndexBuildTotalNanos atomic.Int64
	QueryCount           atomic.Int64
	QueryMatched         atomic.Int64
	QueryTotalNanos      atomic.Int64
	FilterCount          atomic.Int64
	FilterSelected       atomic.Int64
	FilterTotalNanos     atomic.Int64
}

// RecordIndexBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIndexBuild(items int, duration time.Duration) {
	b.IndexBuildCount.Add(1)
	b.IndexBuildItems.Add(int64(items))
	b.IndexBuildTotalNanos.Add(duration.Nanoseconds())
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(op string, matched int, duration time.Duration) {
	b.QueryCount.Add(1)
	b.QueryMatched.Add(int64(matched))
	b.QueryTotalNanos.Add(duration.Nanoseconds())
}

// RecordFilter implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFilter(filters, selected int, duration time.Duration) {
	b.FilterCount.Add(1)
	b.FilterSelected.Add(int64(selected))
	b.FilterTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		IndexBuildCount: b.IndexBuildCount.Load(),
		IndexBuildItems: b.IndexBuildItems.Load(),
		QueryCount:      b.QueryCount.Load(),
		QueryMatched:    b.QueryMatched.Load(),
		QueryAvgNanos:   b.getAvgQueryNanos(),
		FilterCount:     b.FilterCount.Load(),
		FilterSelected:  b.FilterSelected.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgQueryNanos() int64 {
	count := b.QueryCount.Load()
	if count == 0 {
		return 0
	}
	return b.QueryTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	IndexBuildCount int64
	IndexBuildItems int64
	QueryCount      int64
	QueryMatched    int64
	QueryAvgNanos   int64
	FilterCount     int64
	FilterSelected  int64
}
