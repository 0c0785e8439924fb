package epigo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    estimateCounter   prometheus.Counter
//	    estimateHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordEstimate(duration time.Duration, err error) {
//	    p.estimateCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordEstimate is called after each estimation run.
	// duration is the total time taken, err is nil if successful.
	RecordEstimate(duration time.Duration, err error)

	// RecordHypotheses is called once per sampled minimal set with the
	// number of candidate models it produced.
	RecordHypotheses(models int)

	// RecordRefit is called after the least-squares refit stage.
	// improved reports whether the refit replaced the minimal-sample model.
	RecordRefit(duration time.Duration, improved bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEstimate(time.Duration, error) {}
func (NoopMetricsCollector) RecordHypotheses(int)                {}
func (NoopMetricsCollector) RecordRefit(time.Duration, bool)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	EstimateCount      atomic.Int64
	EstimateErrors     atomic.Int64
	EstimateTotalNanos atomic.Int64
	SampleCount        atomic.Int64
	HypothesisCount    atomic.Int64
	RefitCount         atomic.Int64
	RefitImproved      atomic.Int64
}

// RecordEstimate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEstimate(duration time.Duration, err error) {
	b.EstimateCount.Add(1)
	b.EstimateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EstimateErrors.Add(1)
	}
}

// RecordHypotheses implements MetricsCollector.
func (b *BasicMetricsCollector) RecordHypotheses(models int) {
	b.SampleCount.Add(1)
	b.HypothesisCount.Add(int64(models))
}

// RecordRefit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRefit(duration time.Duration, improved bool) {
	b.RefitCount.Add(1)
	if improved {
		b.RefitImproved.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		EstimateCount:    b.EstimateCount.Load(),
		EstimateErrors:   b.EstimateErrors.Load(),
		EstimateAvgNanos: b.getAvgEstimateNanos(),
		SampleCount:      b.SampleCount.Load(),
		HypothesisCount:  b.HypothesisCount.Load(),
		RefitCount:       b.RefitCount.Load(),
		RefitImproved:    b.RefitImproved.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgEstimateNanos() int64 {
	count := b.EstimateCount.Load()
	if count == 0 {
		return 0
	}
	return b.EstimateTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	EstimateCount    int64
	EstimateErrors   int64
	EstimateAvgNanos int64
	SampleCount      int64
	HypothesisCount  int64
	RefitCount       int64
	RefitImproved    int64
}
