package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Read outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// ReadMetrics records project read outcomes. A nil *ReadMetrics is a no-op.
type ReadMetrics struct {
	reads    *prometheus.CounterVec
	duration prometheus.Histogram
	cache    *prometheus.CounterVec
}

// NewReadMetrics registers the read metrics on the provided registerer.
func NewReadMetrics(reg prometheus.Registerer) *ReadMetrics {
	if reg == nil {
		return &ReadMetrics{}
	}
	reads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "project_reads_total",
		Help: "Project list reads by outcome.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "project_read_duration_seconds",
		Help:    "Duration of project list reads in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	cache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "project_cache_lookups_total",
		Help: "Project cache lookups by result.",
	}, []string{"result"})
	reg.MustRegister(reads, duration, cache)
	return &ReadMetrics{reads: reads, duration: duration, cache: cache}
}

// ObserveRead records one read with its outcome and duration.
func (m *ReadMetrics) ObserveRead(outcome string, d time.Duration) {
	if m == nil || m.reads == nil {
		return
	}
	m.reads.WithLabelValues(outcome).Inc()
	m.duration.Observe(d.Seconds())
}

// IncCache counts one cache lookup.
func (m *ReadMetrics) IncCache(result string) {
	if m == nil || m.cache == nil {
		return
	}
	m.cache.WithLabelValues(result).Inc()
}
