package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RecordsCreated *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec

	ClassificationRuns     prometheus.Counter
	ClassificationDuration prometheus.Histogram

	SummaryCacheHits   prometheus.Counter
	SummaryCacheMisses prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RecordsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "parapet_records_created_total",
			Help: "Total records created, labeled by entity.",
		}, []string{"entity"}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "parapet_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		ClassificationRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "parapet_filing_classification_runs_total",
			Help: "Number of filing display classifications performed.",
		}),
		ClassificationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "parapet_filing_classification_duration_seconds",
			Help:    "Time spent classifying filing records for display.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		SummaryCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "parapet_summary_cache_hits_total",
			Help: "AI summary cache hits.",
		}),
		SummaryCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "parapet_summary_cache_misses_total",
			Help: "AI summary cache misses.",
		}),
	}
}

// IncrementCreated bumps the created counter for an entity.
func (m *Metrics) IncrementCreated(entity string) {
	if m == nil {
		return
	}
	m.RecordsCreated.WithLabelValues(entity).Inc()
}
