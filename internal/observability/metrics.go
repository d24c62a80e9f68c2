package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quake_dashboard"

// Metrics holds the Prometheus counters, histograms, and gauges for the report pipeline.
type Metrics struct {
	FetchRequests  *prometheus.CounterVec // labels: outcome={success,error}
	FetchDuration  prometheus.Histogram
	RowsFetched    prometheus.Histogram
	EntriesCreated prometheus.Histogram
	Renders        *prometheus.CounterVec // labels: outcome={success,fetch_error,column_error}

	// Supporting collaborators.
	CacheLookups     *prometheus.CounterVec // labels: result={hit,miss}
	PlanMissing      prometheus.Counter
	ReportsPublished prometheus.Counter
	PublishErrors    prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsFor(prometheus.DefaultRegisterer)
}

// NewMetricsFor creates all pipeline metrics and registers them with reg.
func NewMetricsFor(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.RowsFetched,
		m.EntriesCreated,
		m.Renders,
		m.CacheLookups,
		m.PlanMissing,
		m.ReportsPublished,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_requests_total",
			Help:      "Sheet fetches by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a sheet fetch including parsing.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RowsFetched: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rows_fetched",
			Help:      "Number of survey responses per fetch.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		EntriesCreated: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "entries_normalized",
			Help:      "Number of damage entries after splitting responses.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
		}),
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Report builds by outcome.",
		}, []string{"outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Sheet cache lookups by result.",
		}, []string{"result"}),
		PlanMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_missing_total",
			Help:      "Renders where the repair plan file could not be read.",
		}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_published_total",
			Help:      "Report snapshots written to Kafka.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Failed report snapshot writes.",
		}),
	}
}
