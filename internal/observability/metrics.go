package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for NOTAM generation and webhooks.
type Metrics struct {
	BatchRuns        prometheus.Counter
	NotamsGenerated  prometheus.Counter
	BatchItemResults *prometheus.CounterVec // labels: outcome={generated,webhook_failed,invalid_weather,duplicate}
	BatchDuration    prometheus.Histogram

	WebhookRequests *prometheus.CounterVec   // labels: webhook={weather,created,updated}, outcome={success,error}
	WebhookDuration *prometheus.HistogramVec // labels: webhook

	ListCache        *prometheus.CounterVec // labels: result={hit,miss,error}
	SchedulerRunning prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.BatchRuns,
		m.NotamsGenerated,
		m.BatchItemResults,
		m.BatchDuration,
		m.WebhookRequests,
		m.WebhookDuration,
		m.ListCache,
		m.SchedulerRunning,
	)
	return m
}

// NewMetricsForTesting returns unregistered collectors so tests can build
// as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		BatchRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "notam_admin",
			Name:      "batch_runs_total",
			Help:      "Total batch generation runs.",
		}),
		NotamsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "notam_admin",
			Name:      "notams_generated_total",
			Help:      "Total NOTAMs created by batch generation.",
		}),
		BatchItemResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notam_admin",
			Name:      "batch_items_total",
			Help:      "Batch items by outcome.",
		}, []string{"outcome"}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "notam_admin",
			Name:      "batch_duration_seconds",
			Help:      "Duration of a complete batch generation run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		WebhookRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notam_admin",
			Name:      "webhook_requests_total",
			Help:      "Outbound webhook calls by webhook and outcome.",
		}, []string{"webhook", "outcome"}),
		WebhookDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "notam_admin",
			Name:      "webhook_duration_seconds",
			Help:      "Outbound webhook request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"webhook"}),
		ListCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notam_admin",
			Name:      "list_cache_total",
			Help:      "NOTAM list cache lookups by result.",
		}, []string{"result"}),
		SchedulerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "notam_admin",
			Name:      "scheduler_running",
			Help:      "1 while scheduled generation is active.",
		}),
	}
}
