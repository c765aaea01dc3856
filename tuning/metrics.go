package tuning

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exports tuning service metrics in Prometheus format.
type Metrics struct {
	registry *prometheus.Registry

	registrations    *prometheus.CounterVec
	deletions        prometheus.Counter
	propagationSkips prometheus.Counter
	mirrorRemovals   prometheus.Counter
	syncLatency      *prometheus.HistogramVec
}

// NewMetrics creates a metrics set on its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tuning_registrations_total",
			Help: "Total profile registrations by result.",
		}, []string{"result"}),
		deletions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tuning_deletions_total",
			Help: "Total profile deletions.",
		}),
		propagationSkips: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tuning_propagation_skips_total",
			Help: "Reverse-propagation writes skipped after a per-peer failure.",
		}),
		mirrorRemovals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tuning_mirror_removals_total",
			Help: "Mirrored similarity entries removed during deletion cleanup.",
		}),
		syncLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tuning_sync_duration_seconds",
			Help:    "Similarity sync pass duration.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		}, []string{"category"}),
	}

	registry.MustRegister(
		m.registrations,
		m.deletions,
		m.propagationSkips,
		m.mirrorRemovals,
		m.syncLatency,
	)
	return m
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
