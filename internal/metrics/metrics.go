// Package metrics exports Prometheus metrics for the gallery and embed viewers.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portfolio"

// Metrics holds all site metrics
type Metrics struct {
	FilterRuns        *prometheus.CounterVec
	FilterResultSize  prometheus.Histogram
	EmptyResults      prometheus.Counter
	ViewerTransitions *prometheus.CounterVec
	ViewersOpen       prometheus.Gauge
	ScrollLockHolders prometheus.Gauge
	CatalogReloads    *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the metrics against reg. Tests pass a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FilterRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_runs_total",
			Help:      "Catalog filter evaluations by content type.",
		}, []string{"content_type"}),
		FilterResultSize: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "filter_result_size",
			Help:      "Number of projects returned by the catalog filter.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		EmptyResults: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_empty_results_total",
			Help:      "Filter evaluations that matched nothing.",
		}),
		ViewerTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embed_transitions_total",
			Help:      "Embed viewer state transitions by target state.",
		}, []string{"state"}),
		ViewersOpen: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "embed_viewers_open",
			Help:      "Embed viewers currently open.",
		}),
		ScrollLockHolders: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scroll_lock_holders",
			Help:      "Fullscreen viewers currently holding the scroll lock.",
		}),
		CatalogReloads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_reloads_total",
			Help:      "Catalog file reloads by result.",
		}, []string{"result"}),
		gatherer: reg,
	}
}

// ObserveFilter records one filter evaluation
func (m *Metrics) ObserveFilter(contentType string, results int) {
	m.FilterRuns.WithLabelValues(contentType).Inc()
	m.FilterResultSize.Observe(float64(results))
	if results == 0 {
		m.EmptyResults.Inc()
	}
}

// Handler returns the HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
