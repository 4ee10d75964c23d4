// Package metrics defines the Prometheus metrics of the identity service.
//
// Metric naming follows Prometheus conventions:
//   - vyapkart_ prefix for all custom metrics
//   - _total suffix for counters
//   - _seconds suffix for duration histograms
package metrics

import (
	"net/http"
	"time"

	"vyapkart/config"
	"vyapkart/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private registry so tests and multiple app instances do not collide on
// the global default registerer.
type Recorder struct {
	registry *prometheus.Registry

	// reconciliationsTotal counts reconciliation attempts by entry point and outcome.
	reconciliationsTotal *prometheus.CounterVec

	// reconciliationDurationSeconds is a histogram of end-to-end reconciliation latency.
	reconciliationDurationSeconds *prometheus.HistogramVec
}

// New creates a Recorder with process and Go runtime collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		reconciliationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vyapkart_reconciliations_total",
				Help: "Total identity reconciliations by entry point and outcome.",
			},
			[]string{"entry_point", "outcome"},
		),
		reconciliationDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vyapkart_reconciliation_duration_seconds",
				Help:    "Duration of identity reconciliations in seconds, including token verification.",
				Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"entry_point"},
		),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.reconciliationsTotal,
		r.reconciliationDurationSeconds,
	)

	return r
}

// NewReconciliationMetrics exposes the Recorder as the domain interface.
func NewReconciliationMetrics(r *Recorder) service.ReconciliationMetrics {
	return r
}

// ObserveOutcome implements service.ReconciliationMetrics.
func (r *Recorder) ObserveOutcome(entryPoint, outcome string) {
	r.reconciliationsTotal.WithLabelValues(entryPoint, outcome).Inc()
}

// ObserveDuration implements service.ReconciliationMetrics.
func (r *Recorder) ObserveDuration(entryPoint string, d time.Duration) {
	r.reconciliationDurationSeconds.WithLabelValues(entryPoint).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Enabled reports whether /metrics should be routed.
func Enabled(cfg *config.Config) bool {
	return cfg.Metrics != nil && cfg.Metrics.Enabled
}
