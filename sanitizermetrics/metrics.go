// Package sanitizermetrics exposes the sanitizer's runtime counters as
// Prometheus collectors (github.com/prometheus/client_golang), replacing
// the proxy's hand-rolled atomic-counter Metrics/Snapshot pair with the
// ecosystem-standard instrumentation library the rest of the pack reaches
// for (iruldev-golang-api-hexagonal wires prometheus the same way for its
// HTTP handlers).
package sanitizermetrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry wraps a private prometheus.Registry and the sanitizer's
// counters/histograms, so multiple Engines in the same process (tests, for
// instance) don't collide on the global default registry.
type Registry struct {
	reg *prometheus.Registry

	PayloadsProcessed  prometheus.Counter
	RedactionsApplied  *prometheus.CounterVec
	ConfigErrors       prometheus.Counter
	ProcessingDuration prometheus.Histogram
}

// New builds a Registry with every collector registered.
func New() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Registry{
		reg: reg,
		PayloadsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "sanitizer_payloads_processed_total",
			Help: "Total number of payloads passed through the sanitizer.",
		}),
		RedactionsApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sanitizer_redactions_applied_total",
			Help: "Total number of redactions applied, labeled by rule id.",
		}, []string{"rule_id"}),
		ConfigErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "sanitizer_config_errors_total",
			Help: "Total number of rule configuration build failures.",
		}),
		ProcessingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sanitizer_processing_duration_seconds",
			Help:    "Duration of a single payload's sanitization pass.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Handler returns the HTTP handler that serves this registry's metrics in
// the Prometheus text exposition format, for mounting at GET /metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// ObserveDuration records d against ProcessingDuration, in seconds.
func (r *Registry) ObserveDuration(d time.Duration) {
	r.ProcessingDuration.Observe(d.Seconds())
}
