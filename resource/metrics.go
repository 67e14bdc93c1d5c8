package resource

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics aggregates coordinator instrumentation on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Fetches    *prometheus.CounterVec
	Errors     *prometheus.CounterVec
	StaleDrops *prometheus.CounterVec
	Reloads    *prometheus.CounterVec
	InFlight   *prometheus.GaugeVec
}

// NewMetrics creates a Metrics set with its own Prometheus registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "workdesk",
			Subsystem: "resource",
			Name:      "fetches_total",
			Help:      "Fetches issued, by resource.",
		}, []string{"resource"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "workdesk",
			Subsystem: "resource",
			Name:      "fetch_errors_total",
			Help:      "Failed fetches, by resource.",
		}, []string{"resource"}),
		StaleDrops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "workdesk",
			Subsystem: "resource",
			Name:      "stale_responses_dropped_total",
			Help:      "Responses discarded because their key was superseded.",
		}, []string{"resource"}),
		Reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "workdesk",
			Subsystem: "resource",
			Name:      "reloads_total",
			Help:      "Forced reloads, by resource.",
		}, []string{"resource"}),
		InFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "workdesk",
			Subsystem: "resource",
			Name:      "fetches_in_flight",
			Help:      "Fetches currently in flight, by resource.",
		}, []string{"resource"}),
	}
	reg.MustRegister(m.Fetches, m.Errors, m.StaleDrops, m.Reloads, m.InFlight)
	return m
}

// Handler exposes the metrics registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
