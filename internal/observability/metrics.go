package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes prometheus counters for the gateway.
type Metrics struct {
	registry *prometheus.Registry

	AuthEvents       *prometheus.CounterVec
	UpstreamRequests *prometheus.CounterVec
	GuardRedirects   *prometheus.CounterVec
}

// NewMetrics initializes and registers all collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: registry,
		AuthEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel_front",
			Name:      "auth_events_total",
			Help:      "Authentication events by type and identity class.",
		}, []string{"event", "class"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel_front",
			Name:      "upstream_requests_total",
			Help:      "Requests forwarded to the booking API by method and status.",
		}, []string{"method", "status"}),
		GuardRedirects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel_front",
			Name:      "guard_redirects_total",
			Help:      "Navigations blocked by the route guard, by identity class.",
		}, []string{"class"}),
	}
	registry.MustRegister(m.AuthEvents, m.UpstreamRequests, m.GuardRedirects)
	return m
}

// Handler returns the scrape endpoint handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
