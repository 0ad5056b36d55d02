package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Navigation sources and results used as metric labels.
const (
	sourceHTTP = "http"
	sourceWS   = "ws"

	resultFound    = "found"
	resultNotFound = "not_found"
	resultError    = "error"
)

// notFoundRoute labels metrics for locations that matched nothing.
const notFoundRoute = "-"

// metrics holds the Prometheus collectors for a Server.
type metrics struct {
	navigations    *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	activeSessions prometheus.Gauge
	sessionsTotal  prometheus.Counter
	wsErrors       *prometheus.CounterVec
}

// newMetrics creates the collectors. A nil registerer creates unregistered
// collectors, which keeps call sites free of nil checks when metrics are
// disabled.
func newMetrics(reg prometheus.Registerer, namespace string) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "navigations_total",
			Help:      "Total number of navigations by route, result and source",
		}, []string{"route", "result", "source"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "View render duration in seconds",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}, []string{"route", "source"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of open WebSocket navigation sessions",
		}),

		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Total number of WebSocket navigation sessions opened",
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "websocket_errors_total",
			Help:      "Total WebSocket errors by type",
		}, []string{"type"}),
	}
}

// recordNavigation counts one navigation.
func (m *metrics) recordNavigation(route, result, source string) {
	if route == "" {
		route = notFoundRoute
	}
	m.navigations.WithLabelValues(route, result, source).Inc()
}
