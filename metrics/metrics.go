// Package metrics defines Prometheus metrics for the budget console.
//
// Metrics are registered on Registry rather than the global default so the
// client and the development backend can expose exactly what they own.
//
// Naming follows Prometheus conventions:
//   - budget_console_ prefix for client metrics
//   - budget_devserver_ prefix for development backend metrics
//   - _total suffix for counters
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every metric defined in this package.
var Registry = prometheus.NewRegistry()

var (
	// RequestsTotal counts pipeline responses by outcome
	// (ok, unauthenticated, forbidden, server_error, network_error, cancelled).
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "budget_console_requests_total",
			Help: "Total outbound API requests by classified outcome.",
		},
		[]string{"outcome"},
	)

	// SessionTeardownsTotal counts forced session teardowns after a 401.
	SessionTeardownsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "budget_console_session_teardowns_total",
			Help: "Total sessions cleared because the backend rejected the credential.",
		},
	)

	// NavigationDecisionsTotal counts guard decisions.
	NavigationDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "budget_console_navigation_decisions_total",
			Help: "Total navigation guard decisions by outcome.",
		},
		[]string{"decision"},
	)

	// DevServerRequestsTotal counts development backend requests by route and status.
	DevServerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "budget_devserver_requests_total",
			Help: "Total requests served by the development backend.",
		},
		[]string{"route", "status"},
	)
)

func init() {
	Registry.MustRegister(
		RequestsTotal,
		SessionTeardownsTotal,
		NavigationDecisionsTotal,
		DevServerRequestsTotal,
	)
}

// RecordRequest increments the outcome counter.
func RecordRequest(outcome string) {
	RequestsTotal.WithLabelValues(outcome).Inc()
}

// RecordTeardown increments the forced teardown counter.
func RecordTeardown() {
	SessionTeardownsTotal.Inc()
}

// RecordNavigation increments the guard decision counter.
func RecordNavigation(decision string) {
	NavigationDecisionsTotal.WithLabelValues(decision).Inc()
}
