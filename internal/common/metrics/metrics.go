// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quickload_api_requests_total",
			Help: "Total number of requests sent to the marketplace backend",
		},
		[]string{"client", "method", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quickload_api_request_duration_seconds",
			Help:    "Duration of backend requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"client", "method"},
	)

	APIRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "quickload_api_requests_in_flight",
			Help: "Number of backend requests currently in flight",
		},
		[]string{"client"},
	)

	EditSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quickload_edit_saves_total",
			Help: "Edit-mode saves and verification toggles by outcome",
		},
		[]string{"resource", "kind", "outcome"},
	)

	DashboardRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quickload_dashboard_requests_total",
			Help: "Requests served by the admin dashboard",
		},
		[]string{"route", "status"},
	)
)
