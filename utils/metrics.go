package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rosa_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rosa_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rosa_booking_actions_total",
			Help: "Booking writes by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	IntegrityConflicts = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rosa_booking_integrity_conflicts",
			Help: "Duplicate confirmed bookings found by the last integrity check",
		},
		[]string{"kind"},
	)

	ActiveSubscriptions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rosa_day_subscriptions_active",
			Help: "Open day-grid subscriptions",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBookingAction(action, outcome string) {
	BookingActionsTotal.WithLabelValues(action, outcome).Inc()
}
