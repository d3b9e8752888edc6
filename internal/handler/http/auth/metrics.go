package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// authRequestsTotal counts signup and login requests by result.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total signup and login requests by operation and result",
		},
		[]string{"operation", "result"}, // result: success | invalid_request | rejected | error
	)

	// authDuration tracks signup and login latency, including the identity provider round trip.
	authDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Signup and login duration by operation",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		},
		[]string{"operation"},
	)

	// authzCheckDuration tracks bearer token verification time.
	authzCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "authz_check_duration_seconds",
			Help:    "Bearer token verification duration",
			Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	// authzRejections counts requests refused by the auth middleware.
	authzRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authz_rejections_total",
			Help: "Requests rejected by the authentication middleware by reason",
		},
		[]string{"reason"}, // missing_header | not_bearer | invalid_token | unknown_user
	)
)

// RecordAuthRequest records the outcome of a signup or login.
func RecordAuthRequest(operation, result string) {
	authRequestsTotal.WithLabelValues(operation, result).Inc()
}

// RecordAuthDuration records how long a signup or login took.
func RecordAuthDuration(operation string, durationSeconds float64) {
	authDuration.WithLabelValues(operation).Observe(durationSeconds)
}

// RecordAuthzCheckDuration records token verification duration.
func RecordAuthzCheckDuration(durationSeconds float64) {
	authzCheckDuration.Observe(durationSeconds)
}

// RecordAuthzRejection records a request refused by Authz.
func RecordAuthzRejection(reason string) {
	authzRejections.WithLabelValues(reason).Inc()
}
