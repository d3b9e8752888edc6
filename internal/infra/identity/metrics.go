package identity

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"notes-backend/internal/resilience/circuitbreaker"
)

var (
	// identityRequestsTotal counts provider calls by operation and result.
	identityRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_requests_total",
			Help: "Total identity provider requests by operation and result",
		},
		[]string{"operation", "result"}, // result: success | rejected | error | circuit_open
	)

	// identityRequestDuration tracks provider call latency including retries.
	identityRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "identity_request_duration_seconds",
			Help:    "Identity provider request duration including retries",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)
)

func requestResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case IsClientError(err):
		return "rejected"
	case errors.Is(err, circuitbreaker.ErrOpenState):
		return "circuit_open"
	default:
		return "error"
	}
}

func recordRequest(op string, err error, d time.Duration) {
	identityRequestsTotal.WithLabelValues(op, requestResult(err)).Inc()
	identityRequestDuration.WithLabelValues(op).Observe(d.Seconds())
}
