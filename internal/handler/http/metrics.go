package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"notes-backend/internal/handler/http/pathutil"
	"notes-backend/internal/handler/http/responsewriter"
)

// RequestMetrics is the RED instrumentation of the HTTP surface. The SLO tracker
// reads http_requests_total and http_request_duration_seconds back by name.
type RequestMetrics struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	inFlight     prometheus.Gauge
	requestSize  *prometheus.HistogramVec
	responseSize *prometheus.HistogramVec
}

// NewRequestMetrics registers the request metrics with reg.
func NewRequestMetrics(reg prometheus.Registerer) *RequestMetrics {
	f := promauto.With(reg)
	sizeBuckets := prometheus.ExponentialBuckets(100, 10, 6)
	return &RequestMetrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "path", "status"}),
		// 5ms to 10s keeps p95 and p99 of note calls inside finite buckets.
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "path", "status"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Requests currently being served",
		}),
		requestSize: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "Declared request body size",
			Buckets: sizeBuckets,
		}, []string{"method", "path"}),
		responseSize: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "Response body size",
			Buckets: sizeBuckets,
		}, []string{"method", "path"}),
	}
}

var defaultRequestMetrics = NewRequestMetrics(prometheus.DefaultRegisterer)

// MetricsMiddleware instruments next with the process-wide RequestMetrics.
func MetricsMiddleware(next http.Handler) http.Handler {
	return defaultRequestMetrics.Middleware(next)
}

// Middleware counts and times every request. Route labels come from the mux
// pattern, or from pathutil when next is not a ServeMux, so note IDs never
// become label values.
func (m *RequestMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		rec := responsewriter.Wrap(w)
		start := time.Now()
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start).Seconds()

		route := routeLabel(r)
		status := strconv.Itoa(rec.StatusCode())
		m.requests.WithLabelValues(r.Method, route, status).Inc()
		m.duration.WithLabelValues(r.Method, route, status).Observe(elapsed)
		if r.ContentLength > 0 {
			m.requestSize.WithLabelValues(r.Method, route).Observe(float64(r.ContentLength))
		}
		m.responseSize.WithLabelValues(r.Method, route).Observe(float64(rec.BytesWritten()))
	})
}

// routeLabel strips the method from a "PUT /notes/{id}" pattern.
func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return pathutil.NormalizePath(r.URL.Path)
	}
	if _, path, ok := strings.Cut(r.Pattern, " "); ok {
		return path
	}
	return r.Pattern
}

// MetricsHandler serves the default registry in the Prometheus text format.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
