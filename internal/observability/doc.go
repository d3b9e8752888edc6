// Package observability groups the notes service's logging, metrics and tracing.
//
// Subpackages:
//   - logging: slog logger construction and per-request context propagation
//   - metrics: Prometheus registry for database and note metrics
//   - slo: windowed availability, error rate and latency indicators
//   - tracing: OpenTelemetry tracer provider and HTTP span middleware
package observability
