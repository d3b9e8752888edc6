// Package tracing provides OpenTelemetry tracing for the HTTP server and use cases.
//
// Middleware starts a server span per request, honoring incoming W3C trace
// context, and returns the trace id in the X-Trace-Id header. Use cases open
// child spans with StartSpan.
//
// No exporter is configured here; the process installs a TracerProvider at
// startup and tests install one backed by tracetest.
//
//	ctx, span := tracing.StartSpan(ctx, "note.summarize",
//	    attribute.String("note.id", id.String()))
//	defer span.End()
package tracing
