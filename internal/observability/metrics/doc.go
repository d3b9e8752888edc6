// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package holds the business and database metrics:
//   - note counts and per-operation results
//   - summary requests and their effective sentence bound
//   - database query durations and pool statistics
//
// HTTP request metrics live with the HTTP middleware. All metrics register with
// the Prometheus default registry and are exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "notes-backend/internal/observability/metrics"
//
//	func refresh(ctx context.Context, repo repository.NoteRepository) {
//	    start := time.Now()
//	    n, err := repo.Count(ctx)
//	    metrics.RecordDBQuery("count_notes", time.Since(start))
//	    if err == nil {
//	        metrics.UpdateNotesTotal(n)
//	    }
//	}
package metrics
