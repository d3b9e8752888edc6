package metrics

import (
	"time"
)

// RecordNoteOperation records the outcome of a note use case call.
func RecordNoteOperation(operation, result string) {
	NoteOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordSummaryRequest records a summary request and the sentence bound it ran with.
// requested is ignored when the request failed before a bound was chosen.
func RecordSummaryRequest(result string, requested int) {
	SummaryRequestsTotal.WithLabelValues(result).Inc()
	if requested > 0 {
		SummaryRequestedSentences.Observe(float64(requested))
	}
}

// UpdateNotesTotal updates the total count of notes in the database.
// This gauge should be updated periodically to reflect the current state.
func UpdateNotesTotal(count int64) {
	NotesTotal.Set(float64(count))
}

// RecordMetricsRefresh records the result of a scheduled gauge refresh.
func RecordMetricsRefresh(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	MetricsRefreshTotal.WithLabelValues(result).Inc()
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "count_notes").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
