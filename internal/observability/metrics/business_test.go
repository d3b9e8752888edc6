package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordNoteOperation(t *testing.T) {
	before := testutil.ToFloat64(NoteOperationsTotal.WithLabelValues("create", "success"))

	RecordNoteOperation("create", "success")
	RecordNoteOperation("create", "success")
	RecordNoteOperation("create", "invalid")

	assert.Equal(t, before+2, testutil.ToFloat64(NoteOperationsTotal.WithLabelValues("create", "success")))
}

func TestRecordSummaryRequest(t *testing.T) {
	tests := []struct {
		name      string
		result    string
		requested int
	}{
		{name: "success with default bound", result: "success", requested: 3},
		{name: "success with clamped bound", result: "success", requested: 10},
		{name: "empty content", result: "empty_content", requested: 0},
		{name: "not found", result: "not_found", requested: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(SummaryRequestsTotal.WithLabelValues(tt.result))
			assert.NotPanics(t, func() {
				RecordSummaryRequest(tt.result, tt.requested)
			})
			assert.Equal(t, before+1, testutil.ToFloat64(SummaryRequestsTotal.WithLabelValues(tt.result)))
		})
	}
}

func TestUpdateNotesTotal(t *testing.T) {
	for _, count := range []int64{0, 1, 100, 10000} {
		UpdateNotesTotal(count)
		assert.Equal(t, float64(count), testutil.ToFloat64(NotesTotal))
	}
}

func TestRecordMetricsRefresh(t *testing.T) {
	okBefore := testutil.ToFloat64(MetricsRefreshTotal.WithLabelValues("success"))
	failBefore := testutil.ToFloat64(MetricsRefreshTotal.WithLabelValues("failure"))

	RecordMetricsRefresh(true)
	RecordMetricsRefresh(false)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(MetricsRefreshTotal.WithLabelValues("success")))
	assert.Equal(t, failBefore+1, testutil.ToFloat64(MetricsRefreshTotal.WithLabelValues("failure")))
}

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		duration  time.Duration
	}{
		{name: "fast query", operation: "count_notes", duration: time.Millisecond},
		{name: "slow query", operation: "list_notes", duration: 500 * time.Millisecond},
		{name: "zero duration", operation: "get_note", duration: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordDBQuery(tt.operation, tt.duration)
			})
		})
	}
}

func TestUpdateDBConnectionStats(t *testing.T) {
	UpdateDBConnectionStats(4, 6)

	assert.Equal(t, 4.0, testutil.ToFloat64(DBConnectionsActive))
	assert.Equal(t, 6.0, testutil.ToFloat64(DBConnectionsIdle))
}
