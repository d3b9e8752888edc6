package worker

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"notes-backend/internal/observability/metrics"
	"notes-backend/internal/observability/slo"
)

// NoteCounter counts stored notes.
type NoteCounter interface {
	Count(ctx context.Context) (int64, error)
}

// PoolStater exposes connection pool statistics; *sql.DB satisfies it.
type PoolStater interface {
	Stats() sql.DBStats
}

// IndicatorRefresher recomputes service level indicators; *slo.Tracker satisfies it.
type IndicatorRefresher interface {
	Refresh() (slo.Indicators, bool, error)
}

// RefreshNotesTotal returns a job that sets the notes_total gauge.
func RefreshNotesTotal(counter NoteCounter) JobFunc {
	return func(ctx context.Context) error {
		start := time.Now()
		n, err := counter.Count(ctx)
		metrics.RecordDBQuery("count_notes", time.Since(start))
		metrics.RecordMetricsRefresh(err == nil)
		if err != nil {
			return fmt.Errorf("count notes: %w", err)
		}
		metrics.UpdateNotesTotal(n)
		return nil
	}
}

// RefreshPoolStats returns a job that publishes connection pool usage.
func RefreshPoolStats(db PoolStater) JobFunc {
	return func(context.Context) error {
		stats := db.Stats()
		metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
		return nil
	}
}

// RefreshSLO returns a job that recomputes the SLO gauges for the window since
// its previous run.
func RefreshSLO(tracker IndicatorRefresher) JobFunc {
	return func(context.Context) error {
		if _, _, err := tracker.Refresh(); err != nil {
			return fmt.Errorf("refresh slo: %w", err)
		}
		return nil
	}
}
