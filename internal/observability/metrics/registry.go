// Package metrics provides centralized Prometheus business metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track note operations
var (
	// NotesTotal tracks total number of notes in the database
	NotesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notes_total",
			Help: "Total number of notes in the database",
		},
	)

	// NoteOperationsTotal counts note use case calls by operation and result
	NoteOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "note_operations_total",
			Help: "Total number of note operations",
		},
		[]string{"operation", "result"}, // result: success, not_found, forbidden, invalid, error
	)

	// SummaryRequestsTotal counts summary requests by result
	SummaryRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_requests_total",
			Help: "Total number of note summary requests",
		},
		[]string{"result"},
	)

	// SummaryRequestedSentences records the sentence bound after clamping
	SummaryRequestedSentences = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summary_requested_sentences",
			Help:    "Effective max_sentences of summary requests",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
	)

	// MetricsRefreshTotal counts scheduled gauge refreshes by result
	MetricsRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metrics_refresh_total",
			Help: "Total number of scheduled metrics refreshes",
		},
		[]string{"result"},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks in-use database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)
