package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// jobRunsTotal counts scheduled job runs by job and status.
	jobRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worker_job_runs_total",
		Help: "Total number of scheduled job runs by job and status (success/failure)",
	}, []string{"job", "status"})

	// jobDurationSeconds measures how long a scheduled job took.
	jobDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "worker_job_duration_seconds",
		Help:    "Duration of scheduled job runs in seconds",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
	}, []string{"job"})

	// jobLastSuccessTimestamp records when each job last succeeded.
	jobLastSuccessTimestamp = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "worker_job_last_success_timestamp",
		Help: "Unix timestamp of the last successful run of each job",
	}, []string{"job"})
)

func recordJobRun(job string, seconds float64, err error) {
	jobDurationSeconds.WithLabelValues(job).Observe(seconds)
	if err != nil {
		jobRunsTotal.WithLabelValues(job, "failure").Inc()
		return
	}
	jobRunsTotal.WithLabelValues(job, "success").Inc()
	jobLastSuccessTimestamp.WithLabelValues(job).SetToCurrentTime()
}
