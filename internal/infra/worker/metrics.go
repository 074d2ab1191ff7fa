package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Job status labels.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

var (
	// jobRunsTotal counts scheduled job runs by job and status.
	jobRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cron_job_runs_total",
		Help: "Total number of scheduled job runs",
	}, []string{"job", "status"})

	jobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cron_job_duration_seconds",
		Help:    "Duration of scheduled job runs",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"job"})

	// jobLastSuccess is the unix time of the last successful run.
	jobLastSuccess = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cron_job_last_success_timestamp_seconds",
		Help: "Unix timestamp of the last successful job run",
	}, []string{"job"})
)

func recordRun(job, status string, d time.Duration) {
	jobRunsTotal.WithLabelValues(job, status).Inc()
	jobDuration.WithLabelValues(job).Observe(d.Seconds())
	if status == StatusSuccess {
		jobLastSuccess.WithLabelValues(job).SetToCurrentTime()
	}
}
