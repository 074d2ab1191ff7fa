// Package worker runs periodic background jobs for the content service.
package worker

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"content-service/internal/observability/metrics"
	"content-service/internal/repository"
)

// StatsJobName labels the content statistics job in metrics and logs.
const StatsJobName = "content_stats"

// StatsJob refreshes the content_items gauge and, when DB is set, the
// connection pool gauges.
type StatsJob struct {
	Repo    repository.ContentRepository
	DB      *sql.DB
	Timeout time.Duration
	Logger  *slog.Logger
}

// Run executes one refresh.
func (j *StatsJob) Run(ctx context.Context) error {
	start := time.Now()
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	count, err := j.Repo.Count(ctx, repository.ContentFilter{})
	if err != nil {
		recordRun(StatsJobName, StatusFailure, time.Since(start))
		return fmt.Errorf("count content: %w", err)
	}
	metrics.UpdateContentItemsTotal(count)

	if j.DB != nil {
		stats := j.DB.Stats()
		metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
	}

	recordRun(StatsJobName, StatusSuccess, time.Since(start))
	j.logger().Debug("content stats refreshed", slog.Int64("items", count))
	return nil
}

func (j *StatsJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

// Scheduler runs StatsJob on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	job    *StatsJob
	logger *slog.Logger
}

// NewScheduler registers job under schedule. Standard five-field
// expressions and descriptors such as "@every 1m" are accepted.
func NewScheduler(schedule string, job *StatsJob, logger *slog.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	s := &Scheduler{cron: c, job: job, logger: logger}

	if _, err := c.AddFunc(schedule, s.runOnce); err != nil {
		return nil, fmt.Errorf("add cron job %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) runOnce() {
	if err := s.job.Run(context.Background()); err != nil {
		s.logger.Error("scheduled job failed",
			slog.String("job", StatsJobName),
			slog.Any("error", err))
	}
}

// Run refreshes once, starts the schedule, and blocks until ctx is done.
// It waits for a running job to finish before returning.
func (s *Scheduler) Run(ctx context.Context) error {
	s.runOnce()
	s.cron.Start()
	s.logger.Info("scheduler started", slog.String("job", StatsJobName))

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
	return nil
}
