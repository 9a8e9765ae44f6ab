// Package retention prunes sessions that ended long enough ago to be of no
// further interest. The cutoff is measured in whole days before today.
package retention

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/example/practice-scheduler/internal/dateutil"
)

// Store deletes sessions dated strictly before the cutoff and reports how
// many rows were removed.
type Store interface {
	DeleteSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Invalidator discards cached calendar views after a prune.
type Invalidator interface {
	Invalidate()
}

// Job removes sessions older than the configured number of days.
type Job struct {
	store  Store
	views  Invalidator
	days   int
	logger *slog.Logger
	now    func() time.Time
}

// NewJob builds a prune job. days must be positive; a zero or negative value
// turns the job into a no-op.
func NewJob(store Store, views Invalidator, days int, now func() time.Time, logger *slog.Logger) *Job {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Job{store: store, views: views, days: days, logger: logger, now: now}
}

// Run prunes once. It is safe to call from a scheduler or by hand.
func (j *Job) Run(ctx context.Context) error {
	if j == nil || j.store == nil || j.days <= 0 {
		return nil
	}

	cutoff := dateutil.Truncate(j.now()).AddDate(0, 0, -j.days)
	removed, err := j.store.DeleteSessionsBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("session prune failed", "cutoff", dateutil.FormatDate(cutoff), "error", err)
		return err
	}

	if removed > 0 && j.views != nil {
		j.views.Invalidate()
	}
	j.logger.Info("session prune completed", "cutoff", dateutil.FormatDate(cutoff), "removed", removed)
	return nil
}

// Schedule registers the job on the given cron runner, firing daily at 03:00.
// The runner is returned unstarted when the job is a no-op.
func (j *Job) Schedule(runner *cron.Cron) error {
	if j == nil || j.days <= 0 || runner == nil {
		return nil
	}
	_, err := runner.AddFunc("0 3 * * *", func() {
		_ = j.Run(context.Background())
	})
	return err
}
