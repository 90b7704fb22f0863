package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// LockReclaimerJob periodically clears expired claim locks. Expiry is
// enforced lazily on every read, so the job is an optimization that keeps
// stale lockedUntil values from accumulating, not a correctness requirement.
type LockReclaimerJob struct {
	handler  commands.ReleaseExpiredLocksCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewLockReclaimerJob creates the lock reclaimer with a five-field cron schedule.
func NewLockReclaimerJob(
	handler commands.ReleaseExpiredLocksCommandHandler,
	schedule string,
	logger *slog.Logger,
) *LockReclaimerJob {
	return &LockReclaimerJob{
		handler:  handler,
		cron:     cron.New(),
		schedule: schedule,
		logger:   logger.With("component", "lock_reclaimer_job"),
	}
}

// Start schedules the reclaimer sweep.
func (j *LockReclaimerJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewReleaseExpiredLocksCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Lock reclaimer command construction failed", "error", err)
			return
		}

		reclaimed, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Lock reclaimer sweep failed", "error", err)
			return
		}

		if reclaimed > 0 {
			j.logger.InfoContext(ctx, "Expired locks reclaimed", "count", reclaimed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Lock reclaimer job started", "schedule", j.schedule)
	return nil
}

// Stop stops the lock reclaimer job.
func (j *LockReclaimerJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Lock reclaimer job stopped")
}
