package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
)

// Schedules holds the cron expressions for all background jobs.
type Schedules struct {
	LockReclaimer string
	AutoMove      string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	lockReclaimerJob *LockReclaimerJob
	autoMoveJob      *AutoMoveJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	releaseLocksHandler commands.ReleaseExpiredLocksCommandHandler,
	autoMoveHandler commands.AutoMoveExhaustedCommandHandler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		lockReclaimerJob: NewLockReclaimerJob(releaseLocksHandler, schedules.LockReclaimer, logger),
		autoMoveJob:      NewAutoMoveJob(autoMoveHandler, schedules.AutoMove, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.lockReclaimerJob.Start(); err != nil {
		return fmt.Errorf("failed to start lock reclaimer job: %w", err)
	}

	if err := jm.autoMoveJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.lockReclaimerJob.Stop()
		return fmt.Errorf("failed to start auto-move job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.autoMoveJob.Stop()
	jm.lockReclaimerJob.Stop()
}
