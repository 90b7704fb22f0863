// Package jobs provides scheduled background tasks for the fulfillment
// workflow engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance the request path should not pay for.
//
// # Available Jobs
//
// 1. LockReclaimerJob - clears expired claim locks so queue scans stay cheap
// 2. AutoMoveJob - moves retry-exhausted orders to the policy's auto-move status
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(releaseLocksHandler, autoMoveHandler, schedules, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are standard five-field cron expressions taken from configuration.
// Lock expiry is already enforced lazily on every read, and auto-move is a
// policy-level sweep, so neither job needs sub-minute resolution.
//
// # Error Handling
//
// Both jobs log failures and keep running; a failed sweep is retried on the
// next tick. Failed job starts stop any already running jobs.
package jobs
