package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AutoMoveJob periodically moves retry-exhausted orders out of their retry
// statuses into the policy's auto-move status, so agents never pull an order
// whose retry budget is spent.
type AutoMoveJob struct {
	handler  commands.AutoMoveExhaustedCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewAutoMoveJob creates the auto-move sweep with a five-field cron schedule.
func NewAutoMoveJob(
	handler commands.AutoMoveExhaustedCommandHandler,
	schedule string,
	logger *slog.Logger,
) *AutoMoveJob {
	return &AutoMoveJob{
		handler:  handler,
		cron:     cron.New(),
		schedule: schedule,
		logger:   logger.With("component", "auto_move_job"),
	}
}

// Start schedules the auto-move sweep.
func (j *AutoMoveJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewAutoMoveExhaustedCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Auto-move command construction failed", "error", err)
			return
		}

		moved, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Auto-move sweep failed", "error", err)
			return
		}

		if moved > 0 {
			j.logger.InfoContext(ctx, "Retry-exhausted orders moved", "count", moved)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-move job started", "schedule", j.schedule)
	return nil
}

// Stop stops the auto-move job.
func (j *AutoMoveJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto-move job stopped")
}
