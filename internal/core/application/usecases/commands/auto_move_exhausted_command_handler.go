package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// AutoMoveExhaustedCommandHandler is the sweep behind the auto-move cron job.
// Retry-exhausted orders still sitting in a retry status are force-moved to
// the policy's auto-move status with actor "automation"; orders under an
// unexpired lock are left for the next sweep.
type AutoMoveExhaustedCommandHandler struct {
	uowFactory WorkflowUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewAutoMoveExhaustedCommandHandler creates the sweep handler.
func NewAutoMoveExhaustedCommandHandler(
	uowFactory WorkflowUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) AutoMoveExhaustedCommandHandler {
	return AutoMoveExhaustedCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "auto_move_handler"),
	}
}

// Handle runs one sweep and returns how many orders were moved.
func (h AutoMoveExhaustedCommandHandler) Handle(ctx context.Context, cmd AutoMoveExhaustedCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pol, err := uow.PolicyRepository().Get(ctx)
	if err != nil {
		return 0, err
	}
	if !pol.Enabled() {
		return 0, nil
	}

	statusRepo := uow.StatusRepository()

	target, err := statusRepo.GetByCode(ctx, pol.AutoMoveStatus())
	if err != nil {
		return 0, err
	}

	graph, err := loadGraph(ctx, statusRepo)
	if err != nil {
		return 0, err
	}

	orderRepo := uow.OrderRepository()

	assigned, err := orderRepo.GetAllWithActiveAssignment(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	moved := make([]kernel.UUID, 0)

	for _, o := range assigned {
		if !o.IsRetryExhausted() || !pol.IsRetryStatus(o.StatusCode()) {
			continue
		}
		if o.LockHolder(now) != nil {
			continue
		}

		if _, err := applyTransition(o, target, graph, pol, "retry budget exhausted", "automation", nil, now); err != nil {
			h.logger.WarnContext(ctx, "auto-move skipped",
				"order_id", o.ID().String(), "error", err)
			continue
		}
		o.DeactivateAssignment()

		if err := orderRepo.Update(ctx, o); err != nil {
			return 0, err
		}
		moved = append(moved, o.ID())
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	if pol.NotifyAdmin() {
		for _, id := range moved {
			if err := h.notifier.NotifyAutoMoved(ctx, id, pol.AutoMoveStatus()); err != nil {
				h.logger.ErrorContext(ctx, "auto-move notification failed",
					"order_id", id.String(), "error", err)
			}
		}
	}

	return len(moved), nil
}
