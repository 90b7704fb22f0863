package commands

import (
	"context"
	"time"
)

// ReleaseExpiredLocksCommandHandler is the sweep behind the lock reclaimer
// cron job.
type ReleaseExpiredLocksCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewReleaseExpiredLocksCommandHandler creates the reclaim handler.
func NewReleaseExpiredLocksCommandHandler(uowFactory OrderUoWFactory) ReleaseExpiredLocksCommandHandler {
	return ReleaseExpiredLocksCommandHandler{uowFactory: uowFactory}
}

// Handle clears expired locks and returns how many were reclaimed.
func (h ReleaseExpiredLocksCommandHandler) Handle(ctx context.Context, cmd ReleaseExpiredLocksCommand) (int, error) {
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

	orderRepo := uow.OrderRepository()

	assigned, err := orderRepo.GetAllWithActiveAssignment(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	reclaimed := 0

	for _, o := range assigned {
		a := o.ActiveAssignment()
		if a == nil || a.LockedUntil() == nil || a.IsLocked(now) {
			continue
		}

		o.ReleaseLock()
		if err := orderRepo.Update(ctx, o); err != nil {
			return 0, err
		}
		reclaimed++
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	return reclaimed, nil
}
