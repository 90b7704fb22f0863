package commands

import (
	"context"
)

// ReleaseLockCommandHandler clears an order's lock. Releasing an unlocked
// order is a no-op, so releases after lazy expiry stay harmless.
type ReleaseLockCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewReleaseLockCommandHandler creates a handler for lock release.
func NewReleaseLockCommandHandler(uowFactory OrderUoWFactory) ReleaseLockCommandHandler {
	return ReleaseLockCommandHandler{uowFactory: uowFactory}
}

// Handle processes the release request.
func (h ReleaseLockCommandHandler) Handle(ctx context.Context, cmd ReleaseLockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	o.ReleaseLock()

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
