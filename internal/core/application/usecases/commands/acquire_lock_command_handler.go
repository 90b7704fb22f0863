package commands

import (
	"context"
	"time"
)

// AcquireLockCommandHandler places a work claim on an order's active
// assignment. The check-and-set runs inside one transaction, making it the
// single authority that resolves two agents racing for the same order.
type AcquireLockCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAcquireLockCommandHandler creates a handler for lock acquisition.
func NewAcquireLockCommandHandler(uowFactory OrderUoWFactory) AcquireLockCommandHandler {
	return AcquireLockCommandHandler{uowFactory: uowFactory}
}

// Handle processes the lock request. Expired locks count as free; the same
// employee re-acquiring extends their claim.
func (h AcquireLockCommandHandler) Handle(ctx context.Context, cmd AcquireLockCommand) error {
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

	if err = o.AcquireLock(cmd.EmployeeID(), cmd.TTL(), time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
