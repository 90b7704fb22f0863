package commands

import (
	"context"
	"errors"
	"fmt"
)

// Deletion guards for the status catalog.
var (
	// ErrStatusIsSystem is returned when a deletion targets a seeded status.
	ErrStatusIsSystem = errors.New("system statuses cannot be deleted")
	// ErrStatusInUse is returned while any order still holds the status.
	ErrStatusInUse = errors.New("status is held by existing orders")
)

// DeleteCustomStatusCommandHandler removes a custom status. System statuses
// and statuses still held by orders are protected.
type DeleteCustomStatusCommandHandler struct {
	uowFactory StatusUoWFactory
}

// NewDeleteCustomStatusCommandHandler creates a handler for status deletion.
func NewDeleteCustomStatusCommandHandler(uowFactory StatusUoWFactory) DeleteCustomStatusCommandHandler {
	return DeleteCustomStatusCommandHandler{uowFactory: uowFactory}
}

// Handle deletes the status.
func (h DeleteCustomStatusCommandHandler) Handle(ctx context.Context, cmd DeleteCustomStatusCommand) error {
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

	statusRepo := uow.StatusRepository()

	s, err := statusRepo.Get(ctx, cmd.StatusID())
	if err != nil {
		return err
	}
	if s.IsSystem() {
		return fmt.Errorf("%w: %s", ErrStatusIsSystem, s.Code())
	}

	holding, err := uow.OrderRepository().CountByStatus(ctx, s.Code())
	if err != nil {
		return err
	}
	if holding > 0 {
		return fmt.Errorf("%w: %s held by %d orders", ErrStatusInUse, s.Code(), holding)
	}

	if err := statusRepo.Remove(ctx, cmd.StatusID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
