package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/status"
)

// CreateOrderCommandHandler registers new orders. The initial status row is
// looked up by code so the order carries the seeded catalog id.
type CreateOrderCommandHandler struct {
	uowFactory StatusUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(uowFactory StatusUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{uowFactory: uowFactory}
}

// Handle persists the new order with its initial history record.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	initial, err := uow.StatusRepository().GetByCode(ctx, status.New)
	if err != nil {
		return err
	}

	o, err := order.NewOrder(
		cmd.OrderID(), cmd.Number(),
		cmd.CustomerName(), cmd.CustomerPhone(), cmd.Address(),
		cmd.Items(), cmd.TotalAmount(), cmd.DepositAmount(),
		initial, time.Now(),
	)
	if err != nil {
		return err
	}

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
