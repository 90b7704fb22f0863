package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
)

// TransitionOrderCommandHandler orchestrates a single status transition:
// graph validation, history append, assignment resolution on confirmation
// statuses, and the shipping handoff when the policy's trigger fires.
//
// The order update uses optimistic versioning, so a concurrent transition
// surfaces as errs.ErrVersionIsInvalid and the caller re-fetches and retries.
type TransitionOrderCommandHandler struct {
	uowFactory WorkflowUoWFactory
	shipping   ports.ShippingGateway
	logger     *slog.Logger
}

// NewTransitionOrderCommandHandler creates a handler for status transitions.
func NewTransitionOrderCommandHandler(
	uowFactory WorkflowUoWFactory,
	shipping ports.ShippingGateway,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		shipping:   shipping,
		logger:     logger.With("component", "transition_order_handler"),
	}
}

// Handle processes the transition command. The status change commits first;
// the shipping handoff fires afterwards so a provider outage can never roll
// back a committed transition (the failure is logged for retry by operations).
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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
	statusRepo := uow.StatusRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	target, err := statusRepo.Get(ctx, cmd.StatusID())
	if err != nil {
		return err
	}

	graph, err := loadGraph(ctx, statusRepo)
	if err != nil {
		return err
	}

	pol, err := uow.PolicyRepository().Get(ctx)
	if err != nil {
		return err
	}

	sendToShipping, err := applyTransition(o, target, graph, pol, cmd.Notes(), cmd.Actor(), cmd.EmployeeID(), time.Now())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if sendToShipping {
		if err := h.shipping.SendToShipping(ctx, o); err != nil {
			h.logger.ErrorContext(ctx, "shipping handoff failed",
				"order_id", o.ID().String(), "error", err)
		}
	}

	return nil
}
