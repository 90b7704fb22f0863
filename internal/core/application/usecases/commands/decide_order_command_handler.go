package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// DecideResult reports the outcome of an agent's decision.
type DecideResult struct {
	// RetryExhausted is set when the decision spent the assignment's last
	// retry: the order now needs the auto-move transition or manual handling.
	// Informational, not an error.
	RetryExhausted bool
}

// DecideOrderCommandHandler applies an agent's decision through the shared
// transition workflow, then settles the work-queue bookkeeping: the retry
// counter increments only when the decision keeps the order in a retry
// status, and the lock is always released.
type DecideOrderCommandHandler struct {
	uowFactory WorkflowUoWFactory
	shipping   ports.ShippingGateway
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewDecideOrderCommandHandler creates a handler for queue decisions.
func NewDecideOrderCommandHandler(
	uowFactory WorkflowUoWFactory,
	shipping ports.ShippingGateway,
	notifier ports.Notifier,
	logger *slog.Logger,
) DecideOrderCommandHandler {
	return DecideOrderCommandHandler{
		uowFactory: uowFactory,
		shipping:   shipping,
		notifier:   notifier,
		logger:     logger.With("component", "decide_order_handler"),
	}
}

// Handle processes the decision. A foreign unexpired lock rejects the
// decision with order.AlreadyLockedError.
func (h DecideOrderCommandHandler) Handle(ctx context.Context, cmd DecideOrderCommand) (DecideResult, error) {
	if err := cmd.Validate(); err != nil {
		return DecideResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DecideResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	statusRepo := uow.StatusRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return DecideResult{}, err
	}

	now := time.Now()
	if holder := o.LockHolder(now); holder != nil && !holder.IsEqual(cmd.EmployeeID()) {
		return DecideResult{}, &order.AlreadyLockedError{
			HolderID:  *holder,
			Remaining: o.ActiveAssignment().LockedUntil().Sub(now),
		}
	}

	target, err := statusRepo.Get(ctx, cmd.StatusID())
	if err != nil {
		return DecideResult{}, err
	}

	graph, err := loadGraph(ctx, statusRepo)
	if err != nil {
		return DecideResult{}, err
	}

	pol, err := uow.PolicyRepository().Get(ctx)
	if err != nil {
		return DecideResult{}, err
	}

	employeeID := cmd.EmployeeID()
	sendToShipping, err := applyTransition(
		o, target, graph, pol, cmd.Notes(), employeeID.String(), &employeeID, now,
	)
	if err != nil {
		return DecideResult{}, err
	}

	result := DecideResult{}
	if pol.IsRetryStatus(target.Code()) {
		if err = o.RecordRetry(); err != nil {
			return DecideResult{}, err
		}
		result.RetryExhausted = o.IsRetryExhausted()
	}
	o.ReleaseLock()

	if err = orderRepo.Update(ctx, o); err != nil {
		return DecideResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return DecideResult{}, err
	}

	if sendToShipping {
		if err := h.shipping.SendToShipping(ctx, o); err != nil {
			h.logger.ErrorContext(ctx, "shipping handoff failed",
				"order_id", o.ID().String(), "error", err)
		}
	}

	if result.RetryExhausted && pol.NotifyAdmin() {
		if err := h.notifier.NotifyRetryExhausted(ctx, o.ID(), cmd.EmployeeID()); err != nil {
			h.logger.ErrorContext(ctx, "retry exhaustion notification failed",
				"order_id", o.ID().String(), "error", err)
		}
	}

	return result, nil
}
