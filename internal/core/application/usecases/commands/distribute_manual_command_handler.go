package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// ManualBlockResult reports the outcome of one employee's block: which orders
// were assigned and which were skipped because they were no longer free when
// the batch was applied.
type ManualBlockResult struct {
	EmployeeID kernel.UUID
	Assigned   []kernel.UUID
	Stale      []kernel.UUID
}

// DistributeManualCommandHandler applies a manual distribution batch. Stale
// orders inside a block do not fail the batch; they are reported back so the
// operator can see what the pool looked like when the write landed.
type DistributeManualCommandHandler struct {
	uowFactory DistributionUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewDistributeManualCommandHandler creates a handler for manual distribution.
func NewDistributeManualCommandHandler(
	uowFactory DistributionUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) DistributeManualCommandHandler {
	return DistributeManualCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "distribute_manual_handler"),
	}
}

// Handle assigns each block's orders to its employee.
func (h DistributeManualCommandHandler) Handle(
	ctx context.Context,
	cmd DistributeManualCommand,
) ([]ManualBlockResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pol, err := uow.PolicyRepository().Get(ctx)
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	employeeRepo := uow.EmployeeRepository()

	now := time.Now()
	results := make([]ManualBlockResult, 0, len(cmd.Blocks()))

	for _, block := range cmd.Blocks() {
		if _, err := employeeRepo.Get(ctx, block.EmployeeID); err != nil {
			return nil, err
		}

		result := ManualBlockResult{EmployeeID: block.EmployeeID}

		for _, orderID := range block.OrderIDs {
			o, err := orderRepo.Get(ctx, orderID)
			if err != nil {
				return nil, err
			}

			if !o.IsFree() {
				result.Stale = append(result.Stale, orderID)
				continue
			}

			if err := o.Assign(block.EmployeeID, pol.MaxRetries(), now); err != nil {
				return nil, err
			}
			if err := orderRepo.Update(ctx, o); err != nil {
				return nil, err
			}
			result.Assigned = append(result.Assigned, orderID)
		}

		results = append(results, result)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	if pol.NotifyEmployee() {
		for _, result := range results {
			if len(result.Assigned) == 0 {
				continue
			}
			if err := h.notifier.NotifyAssigned(ctx, result.EmployeeID, len(result.Assigned)); err != nil {
				h.logger.ErrorContext(ctx, "assignment notification failed",
					"employee_id", result.EmployeeID.String(), "error", err)
			}
		}
	}

	return results, nil
}
