package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ErrInsufficientPool is returned when the free pool shrank between preview
// and commit: the commit would assign fewer orders than the preview promised.
// The whole commit is rejected so the operator can preview again.
var ErrInsufficientPool = errors.New("free order pool shrank below the previewed count")

// AutoDistributionResult summarizes a committed plan.
type AutoDistributionResult struct {
	TotalAssigned          int
	EmployeesParticipating int
}

// DistributeAutoCommandHandler recomputes the distribution plan inside a
// transaction and writes the assignments. The planner is deterministic, so an
// unchanged pool commits exactly what the preview showed.
type DistributeAutoCommandHandler struct {
	uowFactory DistributionUoWFactory
	planner    services.DistributionPlanner
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewDistributeAutoCommandHandler creates a handler for auto distribution.
func NewDistributeAutoCommandHandler(
	uowFactory DistributionUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) DistributeAutoCommandHandler {
	return DistributeAutoCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewDistributionPlanner(),
		notifier:   notifier,
		logger:     logger.With("component", "distribute_auto_handler"),
	}
}

// Handle commits the plan.
func (h DistributeAutoCommandHandler) Handle(
	ctx context.Context,
	cmd DistributeAutoCommand,
) (AutoDistributionResult, error) {
	if err := cmd.Validate(); err != nil {
		return AutoDistributionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AutoDistributionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	free, err := orderRepo.GetFree(ctx, cmd.StatusCodes(), cmd.From(), cmd.To())
	if err != nil {
		return AutoDistributionResult{}, err
	}

	byID := make(map[kernel.UUID]*order.Order, len(free))
	refs := make([]services.OrderRef, 0, len(free))
	for _, o := range free {
		byID[o.ID()] = o
		refs = append(refs, services.OrderRef{
			ID:        o.ID(),
			Number:    o.Number(),
			CreatedAt: o.CreatedAt(),
		})
	}

	workloads, err := uow.EmployeeRepository().GetWorkloads(ctx)
	if err != nil {
		return AutoDistributionResult{}, err
	}

	plan, err := h.planner.Plan(refs, workloads, cmd.OrderCount(), cmd.EmployeeCount())
	if err != nil {
		return AutoDistributionResult{}, err
	}

	if plan.EffectiveOrderCount < cmd.ExpectedOrderCount() {
		return AutoDistributionResult{}, ErrInsufficientPool
	}

	pol, err := uow.PolicyRepository().Get(ctx)
	if err != nil {
		return AutoDistributionResult{}, err
	}

	now := time.Now()
	for _, planned := range plan.Assignments {
		for _, ref := range planned.Orders {
			o := byID[ref.ID]
			if err := o.Assign(planned.EmployeeID, pol.MaxRetries(), now); err != nil {
				return AutoDistributionResult{}, err
			}
			if err := orderRepo.Update(ctx, o); err != nil {
				return AutoDistributionResult{}, err
			}
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return AutoDistributionResult{}, err
	}

	if pol.NotifyEmployee() {
		for _, planned := range plan.Assignments {
			if len(planned.Orders) == 0 {
				continue
			}
			if err := h.notifier.NotifyAssigned(ctx, planned.EmployeeID, len(planned.Orders)); err != nil {
				h.logger.ErrorContext(ctx, "assignment notification failed",
					"employee_id", planned.EmployeeID.String(), "error", err)
			}
		}
	}

	return AutoDistributionResult{
		TotalAssigned:          plan.TotalPlanned(),
		EmployeesParticipating: plan.EffectiveEmployeeCount,
	}, nil
}
