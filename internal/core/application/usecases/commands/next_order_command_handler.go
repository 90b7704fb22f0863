package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/policy"
)

// ErrQueueEmpty is the normal "nothing to work on" outcome of a queue pull.
// It is distinct from not-found errors: the queue is simply empty for this
// employee right now (no eligible orders, or outside working hours).
var ErrQueueEmpty = errors.New("no orders in the queue")

// NextOrderCommandHandler serves the "next order to confirm" pull.
//
// Candidate selection, oldest first:
//  1. the order the employee already holds an unexpired lock on (an undecided
//     pull is repeated, never multiplied)
//  2. orders actively assigned to the employee, in a retry status, with
//     budget remaining and past the retry interval
//  3. free-pool orders in a retry status, which get assigned on the spot
//
// The lock acquisition inside the same transaction is what excludes the
// returned order from every other agent's candidate set.
type NextOrderCommandHandler struct {
	uowFactory QueueUoWFactory
}

// NewNextOrderCommandHandler creates a handler for queue pulls.
func NewNextOrderCommandHandler(uowFactory QueueUoWFactory) NextOrderCommandHandler {
	return NextOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the pull. Returns ErrQueueEmpty when no order is eligible
// or the policy's working-hours window is closed, and policy.ErrPolicyDisabled
// when automation is switched off.
func (h NextOrderCommandHandler) Handle(ctx context.Context, cmd NextOrderCommand) (*order.Order, error) {
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
	if !pol.Enabled() {
		return nil, policy.ErrPolicyDisabled
	}

	now := time.Now()
	if !pol.WithinWorkingHours(now) {
		return nil, ErrQueueEmpty
	}

	orderRepo := uow.OrderRepository()

	assigned, err := orderRepo.GetAssignedTo(ctx, cmd.EmployeeID())
	if err != nil {
		return nil, err
	}

	// An undecided pull comes back: extend the claim and hand out the same order.
	for _, o := range assigned {
		holder := o.LockHolder(now)
		if holder != nil && holder.IsEqual(cmd.EmployeeID()) {
			return h.claim(ctx, uow, o, cmd, now)
		}
	}

	for _, o := range assigned {
		if eligibleForRequeue(o, pol, now) {
			return h.claim(ctx, uow, o, cmd, now)
		}
	}

	free, err := orderRepo.GetFree(ctx, pol.RetryStatuses(), time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	for _, o := range free {
		if err := o.Assign(cmd.EmployeeID(), pol.MaxRetries(), now); err != nil {
			return nil, err
		}
		return h.claim(ctx, uow, o, cmd, now)
	}

	return nil, ErrQueueEmpty
}

func (h NextOrderCommandHandler) claim(
	ctx context.Context,
	uow QueueUoW,
	o *order.Order,
	cmd NextOrderCommand,
	now time.Time,
) (*order.Order, error) {
	if err := o.AcquireLock(cmd.EmployeeID(), cmd.TTL(), now); err != nil {
		return nil, err
	}

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// eligibleForRequeue decides whether an assigned order may be handed out
// again: retry status, budget remaining, no foreign unexpired lock, and the
// retry interval since the last decision has elapsed.
func eligibleForRequeue(o *order.Order, pol *policy.RetryPolicy, now time.Time) bool {
	if !pol.IsRetryStatus(o.StatusCode()) {
		return false
	}
	if o.IsRetryExhausted() {
		return false
	}
	if o.LockHolder(now) != nil {
		return false
	}

	a := o.ActiveAssignment()
	if a != nil && a.RetriesUsed() > 0 {
		if last := lastDecisionAt(o); last != nil && now.Sub(*last) < pol.RetryInterval() {
			return false
		}
	}
	return true
}

func lastDecisionAt(o *order.Order) *time.Time {
	history := o.History()
	if len(history) == 0 {
		return nil
	}
	at := history[len(history)-1].CreatedAt()
	return &at
}
