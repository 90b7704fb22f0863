package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/policy"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/core/ports"
)

// loadGraph builds the transition graph from the persisted status catalog,
// registering every custom status code alongside the compiled-in system edges.
func loadGraph(ctx context.Context, statuses ports.StatusRepository) (status.Graph, error) {
	catalog, err := statuses.GetAll(ctx)
	if err != nil {
		return status.Graph{}, err
	}

	custom := make([]status.Code, 0, len(catalog))
	for _, s := range catalog {
		if !s.IsSystem() {
			custom = append(custom, s.Code())
		}
	}
	return status.NewGraph(custom), nil
}

// applyTransition runs the shared transition workflow on a loaded order:
// the graph-checked status change with history append, lock-ownership
// enforcement, and the confirmation-status assignment side effects.
//
// Returns true when the shipping handoff should fire once the surrounding
// transaction commits.
func applyTransition(
	o *order.Order,
	target *status.Status,
	graph status.Graph,
	pol *policy.RetryPolicy,
	notes, actor string,
	actorEmployee *kernel.UUID,
	now time.Time,
) (bool, error) {
	// A confirmation decision belongs to the lock holder; anyone else must
	// wait for the lock to expire or be released.
	if pol.IsConfirmationStatus(target.Code()) {
		if holder := o.LockHolder(now); holder != nil {
			if actorEmployee == nil || !holder.IsEqual(*actorEmployee) {
				return false, &order.AlreadyLockedError{
					HolderID:  *holder,
					Remaining: o.ActiveAssignment().LockedUntil().Sub(now),
				}
			}
		}
	}

	if err := o.TransitionTo(graph, target, notes, actor, now); err != nil {
		return false, err
	}

	if pol.IsConfirmationStatus(target.Code()) {
		o.DeactivateAssignment()
	}

	send := pol.ShouldSendToShipping(target.Code(), o.TotalAmount(), o.DepositAmount(), o.PaymentConfirmed())
	return send, nil
}
