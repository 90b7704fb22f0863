// Package ports defines repository and gateway interfaces for the fulfillment
// engine. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/status"
)

// OrderRepository defines the persistence contract for order aggregates.
// Updates use optimistic versioning: an Update against a stale version fails
// with errs.ErrVersionIsInvalid so the caller can re-fetch and retry.
type OrderRepository interface {
	// Add persists a new order aggregate with its initial history record.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including new
	// assignments and history records. Fails with errs.ErrVersionIsInvalid
	// when a concurrent writer already bumped the order's version.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its assignments and history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetFree retrieves orders with no active assignment whose status is in
	// codes and whose creation time falls within [from, to). Zero time bounds
	// disable the respective check. Results are ordered oldest first.
	GetFree(ctx context.Context, codes []status.Code, from, to time.Time) ([]*order.Order, error)

	// GetAssignedTo retrieves orders whose active assignment belongs to the
	// employee, ordered oldest first.
	GetAssignedTo(ctx context.Context, employeeID kernel.UUID) ([]*order.Order, error)

	// GetAllWithActiveAssignment retrieves every order currently assigned.
	// Used by the lock reclaimer and the auto-move sweep.
	GetAllWithActiveAssignment(ctx context.Context) ([]*order.Order, error)

	// CountByStatus returns how many orders currently hold the status code.
	CountByStatus(ctx context.Context, code status.Code) (int64, error)
}
