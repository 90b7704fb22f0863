package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"
)

// StatusRepository defines the persistence contract for the status catalog.
// System statuses are seeded by the platform; custom statuses are managed by
// tenant admins.
type StatusRepository interface {
	// Add persists a new custom status.
	Add(ctx context.Context, aggregate *status.Status) error

	// Remove deletes a custom status row. System statuses are never removed;
	// the caller must first verify no order holds the status.
	Remove(ctx context.Context, id kernel.UUID) error

	// Get retrieves a status by id.
	Get(ctx context.Context, id kernel.UUID) (*status.Status, error)

	// GetByCode retrieves a status by its stable code.
	GetByCode(ctx context.Context, code status.Code) (*status.Status, error)

	// GetAll retrieves the full catalog ordered by sort order.
	GetAll(ctx context.Context) ([]*status.Status, error)
}
