package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/status"
)

// ShippingGateway hands a confirmed order off to the shipping provider.
// Invoked by the transition workflow when shipping automation fires.
type ShippingGateway interface {
	SendToShipping(ctx context.Context, aggregate *order.Order) error
}

// Notifier delivers workflow alerts to employees and admins.
// Implementations must be safe to call after the triggering transaction has
// committed; delivery failures are logged, never propagated into the workflow.
type Notifier interface {
	// NotifyRetryExhausted alerts admins that an order needs manual handling.
	NotifyRetryExhausted(ctx context.Context, orderID, employeeID kernel.UUID) error

	// NotifyAutoMoved alerts admins that automation force-moved an order.
	NotifyAutoMoved(ctx context.Context, orderID kernel.UUID, to status.Code) error

	// NotifyAssigned alerts an employee about newly distributed orders.
	NotifyAssigned(ctx context.Context, employeeID kernel.UUID, orderCount int) error
}
