package cmd

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/status"
)

// LogShippingGateway is the shipping handoff used until a real provider
// integration is configured. It records the handoff and succeeds.
type LogShippingGateway struct {
	logger *slog.Logger
}

// NewLogShippingGateway creates a logging shipping gateway.
func NewLogShippingGateway(logger *slog.Logger) *LogShippingGateway {
	return &LogShippingGateway{logger: logger.With("component", "shipping_gateway")}
}

// SendToShipping logs the handoff.
func (g *LogShippingGateway) SendToShipping(ctx context.Context, aggregate *order.Order) error {
	g.logger.InfoContext(ctx, "Order sent to shipping",
		"orderId", aggregate.ID().String(),
		"number", aggregate.Number(),
	)
	return nil
}

// LogNotifier delivers workflow alerts to the log until a real channel
// (email, messenger) is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a logging notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

// NotifyRetryExhausted logs the alert.
func (n *LogNotifier) NotifyRetryExhausted(ctx context.Context, orderID, employeeID kernel.UUID) error {
	n.logger.InfoContext(ctx, "Retry budget exhausted",
		"orderId", orderID.String(),
		"employeeId", employeeID.String(),
	)
	return nil
}

// NotifyAutoMoved logs the alert.
func (n *LogNotifier) NotifyAutoMoved(ctx context.Context, orderID kernel.UUID, to status.Code) error {
	n.logger.InfoContext(ctx, "Order auto-moved",
		"orderId", orderID.String(),
		"to", string(to),
	)
	return nil
}

// NotifyAssigned logs the alert.
func (n *LogNotifier) NotifyAssigned(ctx context.Context, employeeID kernel.UUID, orderCount int) error {
	n.logger.InfoContext(ctx, "Orders assigned",
		"employeeId", employeeID.String(),
		"orderCount", orderCount,
	)
	return nil
}
