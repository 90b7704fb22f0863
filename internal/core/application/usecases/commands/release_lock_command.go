package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrReleaseLockCommandIsNotConstructed = errors.New(
	"ReleaseLockCommand must be created via NewReleaseLockCommand constructor",
)

// ReleaseLockCommand clears an order's work claim immediately, before its
// TTL runs out. Called on explicit cancel; successful decisions release the
// lock through the decide workflow instead.
type ReleaseLockCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReleaseLockCommand creates a lock release request.
func NewReleaseLockCommand(orderID kernel.UUID) (ReleaseLockCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ReleaseLockCommand{}, err
	}

	return ReleaseLockCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseLockCommand) Validate() error {
	return c.guard.Validate(ErrReleaseLockCommandIsNotConstructed)
}

// OrderID returns the order to unlock.
func (c ReleaseLockCommand) OrderID() kernel.UUID {
	return c.orderID
}
