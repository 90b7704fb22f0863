package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrDecideOrderCommandIsNotConstructed = errors.New(
	"DecideOrderCommand must be created via NewDecideOrderCommand constructor",
)

// DecideOrderCommand records an agent's decision on the order the work queue
// handed out. This is the single write path an agent uses; the queue will not
// serve a fresh order until the current one is decided.
//
// A decision into a retry status spends one unit of the assignment's retry
// budget and releases the lock; a confirmation-status decision resolves the
// assignment entirely.
type DecideOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	employeeID kernel.UUID
	statusID   kernel.UUID
	notes      string

	guard guard.ConstructorGuard
}

// NewDecideOrderCommand creates a decision request.
func NewDecideOrderCommand(orderID, employeeID, statusID kernel.UUID, notes string) (DecideOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), employeeID.Validate(), statusID.Validate()); err != nil {
		return DecideOrderCommand{}, err
	}

	return DecideOrderCommand{
		orderID:    orderID,
		employeeID: employeeID,
		statusID:   statusID,
		notes:      notes,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DecideOrderCommand) Validate() error {
	return c.guard.Validate(ErrDecideOrderCommandIsNotConstructed)
}

// OrderID returns the decided order's identifier.
func (c DecideOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// EmployeeID returns the deciding agent.
func (c DecideOrderCommand) EmployeeID() kernel.UUID {
	return c.employeeID
}

// StatusID returns the identifier of the decided status.
func (c DecideOrderCommand) StatusID() kernel.UUID {
	return c.statusID
}

// Notes returns the free-text note for the history record.
func (c DecideOrderCommand) Notes() string {
	return c.notes
}
