package commands

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAcquireLockCommandIsNotConstructed = errors.New(
	"AcquireLockCommand must be created via NewAcquireLockCommand constructor",
)

// AcquireLockCommand requests a time-bounded exclusive work claim on an order
// for one employee. A second employee acquiring before expiry receives
// order.AlreadyLockedError with the remaining duration.
type AcquireLockCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	employeeID kernel.UUID
	ttl        time.Duration

	guard guard.ConstructorGuard
}

// NewAcquireLockCommand creates a lock request. The TTL must be positive.
func NewAcquireLockCommand(orderID, employeeID kernel.UUID, ttl time.Duration) (AcquireLockCommand, error) {
	if err := errors.Join(orderID.Validate(), employeeID.Validate()); err != nil {
		return AcquireLockCommand{}, err
	}
	if ttl <= 0 {
		return AcquireLockCommand{}, errs.NewValueIsInvalidErrorWithCause("ttl",
			fmt.Errorf("%s is not greater than 0", ttl))
	}

	return AcquireLockCommand{
		orderID:    orderID,
		employeeID: employeeID,
		ttl:        ttl,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcquireLockCommand) Validate() error {
	return c.guard.Validate(ErrAcquireLockCommandIsNotConstructed)
}

// OrderID returns the order to claim.
func (c AcquireLockCommand) OrderID() kernel.UUID {
	return c.orderID
}

// EmployeeID returns the claiming employee.
func (c AcquireLockCommand) EmployeeID() kernel.UUID {
	return c.employeeID
}

// TTL returns the requested lock duration.
func (c AcquireLockCommand) TTL() time.Duration {
	return c.ttl
}
