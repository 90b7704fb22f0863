package commands

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrNextOrderCommandIsNotConstructed = errors.New(
	"NextOrderCommand must be created via NewNextOrderCommand constructor",
)

// NextOrderCommand asks the work queue for the next order an agent should
// confirm. The queue hands out one order at a time: the returned order is
// locked for the employee, and the same order keeps coming back until the
// agent decides it.
type NextOrderCommand struct { //nolint:recvcheck //using for validation
	employeeID kernel.UUID
	ttl        time.Duration

	guard guard.ConstructorGuard
}

// NewNextOrderCommand creates a queue pull request. ttl bounds the work claim
// placed on the returned order.
func NewNextOrderCommand(employeeID kernel.UUID, ttl time.Duration) (NextOrderCommand, error) {
	if err := employeeID.Validate(); err != nil {
		return NextOrderCommand{}, err
	}
	if ttl <= 0 {
		return NextOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("ttl",
			fmt.Errorf("%s is not greater than 0", ttl))
	}

	return NextOrderCommand{
		employeeID: employeeID,
		ttl:        ttl,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c NextOrderCommand) Validate() error {
	return c.guard.Validate(ErrNextOrderCommandIsNotConstructed)
}

// EmployeeID returns the pulling employee.
func (c NextOrderCommand) EmployeeID() kernel.UUID {
	return c.employeeID
}

// TTL returns the lock duration for the handed-out order.
func (c NextOrderCommand) TTL() time.Duration {
	return c.ttl
}
