// Package employee provides the confirmation-agent directory entity used by
// the work queue and the distributors.
package employee

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for employee operations.
var (
	// ErrNameIsRequired is returned when an employee is created without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrEmployeeIsNotConstructed is returned when using an improperly initialized Employee.
	ErrEmployeeIsNotConstructed = errors.New("Employee must be created via NewEmployee or RestoreEmployee")
)

// Employee is a confirmation agent who claims and works orders.
// Inactive employees are excluded from distribution and the work queue.
type Employee struct {
	id     kernel.UUID
	name   string
	active bool
	guard  guard.ConstructorGuard
}

// NewEmployee creates an active employee.
func NewEmployee(id kernel.UUID, name string) (*Employee, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}

	return &Employee{
		id:     id,
		name:   name,
		active: true,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// RestoreEmployee reconstructs an employee from persistence.
func RestoreEmployee(id kernel.UUID, name string, active bool) (*Employee, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}

	return &Employee{
		id:     id,
		name:   name,
		active: active,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the employee was created through a constructor.
func (e *Employee) Validate() error {
	if e == nil {
		return ErrEmployeeIsNotConstructed
	}
	return e.guard.Validate(ErrEmployeeIsNotConstructed)
}

// ID returns the employee identifier.
func (e *Employee) ID() kernel.UUID {
	return e.id
}

// Name returns the employee's display name.
func (e *Employee) Name() string {
	return e.name
}

// IsActive reports whether the employee may receive work.
func (e *Employee) IsActive() bool {
	return e.active
}

// Deactivate removes the employee from distribution eligibility.
func (e *Employee) Deactivate() {
	e.active = false
}

// Workload pairs an employee with their current active-order count.
// The distributors use it to balance new assignments.
type Workload struct {
	EmployeeID   kernel.UUID
	Name         string
	ActiveOrders int
}
