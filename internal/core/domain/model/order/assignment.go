package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrAssignmentIsNotConstructed is returned when using an improperly
// initialized Assignment.
var ErrAssignmentIsNotConstructed = errors.New(
	"Assignment must be created via NewAssignment or RestoreAssignment",
)

// Assignment binds an order to the employee currently responsible for it.
// At most one assignment per order is active at a time; deactivated
// assignments are retained for audit.
//
// The retry budget (maxRetries) is snapshotted from the retry policy at
// assignment time, so later policy edits never change in-flight budgets.
// The optional lock (lockedUntil) is the time-bounded exclusive claim an
// agent holds while working the order.
type Assignment struct {
	id          kernel.UUID
	orderID     kernel.UUID
	employeeID  kernel.UUID
	active      bool
	assignedAt  time.Time
	lockedUntil *time.Time
	retriesUsed int
	maxRetries  int
	guard       guard.ConstructorGuard
}

// NewAssignment creates an active assignment of an order to an employee.
// maxRetries is the policy's retry budget at the moment of assignment.
func NewAssignment(id, orderID, employeeID kernel.UUID, maxRetries int, assignedAt time.Time) (*Assignment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), employeeID.Validate()); err != nil {
		return nil, err
	}

	return &Assignment{
		id:         id,
		orderID:    orderID,
		employeeID: employeeID,
		active:     true,
		assignedAt: assignedAt,
		maxRetries: maxRetries,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreAssignment reconstructs an assignment from persistence.
func RestoreAssignment(
	id, orderID, employeeID kernel.UUID,
	active bool,
	assignedAt time.Time,
	lockedUntil *time.Time,
	retriesUsed, maxRetries int,
) (*Assignment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), employeeID.Validate()); err != nil {
		return nil, err
	}

	return &Assignment{
		id:          id,
		orderID:     orderID,
		employeeID:  employeeID,
		active:      active,
		assignedAt:  assignedAt,
		lockedUntil: lockedUntil,
		retriesUsed: retriesUsed,
		maxRetries:  maxRetries,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the assignment was created through a constructor.
func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// ID returns the assignment identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// OrderID returns the assigned order's identifier.
func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// EmployeeID returns the responsible employee's identifier.
func (a *Assignment) EmployeeID() kernel.UUID {
	return a.employeeID
}

// IsActive reports whether this is the order's current assignment.
func (a *Assignment) IsActive() bool {
	return a.active
}

// AssignedAt returns when the assignment was created.
func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

// LockedUntil returns the lock expiry, or nil when no lock is held.
func (a *Assignment) LockedUntil() *time.Time {
	return a.lockedUntil
}

// RetriesUsed returns how many retry-status decisions were recorded.
func (a *Assignment) RetriesUsed() int {
	return a.retriesUsed
}

// MaxRetries returns the retry budget snapshotted at assignment time.
func (a *Assignment) MaxRetries() int {
	return a.maxRetries
}

// IsLocked reports whether an unexpired lock exists at the given instant.
// Expiry is lazy: a lock past lockedUntil counts as free.
func (a *Assignment) IsLocked(now time.Time) bool {
	return a.lockedUntil != nil && a.lockedUntil.After(now)
}

// IsRetryExhausted reports whether the retry budget is spent.
func (a *Assignment) IsRetryExhausted() bool {
	return a.retriesUsed >= a.maxRetries
}

func (a *Assignment) lock(until time.Time) {
	a.lockedUntil = &until
}

func (a *Assignment) unlock() {
	a.lockedUntil = nil
}

func (a *Assignment) deactivate() {
	a.active = false
	a.lockedUntil = nil
}

func (a *Assignment) incrementRetries() {
	a.retriesUsed++
}
