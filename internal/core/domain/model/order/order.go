package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when using an improperly initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
	// ErrNumberIsRequired is returned when an order is created without a number.
	ErrNumberIsRequired = errs.NewValueIsRequiredError("number")
	// ErrAlreadyAssigned is returned when assigning an order that already has an active assignment.
	ErrAlreadyAssigned = errors.New("order already has an active assignment")
	// ErrNotAssigned is returned when a lock operation needs an active assignment and none exists.
	ErrNotAssigned = errors.New("order has no active assignment")
	// ErrAlreadyLocked is returned when another employee holds an unexpired lock on the order.
	ErrAlreadyLocked = errors.New("order is locked by another employee")
	// ErrRetryExhausted signals the assignment's retry budget is spent; the order
	// needs the auto-move transition or manual handling.
	ErrRetryExhausted = errors.New("retry budget exhausted")
)

// AlreadyLockedError carries the remaining lock duration so callers can show
// a countdown.
type AlreadyLockedError struct {
	HolderID  kernel.UUID
	Remaining time.Duration
}

func (e *AlreadyLockedError) Error() string {
	return fmt.Sprintf("%s (expires in %s)", ErrAlreadyLocked, e.Remaining.Round(time.Second))
}

func (e *AlreadyLockedError) Unwrap() error {
	return ErrAlreadyLocked
}

// PaymentStatus describes how much of the order total has been paid.
type PaymentStatus string

// Payment statuses.
const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// Order is the aggregate root of the fulfillment workflow. It owns the
// order's status, its assignment lifecycle and its append-only status
// history.
//
// Invariants:
//   - status changes only through TransitionTo, which consults the graph
//   - every status change appends exactly one StatusHistory record
//   - at most one assignment is active at any time
//   - the lock lives on the active assignment and expires lazily
type Order struct {
	id               kernel.UUID
	number           string
	customerName     string
	customerPhone    string
	address          string
	items            []LineItem
	totalAmount      int64
	depositAmount    int64
	paymentStatus    PaymentStatus
	paymentConfirmed bool
	statusID         kernel.UUID
	statusCode       status.Code
	version          int64
	createdAt        time.Time
	assignments      []*Assignment
	history          []*StatusHistory
	guard            guard.ConstructorGuard
}

// NewOrder creates an order in the initial "new" status and records the
// initial history entry.
//
// Parameters:
//   - id: unique order identifier
//   - number: human-readable order number (must be non-empty)
//   - initial: the seeded "new" status entity (carries the status row id)
//   - items: at least one line item
func NewOrder(
	id kernel.UUID,
	number string,
	customerName, customerPhone, address string,
	items []LineItem,
	totalAmount, depositAmount int64,
	initial *status.Status,
	createdAt time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, ErrNumberIsRequired
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	if totalAmount <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%d is not greater than 0", totalAmount))
	}
	if depositAmount < 0 || depositAmount > totalAmount {
		return nil, errs.NewValueIsOutOfRangeError("depositAmount", depositAmount, 0, totalAmount)
	}
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	if initial.Code() != status.New {
		return nil, errs.NewValueIsInvalidErrorWithCause("initial status",
			fmt.Errorf("%s is not %s", initial.Code(), status.New))
	}

	o := &Order{
		id:            id,
		number:        number,
		customerName:  customerName,
		customerPhone: customerPhone,
		address:       address,
		items:         items,
		totalAmount:   totalAmount,
		depositAmount: depositAmount,
		paymentStatus: paymentStatusFor(totalAmount, depositAmount),
		statusID:      initial.ID(),
		statusCode:    initial.Code(),
		createdAt:     createdAt,
		guard:         guard.NewConstructorGuard(),
	}

	record, err := NewStatusHistory(kernel.NewUUID(), id, "", initial.Code(), "", "system", createdAt)
	if err != nil {
		return nil, err
	}
	o.history = append(o.history, record)

	return o, nil
}

// RestoreOrder reconstructs an order from persistence.
func RestoreOrder(
	id kernel.UUID,
	number string,
	customerName, customerPhone, address string,
	items []LineItem,
	totalAmount, depositAmount int64,
	paymentStatus PaymentStatus,
	paymentConfirmed bool,
	statusID kernel.UUID,
	statusCode status.Code,
	version int64,
	createdAt time.Time,
	assignments []*Assignment,
	history []*StatusHistory,
) (*Order, error) {
	if err := errors.Join(id.Validate(), statusID.Validate(), statusCode.Validate()); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, ErrNumberIsRequired
	}

	active := 0
	for _, a := range assignments {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if a.IsActive() {
			active++
		}
	}
	if active > 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("assignments",
			fmt.Errorf("%d active assignments, at most 1 allowed", active))
	}

	return &Order{
		id:               id,
		number:           number,
		customerName:     customerName,
		customerPhone:    customerPhone,
		address:          address,
		items:            items,
		totalAmount:      totalAmount,
		depositAmount:    depositAmount,
		paymentStatus:    paymentStatus,
		paymentConfirmed: paymentConfirmed,
		statusID:         statusID,
		statusCode:       statusCode,
		version:          version,
		createdAt:        createdAt,
		assignments:      assignments,
		history:          history,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// CustomerName returns the customer's name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// CustomerPhone returns the customer's phone number.
func (o *Order) CustomerPhone() string {
	return o.customerPhone
}

// Address returns the delivery address.
func (o *Order) Address() string {
	return o.address
}

// Items returns the order's line items.
func (o *Order) Items() []LineItem {
	return o.items
}

// TotalAmount returns the order total in minor currency units.
func (o *Order) TotalAmount() int64 {
	return o.totalAmount
}

// DepositAmount returns the amount already paid.
func (o *Order) DepositAmount() int64 {
	return o.depositAmount
}

// PaymentStatus returns the derived payment state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// PaymentConfirmed reports whether payment was explicitly confirmed.
func (o *Order) PaymentConfirmed() bool {
	return o.paymentConfirmed
}

// StatusID returns the current status row identifier.
func (o *Order) StatusID() kernel.UUID {
	return o.statusID
}

// StatusCode returns the current status code.
func (o *Order) StatusCode() status.Code {
	return o.statusCode
}

// Version returns the optimistic-concurrency version loaded from the store.
func (o *Order) Version() int64 {
	return o.version
}

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Assignments returns the full assignment history, active and past.
func (o *Order) Assignments() []*Assignment {
	return o.assignments
}

// History returns the status history, oldest first.
func (o *Order) History() []*StatusHistory {
	return o.history
}

// ActiveAssignment returns the current assignment, or nil when the order is free.
func (o *Order) ActiveAssignment() *Assignment {
	for _, a := range o.assignments {
		if a.IsActive() {
			return a
		}
	}
	return nil
}

// IsFree reports whether the order has no active assignment.
func (o *Order) IsFree() bool {
	return o.ActiveAssignment() == nil
}

// LockHolder returns the employee holding an unexpired lock, or nil.
func (o *Order) LockHolder(now time.Time) *kernel.UUID {
	a := o.ActiveAssignment()
	if a == nil || !a.IsLocked(now) {
		return nil
	}
	holder := a.EmployeeID()
	return &holder
}

// ConfirmPayment marks the order's payment as explicitly confirmed.
func (o *Order) ConfirmPayment() {
	o.paymentConfirmed = true
}

// TransitionTo applies a status change after checking it against the graph
// and appends a history record. Assignment side effects (deactivation on
// confirmation statuses) are decided by the caller against the retry policy.
func (o *Order) TransitionTo(graph status.Graph, target *status.Status, notes, actor string, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if err := graph.CanTransition(o.statusCode, target.Code()); err != nil {
		return err
	}

	record, err := NewStatusHistory(kernel.NewUUID(), o.id, o.statusCode, target.Code(), notes, actor, now)
	if err != nil {
		return err
	}

	o.statusID = target.ID()
	o.statusCode = target.Code()
	o.history = append(o.history, record)
	return nil
}

// Assign creates a new active assignment for the employee. The order must be
// free; distributors must check freshness and report StaleOrderSet otherwise.
// maxRetries snapshots the retry policy's budget at this moment.
func (o *Order) Assign(employeeID kernel.UUID, maxRetries int, now time.Time) error {
	if err := employeeID.Validate(); err != nil {
		return err
	}
	if o.ActiveAssignment() != nil {
		return ErrAlreadyAssigned
	}

	a, err := NewAssignment(kernel.NewUUID(), o.id, employeeID, maxRetries, now)
	if err != nil {
		return err
	}
	o.assignments = append(o.assignments, a)
	return nil
}

// AcquireLock places a time-bounded exclusive claim on the active assignment.
// Re-acquiring by the current holder extends the lock. Another employee's
// unexpired lock yields AlreadyLockedError with the remaining duration.
func (o *Order) AcquireLock(employeeID kernel.UUID, ttl time.Duration, now time.Time) error {
	if err := employeeID.Validate(); err != nil {
		return err
	}

	a := o.ActiveAssignment()
	if a == nil {
		return ErrNotAssigned
	}
	if a.IsLocked(now) && !a.EmployeeID().IsEqual(employeeID) {
		return &AlreadyLockedError{
			HolderID:  a.EmployeeID(),
			Remaining: a.LockedUntil().Sub(now),
		}
	}
	if !a.EmployeeID().IsEqual(employeeID) {
		return ErrAlreadyAssigned
	}

	a.lock(now.Add(ttl))
	return nil
}

// ReleaseLock clears the lock immediately. Releasing an unlocked order is a no-op.
func (o *Order) ReleaseLock() {
	if a := o.ActiveAssignment(); a != nil {
		a.unlock()
	}
}

// DeactivateAssignment resolves the active assignment and clears its lock.
// Called when the order reaches a confirmation status or is reassigned.
func (o *Order) DeactivateAssignment() {
	if a := o.ActiveAssignment(); a != nil {
		a.deactivate()
	}
}

// RecordRetry increments the active assignment's retry counter. Called only
// when a decision lands in a retry status, keeping the order in the working
// pool.
func (o *Order) RecordRetry() error {
	a := o.ActiveAssignment()
	if a == nil {
		return ErrNotAssigned
	}
	a.incrementRetries()
	return nil
}

// IsRetryExhausted reports whether the active assignment's budget is spent.
// A free order is never exhausted.
func (o *Order) IsRetryExhausted() bool {
	a := o.ActiveAssignment()
	return a != nil && a.IsRetryExhausted()
}

func paymentStatusFor(total, deposit int64) PaymentStatus {
	switch {
	case deposit <= 0:
		return PaymentUnpaid
	case deposit < total:
		return PaymentPartial
	default:
		return PaymentPaid
	}
}
