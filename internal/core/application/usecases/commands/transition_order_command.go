package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
	ErrActorIsRequired = errors.New("actor is required")
)

// TransitionOrderCommand requests a status change for one order.
// The transition is validated against the status graph, appended to the
// order's history, and may resolve the active assignment or trigger the
// shipping handoff depending on the retry policy.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(orderID, statusID, "customer confirmed", "admin", nil)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	statusID   kernel.UUID
	notes      string
	actor      string
	employeeID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a transition request.
// actor identifies who applies the change ("admin", "automation", or an
// employee id string); employeeID, when set, is the agent whose lock
// ownership is enforced for confirmation-status transitions.
func NewTransitionOrderCommand(
	orderID, statusID kernel.UUID,
	notes, actor string,
	employeeID *kernel.UUID,
) (TransitionOrderCommand, error) {
	command := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setStatusID(statusID),
		command.setActor(actor),
		command.setEmployeeID(employeeID),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	command.notes = notes
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// StatusID returns the identifier of the requested status.
func (c TransitionOrderCommand) StatusID() kernel.UUID {
	return c.statusID
}

// Notes returns the free-text note for the history record.
func (c TransitionOrderCommand) Notes() string {
	return c.notes
}

// Actor returns who applies the change.
func (c TransitionOrderCommand) Actor() string {
	return c.actor
}

// EmployeeID returns the acting agent's id, or nil for admin/automation actors.
func (c TransitionOrderCommand) EmployeeID() *kernel.UUID {
	return c.employeeID
}

func (c *TransitionOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *TransitionOrderCommand) setStatusID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("statusID", err)
	}
	c.statusID = id
	return nil
}

func (c *TransitionOrderCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}

func (c *TransitionOrderCommand) setEmployeeID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	c.employeeID = id
	return nil
}
