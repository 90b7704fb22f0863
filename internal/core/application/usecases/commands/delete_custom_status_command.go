package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrDeleteCustomStatusCommandIsNotConstructed = errors.New(
	"DeleteCustomStatusCommand must be created via NewDeleteCustomStatusCommand constructor",
)

// DeleteCustomStatusCommand removes a custom status from the catalog.
type DeleteCustomStatusCommand struct { //nolint:recvcheck //using for validation
	statusID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteCustomStatusCommand creates a status deletion request.
func NewDeleteCustomStatusCommand(statusID kernel.UUID) (DeleteCustomStatusCommand, error) {
	if err := statusID.Validate(); err != nil {
		return DeleteCustomStatusCommand{}, err
	}

	return DeleteCustomStatusCommand{
		statusID: statusID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteCustomStatusCommand) Validate() error {
	return c.guard.Validate(ErrDeleteCustomStatusCommandIsNotConstructed)
}

// StatusID returns the status to delete.
func (c DeleteCustomStatusCommand) StatusID() kernel.UUID {
	return c.statusID
}
