package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateCustomStatusCommandIsNotConstructed = errors.New(
	"CreateCustomStatusCommand must be created via NewCreateCustomStatusCommand constructor",
)

// CreateCustomStatusCommand adds a tenant-defined status to the catalog.
// System codes are reserved and cannot be recreated as custom statuses.
type CreateCustomStatusCommand struct { //nolint:recvcheck //using for validation
	statusID  kernel.UUID
	code      status.Code
	name      string
	color     string
	sortOrder int

	guard guard.ConstructorGuard
}

// NewCreateCustomStatusCommand creates a custom status creation request.
func NewCreateCustomStatusCommand(
	statusID kernel.UUID,
	code status.Code,
	name, color string,
	sortOrder int,
) (CreateCustomStatusCommand, error) {
	if _, err := status.NewCustomStatus(statusID, code, name, color, sortOrder); err != nil {
		return CreateCustomStatusCommand{}, err
	}

	return CreateCustomStatusCommand{
		statusID:  statusID,
		code:      code,
		name:      name,
		color:     color,
		sortOrder: sortOrder,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCustomStatusCommand) Validate() error {
	return c.guard.Validate(ErrCreateCustomStatusCommandIsNotConstructed)
}

// StatusID returns the new status identifier.
func (c CreateCustomStatusCommand) StatusID() kernel.UUID {
	return c.statusID
}

// Code returns the new status code.
func (c CreateCustomStatusCommand) Code() status.Code {
	return c.code
}

// Name returns the display name.
func (c CreateCustomStatusCommand) Name() string {
	return c.name
}

// Color returns the display color.
func (c CreateCustomStatusCommand) Color() string {
	return c.color
}

// SortOrder returns the catalog ordering hint.
func (c CreateCustomStatusCommand) SortOrder() int {
	return c.sortOrder
}
