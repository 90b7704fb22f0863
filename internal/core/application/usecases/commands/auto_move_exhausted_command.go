package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrAutoMoveExhaustedCommandIsNotConstructed = errors.New(
	"AutoMoveExhaustedCommand must be created via NewAutoMoveExhaustedCommand constructor",
)

// AutoMoveExhaustedCommand sweeps orders whose assignment spent its whole
// retry budget while the order is still stuck in a retry status, and forces
// them into the policy's auto-move status.
type AutoMoveExhaustedCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewAutoMoveExhaustedCommand creates the sweep command.
func NewAutoMoveExhaustedCommand() (AutoMoveExhaustedCommand, error) {
	return AutoMoveExhaustedCommand{guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c AutoMoveExhaustedCommand) Validate() error {
	return c.guard.Validate(ErrAutoMoveExhaustedCommandIsNotConstructed)
}
