package commands

import (
	"errors"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrDistributeManualCommandIsNotConstructed = errors.New(
	"DistributeManualCommand must be created via NewDistributeManualCommand constructor",
)

// DistributeManualCommand applies an operator-specified {employee -> order
// set} mapping as one batch. The batch is rejected up front when any order
// appears in more than one block; within a block, orders that left the free
// pool since the operator composed the mapping are skipped and reported as
// stale rather than failing the block.
type DistributeManualCommand struct { //nolint:recvcheck //using for validation
	blocks []services.ManualBlock

	guard guard.ConstructorGuard
}

// NewDistributeManualCommand creates a manual distribution batch.
// Fails with services.ErrDuplicateOrderAssignment on a double-booked order.
func NewDistributeManualCommand(blocks []services.ManualBlock) (DistributeManualCommand, error) {
	if len(blocks) == 0 {
		return DistributeManualCommand{}, errs.NewValueIsRequiredError("blocks")
	}
	if err := services.ValidateManualBlocks(blocks); err != nil {
		return DistributeManualCommand{}, err
	}

	return DistributeManualCommand{
		blocks: blocks,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DistributeManualCommand) Validate() error {
	return c.guard.Validate(ErrDistributeManualCommandIsNotConstructed)
}

// Blocks returns the operator's mapping.
func (c DistributeManualCommand) Blocks() []services.ManualBlock {
	return c.blocks
}
