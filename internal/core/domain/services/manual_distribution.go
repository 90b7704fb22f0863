package services

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrDuplicateOrderAssignment is returned when an operator's manual
// distribution lists the same order under more than one employee.
var ErrDuplicateOrderAssignment = errors.New("order appears in more than one assignment block")

// ManualBlock is one operator-specified {employee -> order set} pairing.
type ManualBlock struct {
	EmployeeID kernel.UUID
	OrderIDs   []kernel.UUID
}

// ValidateManualBlocks rejects a manual distribution batch in which any order
// id appears more than once, across blocks or within one. The whole batch is
// rejected before any assignment is written, so neither conflicting block
// takes effect.
func ValidateManualBlocks(blocks []ManualBlock) error {
	seen := make(map[kernel.UUID]struct{})
	for _, block := range blocks {
		if err := block.EmployeeID.Validate(); err != nil {
			return err
		}
		for _, orderID := range block.OrderIDs {
			if err := orderID.Validate(); err != nil {
				return err
			}
			if _, dup := seen[orderID]; dup {
				return fmt.Errorf("%w: %s", ErrDuplicateOrderAssignment, orderID)
			}
			seen[orderID] = struct{}{}
		}
	}
	return nil
}
