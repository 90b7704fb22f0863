package commands

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrDistributeAutoCommandIsNotConstructed = errors.New(
	"DistributeAutoCommand must be created via NewDistributeAutoCommand constructor",
)

// DistributeAutoCommand commits a load-balanced distribution. The parameters
// mirror the preview query; expectedOrderCount carries the effective count the
// preview showed, so the commit can detect a pool that shrank in between.
type DistributeAutoCommand struct { //nolint:recvcheck //using for validation
	statusCodes        []status.Code
	from               time.Time
	to                 time.Time
	orderCount         int
	employeeCount      int
	expectedOrderCount int

	guard guard.ConstructorGuard
}

// NewDistributeAutoCommand creates an auto-distribution commit request.
// Zero time bounds disable the creation-time filter.
func NewDistributeAutoCommand(
	statusCodes []status.Code,
	from, to time.Time,
	orderCount, employeeCount, expectedOrderCount int,
) (DistributeAutoCommand, error) {
	if len(statusCodes) == 0 {
		return DistributeAutoCommand{}, errs.NewValueIsRequiredError("statusCodes")
	}
	if orderCount <= 0 {
		return DistributeAutoCommand{}, errs.NewValueIsInvalidErrorWithCause("orderCount",
			fmt.Errorf("%d is not greater than 0", orderCount))
	}
	if employeeCount <= 0 {
		return DistributeAutoCommand{}, errs.NewValueIsInvalidErrorWithCause("employeeCount",
			fmt.Errorf("%d is not greater than 0", employeeCount))
	}
	if expectedOrderCount < 0 {
		return DistributeAutoCommand{}, errs.NewValueIsInvalidErrorWithCause("expectedOrderCount",
			fmt.Errorf("%d is negative", expectedOrderCount))
	}

	return DistributeAutoCommand{
		statusCodes:        statusCodes,
		from:               from,
		to:                 to,
		orderCount:         orderCount,
		employeeCount:      employeeCount,
		expectedOrderCount: expectedOrderCount,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DistributeAutoCommand) Validate() error {
	return c.guard.Validate(ErrDistributeAutoCommandIsNotConstructed)
}

// StatusCodes returns the status filter for the free pool.
func (c DistributeAutoCommand) StatusCodes() []status.Code {
	return c.statusCodes
}

// From returns the lower creation-time bound.
func (c DistributeAutoCommand) From() time.Time {
	return c.from
}

// To returns the upper creation-time bound.
func (c DistributeAutoCommand) To() time.Time {
	return c.to
}

// OrderCount returns the requested number of orders to distribute.
func (c DistributeAutoCommand) OrderCount() int {
	return c.orderCount
}

// EmployeeCount returns the requested number of participating employees.
func (c DistributeAutoCommand) EmployeeCount() int {
	return c.employeeCount
}

// ExpectedOrderCount returns the effective order count the preview promised.
func (c DistributeAutoCommand) ExpectedOrderCount() int {
	return c.expectedOrderCount
}
