package queries

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPreviewDistributionQueryIsNotConstructed = errors.New(
	"PreviewDistributionQuery must be created via NewPreviewDistributionQuery constructor",
)

// PreviewDistributionQuery computes the distribution plan an auto-commit with
// the same parameters would produce, without writing anything. The planner is
// deterministic, so repeated previews over an unchanged pool are identical.
type PreviewDistributionQuery struct {
	statusCodes   []status.Code
	from          time.Time
	to            time.Time
	orderCount    int
	employeeCount int

	guard guard.ConstructorGuard
}

// NewPreviewDistributionQuery creates a preview request. Zero time bounds
// disable the creation-time filter.
func NewPreviewDistributionQuery(
	statusCodes []status.Code,
	from, to time.Time,
	orderCount, employeeCount int,
) (PreviewDistributionQuery, error) {
	if len(statusCodes) == 0 {
		return PreviewDistributionQuery{}, errs.NewValueIsRequiredError("statusCodes")
	}
	if orderCount <= 0 {
		return PreviewDistributionQuery{}, errs.NewValueIsInvalidErrorWithCause("orderCount",
			fmt.Errorf("%d is not greater than 0", orderCount))
	}
	if employeeCount <= 0 {
		return PreviewDistributionQuery{}, errs.NewValueIsInvalidErrorWithCause("employeeCount",
			fmt.Errorf("%d is not greater than 0", employeeCount))
	}

	return PreviewDistributionQuery{
		statusCodes:   statusCodes,
		from:          from,
		to:            to,
		orderCount:    orderCount,
		employeeCount: employeeCount,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q PreviewDistributionQuery) Validate() error {
	return q.guard.Validate(ErrPreviewDistributionQueryIsNotConstructed)
}

// StatusCodes returns the status filter for the free pool.
func (q PreviewDistributionQuery) StatusCodes() []status.Code {
	return q.statusCodes
}

// From returns the lower creation-time bound.
func (q PreviewDistributionQuery) From() time.Time {
	return q.from
}

// To returns the upper creation-time bound.
func (q PreviewDistributionQuery) To() time.Time {
	return q.to
}

// OrderCount returns the requested number of orders to distribute.
func (q PreviewDistributionQuery) OrderCount() int {
	return q.orderCount
}

// EmployeeCount returns the requested number of participating employees.
func (q PreviewDistributionQuery) EmployeeCount() int {
	return q.employeeCount
}
