package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetFreeOrdersQueryIsNotConstructed = errors.New(
	"GetFreeOrdersQuery must be created via NewGetFreeOrdersQuery constructor",
)

// GetFreeOrdersQuery retrieves the distributable pool: orders with no active
// assignment, filtered by status codes and an optional creation-time range.
// This is the read model both distributors preview against.
type GetFreeOrdersQuery struct {
	statusCodes []status.Code
	from        time.Time
	to          time.Time

	guard guard.ConstructorGuard
}

// NewGetFreeOrdersQuery creates a free-pool query. Zero time bounds disable
// the respective check.
func NewGetFreeOrdersQuery(statusCodes []status.Code, from, to time.Time) (GetFreeOrdersQuery, error) {
	if len(statusCodes) == 0 {
		return GetFreeOrdersQuery{}, errs.NewValueIsRequiredError("statusCodes")
	}

	return GetFreeOrdersQuery{
		statusCodes: statusCodes,
		from:        from,
		to:          to,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetFreeOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetFreeOrdersQueryIsNotConstructed)
}

// StatusCodes returns the status filter.
func (q GetFreeOrdersQuery) StatusCodes() []status.Code {
	return q.statusCodes
}

// From returns the lower creation-time bound.
func (q GetFreeOrdersQuery) From() time.Time {
	return q.from
}

// To returns the upper creation-time bound.
func (q GetFreeOrdersQuery) To() time.Time {
	return q.to
}

// GetFreeOrdersQueryResponse is one free order in the pool, oldest first.
type GetFreeOrdersQueryResponse struct {
	ID           kernel.UUID
	Number       string
	CustomerName string
	StatusCode   status.Code
	TotalAmount  int64
	CreatedAt    time.Time
}
