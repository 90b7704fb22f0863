package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/guard"
)

var ErrGetStatusesQueryIsNotConstructed = errors.New(
	"GetStatusesQuery must be created via NewGetStatusesQuery constructor",
)

// GetStatusesQuery retrieves the full status catalog, system and custom.
type GetStatusesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStatusesQuery creates a catalog query.
func NewGetStatusesQuery() GetStatusesQuery {
	return GetStatusesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetStatusesQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusesQueryIsNotConstructed)
}

// GetStatusesQueryResponse is one catalog entry.
type GetStatusesQueryResponse struct {
	ID        kernel.UUID
	Code      status.Code
	Name      string
	Color     string
	SortOrder int
	System    bool
}
