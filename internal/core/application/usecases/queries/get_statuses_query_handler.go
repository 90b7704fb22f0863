package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStatusesQueryHandler reads the status catalog with direct SQL.
type GetStatusesQueryHandler struct {
	db *gorm.DB
}

// NewGetStatusesQueryHandler creates a handler for catalog queries.
func NewGetStatusesQueryHandler(db *gorm.DB) GetStatusesQueryHandler {
	return GetStatusesQueryHandler{db: db}
}

// Handle executes the query, ordered by sort order then code.
func (h GetStatusesQueryHandler) Handle(
	ctx context.Context,
	query GetStatusesQuery,
) ([]GetStatusesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]GetStatusesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			name,
			color,
			sort_order,
			system
		FROM statuses
		ORDER BY sort_order, code
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetStatusesQueryResponse
		var id uuid.UUID
		var code string

		err = rows.Scan(
			&id,
			&code,
			&resp.Name,
			&resp.Color,
			&resp.SortOrder,
			&resp.System,
		)
		if err != nil {
			return nil, err
		}

		statusID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = statusID
		resp.Code = status.Code(code)
		statuses = append(statuses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return statuses, nil
}
