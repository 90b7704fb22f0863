package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetFreeOrdersQueryHandler reads the free-order pool with direct SQL.
// An order is free when no active assignment row points at it; locks are
// irrelevant here because a lock lives on an active assignment.
type GetFreeOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetFreeOrdersQueryHandler creates a handler for free-pool queries.
func NewGetFreeOrdersQueryHandler(db *gorm.DB) GetFreeOrdersQueryHandler {
	return GetFreeOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are ordered oldest first with number and
// id tie-breaks, matching the order in which distribution plans consume them.
func (h GetFreeOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetFreeOrdersQuery,
) ([]GetFreeOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(query.StatusCodes()))
	for _, c := range query.StatusCodes() {
		codes = append(codes, string(c))
	}

	sql := `
		SELECT
			id,
			number,
			customer_name,
			status_code,
			total_amount,
			created_at
		FROM orders
		WHERE status_code IN ?
		AND NOT EXISTS (
			SELECT 1 FROM assignments
			WHERE assignments.order_id = orders.id AND assignments.active
		)
	`
	args := []any{codes}

	if !query.From().IsZero() {
		sql += " AND created_at >= ?"
		args = append(args, query.From())
	}
	if !query.To().IsZero() {
		sql += " AND created_at < ?"
		args = append(args, query.To())
	}
	sql += " ORDER BY created_at, number, id"

	orders := make([]GetFreeOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetFreeOrdersQueryResponse
		var id uuid.UUID
		var code string
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&resp.Number,
			&resp.CustomerName,
			&code,
			&resp.TotalAmount,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.StatusCode = status.Code(code)
		resp.CreatedAt = createdAt
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
