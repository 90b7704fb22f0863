package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PreviewDistributionQueryHandler reads a pool/workload snapshot with direct
// SQL and runs the distribution planner over it. The snapshot is not locked:
// the commit re-plans inside a transaction and rejects a shrunken pool.
type PreviewDistributionQueryHandler struct {
	db      *gorm.DB
	planner services.DistributionPlanner
}

// NewPreviewDistributionQueryHandler creates a handler for distribution previews.
func NewPreviewDistributionQueryHandler(db *gorm.DB) PreviewDistributionQueryHandler {
	return PreviewDistributionQueryHandler{
		db:      db,
		planner: services.NewDistributionPlanner(),
	}
}

// Handle computes the plan.
func (h PreviewDistributionQueryHandler) Handle(
	ctx context.Context,
	query PreviewDistributionQuery,
) (services.DistributionPlan, error) {
	if err := query.Validate(); err != nil {
		return services.DistributionPlan{}, err
	}

	orders, err := h.freeOrderRefs(ctx, query)
	if err != nil {
		return services.DistributionPlan{}, err
	}

	workloads, err := h.workloads(ctx)
	if err != nil {
		return services.DistributionPlan{}, err
	}

	return h.planner.Plan(orders, workloads, query.OrderCount(), query.EmployeeCount())
}

func (h PreviewDistributionQueryHandler) freeOrderRefs(
	ctx context.Context,
	query PreviewDistributionQuery,
) ([]services.OrderRef, error) {
	codes := make([]string, 0, len(query.StatusCodes()))
	for _, c := range query.StatusCodes() {
		codes = append(codes, string(c))
	}

	sql := `
		SELECT id, number, created_at
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

	refs := make([]services.OrderRef, 0)

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ref services.OrderRef
		var id uuid.UUID
		var createdAt time.Time

		if err = rows.Scan(&id, &ref.Number, &createdAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		ref.ID = orderID
		ref.CreatedAt = createdAt
		refs = append(refs, ref)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}

func (h PreviewDistributionQueryHandler) workloads(ctx context.Context) ([]employee.Workload, error) {
	workloads := make([]employee.Workload, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			employees.id,
			employees.name,
			COUNT(assignments.id)
		FROM employees
		LEFT JOIN assignments
			ON assignments.employee_id = employees.id AND assignments.active
		WHERE employees.active
		GROUP BY employees.id, employees.name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var w employee.Workload
		var id uuid.UUID

		if err = rows.Scan(&id, &w.Name, &w.ActiveOrders); err != nil {
			return nil, err
		}

		employeeID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		w.EmployeeID = employeeID
		workloads = append(workloads, w)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return workloads, nil
}
