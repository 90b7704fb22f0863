package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"
)

// EmployeeRepository defines the persistence contract for the employee directory.
type EmployeeRepository interface {
	// Add persists a new employee.
	Add(ctx context.Context, aggregate *employee.Employee) error

	// Update persists changes to an existing employee.
	Update(ctx context.Context, aggregate *employee.Employee) error

	// Get retrieves an employee by id.
	Get(ctx context.Context, id kernel.UUID) (*employee.Employee, error)

	// GetWorkloads returns every active employee together with their current
	// active-order count. The distributors balance assignments against it.
	GetWorkloads(ctx context.Context) ([]employee.Workload, error)
}
