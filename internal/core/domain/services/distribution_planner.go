package services

import (
	"fmt"
	"sort"
	"time"

	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// OrderRef is the lightweight view of a free order the planner works with.
type OrderRef struct {
	ID        kernel.UUID
	Number    string
	CreatedAt time.Time
}

// PlannedAssignment is one employee's share of a distribution plan.
type PlannedAssignment struct {
	EmployeeID   kernel.UUID
	EmployeeName string
	Orders       []OrderRef
}

// DistributionPlan is the concrete outcome a commit would produce.
// EffectiveOrderCount and EffectiveEmployeeCount are the requested counts
// clamped to the pool size and the number of eligible employees.
type DistributionPlan struct {
	EffectiveOrderCount    int
	EffectiveEmployeeCount int
	Assignments            []PlannedAssignment
}

// DistributionPlanner is a domain service that load-balances free orders
// across employees by their current active workload.
//
// Planning rules:
//   - employees are sorted ascending by active-order count, ties broken by
//     name then id, and the least-loaded effectiveEmployeeCount are selected
//   - orders are sorted oldest first, ties broken by number then id
//   - orders are dealt round-robin, so no employee receives more than
//     ceil(orders/employees) and the spread between any two is at most 1
//
// The plan is a pure function of its inputs: identical snapshots produce
// identical plans, which makes preview idempotent and lets commit reproduce
// exactly what preview showed.
type DistributionPlanner struct{}

// NewDistributionPlanner creates a new DistributionPlanner instance.
func NewDistributionPlanner() DistributionPlanner {
	return DistributionPlanner{}
}

// Plan computes a distribution of up to requestedOrders free orders across up
// to requestedEmployees of the given workloads. Requested counts are clamped,
// never errors: an empty pool or empty employee list yields an empty plan.
func (p DistributionPlanner) Plan(
	freeOrders []OrderRef,
	workloads []employee.Workload,
	requestedOrders, requestedEmployees int,
) (DistributionPlan, error) {
	if requestedOrders < 0 {
		return DistributionPlan{}, errs.NewValueIsInvalidErrorWithCause("requestedOrders",
			fmt.Errorf("%d is negative", requestedOrders))
	}
	if requestedEmployees < 0 {
		return DistributionPlan{}, errs.NewValueIsInvalidErrorWithCause("requestedEmployees",
			fmt.Errorf("%d is negative", requestedEmployees))
	}

	orders := make([]OrderRef, len(freeOrders))
	copy(orders, freeOrders)
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.Before(orders[j].CreatedAt)
		}
		if orders[i].Number != orders[j].Number {
			return orders[i].Number < orders[j].Number
		}
		return orders[i].ID.String() < orders[j].ID.String()
	})

	employees := make([]employee.Workload, len(workloads))
	copy(employees, workloads)
	sort.Slice(employees, func(i, j int) bool {
		if employees[i].ActiveOrders != employees[j].ActiveOrders {
			return employees[i].ActiveOrders < employees[j].ActiveOrders
		}
		if employees[i].Name != employees[j].Name {
			return employees[i].Name < employees[j].Name
		}
		return employees[i].EmployeeID.String() < employees[j].EmployeeID.String()
	})

	orderCount := min(requestedOrders, len(orders))
	employeeCount := min(requestedEmployees, len(employees))
	if orderCount == 0 || employeeCount == 0 {
		return DistributionPlan{}, nil
	}
	// More employees than orders leaves idle participants; trim to the work available.
	employeeCount = min(employeeCount, orderCount)

	selected := employees[:employeeCount]
	assignments := make([]PlannedAssignment, employeeCount)
	for i, w := range selected {
		assignments[i] = PlannedAssignment{
			EmployeeID:   w.EmployeeID,
			EmployeeName: w.Name,
		}
	}

	for i := 0; i < orderCount; i++ {
		slot := i % employeeCount
		assignments[slot].Orders = append(assignments[slot].Orders, orders[i])
	}

	return DistributionPlan{
		EffectiveOrderCount:    orderCount,
		EffectiveEmployeeCount: employeeCount,
		Assignments:            assignments,
	}, nil
}

// TotalPlanned returns the number of orders the plan assigns.
func (p DistributionPlan) TotalPlanned() int {
	total := 0
	for _, a := range p.Assignments {
		total += len(a.Orders)
	}
	return total
}
