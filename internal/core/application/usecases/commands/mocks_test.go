package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/policy"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetFree(
	ctx context.Context, codes []status.Code, from, to time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, codes, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAssignedTo(ctx context.Context, employeeID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllWithActiveAssignment(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context, code status.Code) (int64, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(int64), args.Error(1)
}

type MockEmployeeRepository struct{ mock.Mock }

func (m *MockEmployeeRepository) Add(ctx context.Context, aggregate *employee.Employee) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Update(ctx context.Context, aggregate *employee.Employee) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Get(ctx context.Context, id kernel.UUID) (*employee.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) GetWorkloads(ctx context.Context) ([]employee.Workload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]employee.Workload), args.Error(1)
}

type MockStatusRepository struct{ mock.Mock }

func (m *MockStatusRepository) Add(ctx context.Context, aggregate *status.Status) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockStatusRepository) Remove(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStatusRepository) Get(ctx context.Context, id kernel.UUID) (*status.Status, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*status.Status), args.Error(1)
}

func (m *MockStatusRepository) GetByCode(ctx context.Context, code status.Code) (*status.Status, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*status.Status), args.Error(1)
}

func (m *MockStatusRepository) GetAll(ctx context.Context) ([]*status.Status, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*status.Status), args.Error(1)
}

type MockPolicyRepository struct{ mock.Mock }

func (m *MockPolicyRepository) Get(ctx context.Context) (*policy.RetryPolicy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*policy.RetryPolicy), args.Error(1)
}

func (m *MockPolicyRepository) Save(ctx context.Context, aggregate *policy.RetryPolicy) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

// MockUoW satisfies every unit-of-work partition the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) EmployeeRepository() ports.EmployeeRepository {
	args := m.Called()
	return args.Get(0).(ports.EmployeeRepository)
}

func (m *MockUoW) StatusRepository() ports.StatusRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusRepository)
}

func (m *MockUoW) PolicyRepository() ports.PolicyRepository {
	args := m.Called()
	return args.Get(0).(ports.PolicyRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockWorkflowUoWFactory struct{ mock.Mock }

func (m *MockWorkflowUoWFactory) Create() commands.WorkflowUoW {
	args := m.Called()
	return args.Get(0).(commands.WorkflowUoW)
}

type MockQueueUoWFactory struct{ mock.Mock }

func (m *MockQueueUoWFactory) Create() commands.QueueUoW {
	args := m.Called()
	return args.Get(0).(commands.QueueUoW)
}

type MockDistributionUoWFactory struct{ mock.Mock }

func (m *MockDistributionUoWFactory) Create() commands.DistributionUoW {
	args := m.Called()
	return args.Get(0).(commands.DistributionUoW)
}

type MockStatusUoWFactory struct{ mock.Mock }

func (m *MockStatusUoWFactory) Create() commands.StatusUoW {
	args := m.Called()
	return args.Get(0).(commands.StatusUoW)
}

type MockPolicyUoWFactory struct{ mock.Mock }

func (m *MockPolicyUoWFactory) Create() commands.PolicyUoW {
	args := m.Called()
	return args.Get(0).(commands.PolicyUoW)
}

type MockShippingGateway struct{ mock.Mock }

func (m *MockShippingGateway) SendToShipping(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyRetryExhausted(ctx context.Context, orderID, employeeID kernel.UUID) error {
	args := m.Called(ctx, orderID, employeeID)
	return args.Error(0)
}

func (m *MockNotifier) NotifyAutoMoved(ctx context.Context, orderID kernel.UUID, to status.Code) error {
	args := m.Called(ctx, orderID, to)
	return args.Error(0)
}

func (m *MockNotifier) NotifyAssigned(ctx context.Context, employeeID kernel.UUID, orderCount int) error {
	args := m.Called(ctx, employeeID, orderCount)
	return args.Error(0)
}

// Test fixtures shared by the handler tests.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func systemStatus(t *testing.T, code status.Code) *status.Status {
	t.Helper()
	for _, def := range status.SystemSeed() {
		if def.Code == code {
			s, err := status.RestoreStatus(kernel.NewUUID(), def.Code, def.Name, def.Color, def.SortOrder, true)
			require.NoError(t, err)
			return s
		}
	}
	t.Fatalf("unknown system code %s", code)
	return nil
}

func statusCatalog(t *testing.T, codes ...status.Code) []*status.Status {
	t.Helper()
	catalog := make([]*status.Status, 0, len(codes))
	for _, code := range codes {
		catalog = append(catalog, systemStatus(t, code))
	}
	return catalog
}

func freshOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewLineItem("Ceramic mug", 2, 1500)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD-1001",
		"Dana Reyes", "+15550100", "12 Harbor Lane",
		[]order.LineItem{item}, 3000, 0,
		systemStatus(t, status.New), time.Now().Add(-time.Hour),
	)
	require.NoError(t, err)
	return o
}

func assignedOrder(t *testing.T, employeeID kernel.UUID, maxRetries int) *order.Order {
	t.Helper()
	o := freshOrder(t)
	require.NoError(t, o.Assign(employeeID, maxRetries, time.Now().Add(-30*time.Minute)))
	return o
}
