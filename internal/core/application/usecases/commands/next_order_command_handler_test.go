package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/policy"
	"fulfillment/internal/core/domain/model/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func disabledPolicy(t *testing.T) *policy.RetryPolicy {
	t.Helper()
	p, err := policy.NewRetryPolicy(
		false, 3, 30*time.Minute, status.Cancelled,
		nil, nil, policy.WorkingHours{}, false, false,
		policy.ShippingAutomation{},
	)
	require.NoError(t, err)
	return p
}

func closedWindowPolicy(t *testing.T) *policy.RetryPolicy {
	t.Helper()
	// A zero-width window admits no instant at all.
	p, err := policy.NewRetryPolicy(
		true, 3, 30*time.Minute, status.Cancelled,
		nil, nil,
		policy.WorkingHours{Enabled: true, Start: "12:00", End: "12:00"},
		false, false,
		policy.ShippingAutomation{},
	)
	require.NoError(t, err)
	return p
}

func TestNextOrderCommandHandler_Handle_PolicyDisabled(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewNextOrderCommand(kernel.NewUUID(), 30*time.Minute)
	require.NoError(t, err)

	policyRepo := new(MockPolicyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PolicyRepository").Return(policyRepo).Once(),
		policyRepo.On("Get", ctx).Return(disabledPolicy(t), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockQueueUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewNextOrderCommandHandler(factory)
	o, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, policy.ErrPolicyDisabled)
	assert.Nil(t, o)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestNextOrderCommandHandler_Handle_OutsideWorkingHours(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewNextOrderCommand(kernel.NewUUID(), 30*time.Minute)
	require.NoError(t, err)

	policyRepo := new(MockPolicyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PolicyRepository").Return(policyRepo).Once(),
		policyRepo.On("Get", ctx).Return(closedWindowPolicy(t), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockQueueUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewNextOrderCommandHandler(factory)
	o, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrQueueEmpty)
	assert.Nil(t, o)
}

func TestNextOrderCommandHandler_Handle_RepeatedPullReturnsHeldOrder(t *testing.T) {
	ctx := t.Context()

	employeeID := kernel.NewUUID()
	held := assignedOrder(t, employeeID, 3)
	require.NoError(t, held.AcquireLock(employeeID, time.Hour, time.Now()))

	cmd, err := commands.NewNextOrderCommand(employeeID, 30*time.Minute)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	policyRepo := new(MockPolicyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PolicyRepository").Return(policyRepo).Once(),
		policyRepo.On("Get", ctx).Return(policy.Default(), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAssignedTo", ctx, employeeID).Return([]*order.Order{held}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockQueueUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewNextOrderCommandHandler(factory)
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.ID().IsEqual(held.ID()))
	orderRepo.AssertNotCalled(t, "GetFree", ctx, mock.Anything, mock.Anything, mock.Anything)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestNextOrderCommandHandler_Handle_RequeuesAssignedRetryOrder(t *testing.T) {
	ctx := t.Context()

	employeeID := kernel.NewUUID()
	assigned := assignedOrder(t, employeeID, 3) // no lock, zero retries used

	cmd, err := commands.NewNextOrderCommand(employeeID, 30*time.Minute)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	policyRepo := new(MockPolicyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PolicyRepository").Return(policyRepo).Once(),
		policyRepo.On("Get", ctx).Return(policy.Default(), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAssignedTo", ctx, employeeID).Return([]*order.Order{assigned}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockQueueUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewNextOrderCommandHandler(factory)
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.ID().IsEqual(assigned.ID()))

	holder := got.LockHolder(time.Now())
	require.NotNil(t, holder)
	assert.True(t, holder.IsEqual(employeeID))
}

func TestNextOrderCommandHandler_Handle_AssignsFromFreePool(t *testing.T) {
	ctx := t.Context()

	employeeID := kernel.NewUUID()
	free := freshOrder(t)

	cmd, err := commands.NewNextOrderCommand(employeeID, 30*time.Minute)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	policyRepo := new(MockPolicyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PolicyRepository").Return(policyRepo).Once(),
		policyRepo.On("Get", ctx).Return(policy.Default(), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAssignedTo", ctx, employeeID).Return([]*order.Order{}, nil).Once(),
		orderRepo.On("GetFree", ctx, mock.Anything, time.Time{}, time.Time{}).
			Return([]*order.Order{free}, nil).
			Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockQueueUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewNextOrderCommandHandler(factory)
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, got)

	a := got.ActiveAssignment()
	require.NotNil(t, a)
	assert.True(t, a.EmployeeID().IsEqual(employeeID))
	assert.Equal(t, 3, a.MaxRetries())

	holder := got.LockHolder(time.Now())
	require.NotNil(t, holder)
	assert.True(t, holder.IsEqual(employeeID))
}

func TestNextOrderCommandHandler_Handle_ForeignLockFallsThrough(t *testing.T) {
	ctx := t.Context()

	employeeID := kernel.NewUUID()
	otherID := kernel.NewUUID()

	// Assigned to the pulling employee on paper, but another employee holds
	// the lock. Must not be handed out.
	foreign := assignedOrder(t, otherID, 3)
	require.NoError(t, foreign.AcquireLock(otherID, time.Hour, time.Now()))

	cmd, err := commands.NewNextOrderCommand(employeeID, 30*time.Minute)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	policyRepo := new(MockPolicyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PolicyRepository").Return(policyRepo).Once(),
		policyRepo.On("Get", ctx).Return(policy.Default(), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAssignedTo", ctx, employeeID).Return([]*order.Order{foreign}, nil).Once(),
		orderRepo.On("GetFree", ctx, mock.Anything, time.Time{}, time.Time{}).
			Return([]*order.Order{}, nil).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockQueueUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewNextOrderCommandHandler(factory)
	got, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrQueueEmpty)
	assert.Nil(t, got)
}

func TestNextOrderCommandHandler_Handle_ExhaustedOrderNotSurfaced(t *testing.T) {
	ctx := t.Context()

	employeeID := kernel.NewUUID()

	// Assigned to the pulling employee but the retry budget is spent. The
	// queue must not hand it out again; auto-move or an operator takes over.
	exhausted := exhaustedOrder(t, employeeID)

	cmd, err := commands.NewNextOrderCommand(employeeID, 30*time.Minute)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	policyRepo := new(MockPolicyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PolicyRepository").Return(policyRepo).Once(),
		policyRepo.On("Get", ctx).Return(policy.Default(), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAssignedTo", ctx, employeeID).Return([]*order.Order{exhausted}, nil).Once(),
		orderRepo.On("GetFree", ctx, mock.Anything, time.Time{}, time.Time{}).
			Return([]*order.Order{}, nil).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockQueueUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewNextOrderCommandHandler(factory)
	got, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrQueueEmpty)
	assert.Nil(t, got)
	assert.Nil(t, exhausted.LockHolder(time.Now()))
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestNextOrderCommandHandler_Handle_EmptyQueue(t *testing.T) {
	ctx := t.Context()

	employeeID := kernel.NewUUID()
	cmd, err := commands.NewNextOrderCommand(employeeID, 30*time.Minute)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	policyRepo := new(MockPolicyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PolicyRepository").Return(policyRepo).Once(),
		policyRepo.On("Get", ctx).Return(policy.Default(), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAssignedTo", ctx, employeeID).Return([]*order.Order{}, nil).Once(),
		orderRepo.On("GetFree", ctx, mock.Anything, time.Time{}, time.Time{}).
			Return([]*order.Order{}, nil).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockQueueUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewNextOrderCommandHandler(factory)
	got, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrQueueEmpty)
	assert.Nil(t, got)
	uow.AssertNotCalled(t, "Commit", ctx)
}
