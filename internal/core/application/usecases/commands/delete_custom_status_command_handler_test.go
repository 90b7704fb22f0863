package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteCustomStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	custom, err := status.NewCustomStatus(kernel.NewUUID(), "vip_review", "VIP review", "", 150)
	require.NoError(t, err)

	cmd, err := commands.NewDeleteCustomStatusCommand(custom.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	statusRepo := new(MockStatusRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StatusRepository").Return(statusRepo).Once(),
		statusRepo.On("Get", ctx, custom.ID()).Return(custom, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("CountByStatus", ctx, status.Code("vip_review")).Return(int64(0), nil).Once(),
		statusRepo.On("Remove", ctx, custom.ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeleteCustomStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	statusRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestDeleteCustomStatusCommandHandler_Handle_SystemStatusProtected(t *testing.T) {
	ctx := t.Context()

	system := systemStatus(t, status.New)
	cmd, err := commands.NewDeleteCustomStatusCommand(system.ID())
	require.NoError(t, err)

	statusRepo := new(MockStatusRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StatusRepository").Return(statusRepo).Once(),
		statusRepo.On("Get", ctx, system.ID()).Return(system, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeleteCustomStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrStatusIsSystem)
	statusRepo.AssertNotCalled(t, "Remove", ctx, mock.Anything)
	uow.AssertNotCalled(t, "OrderRepository")
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestDeleteCustomStatusCommandHandler_Handle_StatusStillHeld(t *testing.T) {
	ctx := t.Context()

	custom, err := status.NewCustomStatus(kernel.NewUUID(), "vip_review", "VIP review", "", 150)
	require.NoError(t, err)

	cmd, err := commands.NewDeleteCustomStatusCommand(custom.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	statusRepo := new(MockStatusRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StatusRepository").Return(statusRepo).Once(),
		statusRepo.On("Get", ctx, custom.ID()).Return(custom, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("CountByStatus", ctx, status.Code("vip_review")).Return(int64(2), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeleteCustomStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrStatusInUse)
	statusRepo.AssertNotCalled(t, "Remove", ctx, mock.Anything)
}
