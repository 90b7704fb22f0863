package commands_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/policy"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSavePolicyCommandHandler_Handle_FirstSave(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewSavePolicyCommand(policy.Default())
	require.NoError(t, err)

	policyRepo := new(MockPolicyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PolicyRepository").Return(policyRepo).Once(),
		policyRepo.On("Get", ctx).Return(nil, errs.ErrObjectNotFound).Once(),
		policyRepo.On("Save", ctx, mock.MatchedBy(func(p *policy.RetryPolicy) bool {
			return p.Version() == 1
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPolicyUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSavePolicyCommandHandler(factory)
	version, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	policyRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestSavePolicyCommandHandler_Handle_EditBumpsStoredVersion(t *testing.T) {
	ctx := t.Context()

	stored, err := policy.RestoreRetryPolicy(
		true, 2, 15*time.Minute, status.Cancelled,
		[]status.Code{status.New, status.NoAnswer},
		[]status.Code{status.Confirmed, status.Cancelled},
		policy.WorkingHours{}, false, false,
		policy.ShippingAutomation{},
		4,
	)
	require.NoError(t, err)

	cmd, err := commands.NewSavePolicyCommand(policy.Default())
	require.NoError(t, err)

	policyRepo := new(MockPolicyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PolicyRepository").Return(policyRepo).Once(),
		policyRepo.On("Get", ctx).Return(stored, nil).Once(),
		policyRepo.On("Save", ctx, mock.MatchedBy(func(p *policy.RetryPolicy) bool {
			return p.Version() == 5 && p.MaxRetries() == 3
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPolicyUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSavePolicyCommandHandler(factory)
	version, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(5), version)
	policyRepo.AssertExpectations(t)
}

func TestSavePolicyCommandHandler_Handle_GetError(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewSavePolicyCommand(policy.Default())
	require.NoError(t, err)

	policyRepo := new(MockPolicyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PolicyRepository").Return(policyRepo).Once(),
		policyRepo.On("Get", ctx).Return(nil, errors.New("database error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPolicyUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSavePolicyCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
	policyRepo.AssertNotCalled(t, "Save", ctx, mock.Anything)
}

func TestSavePolicyCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.SavePolicyCommand{} // not constructed properly

	factory := new(MockPolicyUoWFactory)
	handler := commands.NewSavePolicyCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrSavePolicyCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
