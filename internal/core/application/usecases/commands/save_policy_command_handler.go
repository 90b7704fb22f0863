package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/policy"
	"fulfillment/internal/pkg/errs"
)

// SavePolicyCommandHandler persists the retry policy. The stored version is
// carried over and bumped, so every save is observable to readers comparing
// policy versions.
type SavePolicyCommandHandler struct {
	uowFactory PolicyUoWFactory
}

// NewSavePolicyCommandHandler creates a handler for policy saves.
func NewSavePolicyCommandHandler(uowFactory PolicyUoWFactory) SavePolicyCommandHandler {
	return SavePolicyCommandHandler{uowFactory: uowFactory}
}

// Handle saves the policy and returns the persisted version.
func (h SavePolicyCommandHandler) Handle(ctx context.Context, cmd SavePolicyCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	policyRepo := uow.PolicyRepository()

	next := cmd.Policy()

	current, err := policyRepo.Get(ctx)
	switch {
	case err == nil:
		p := next
		next, err = policy.RestoreRetryPolicy(
			p.Enabled(), p.MaxRetries(), p.RetryInterval(), p.AutoMoveStatus(),
			p.RetryStatuses(), p.ConfirmationStatuses(), p.WorkingHours(),
			p.NotifyEmployee(), p.NotifyAdmin(), p.Shipping(),
			current.Version(),
		)
		if err != nil {
			return 0, err
		}
		next.BumpVersion()
	case errors.Is(err, errs.ErrObjectNotFound):
		// First save: keep the fresh policy's version 1.
	default:
		return 0, err
	}

	if err := policyRepo.Save(ctx, next); err != nil {
		return 0, err
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	return next.Version(), nil
}
