package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/policy"
	"fulfillment/internal/pkg/guard"
)

var ErrSavePolicyCommandIsNotConstructed = errors.New(
	"SavePolicyCommand must be created via NewSavePolicyCommand constructor",
)

// SavePolicyCommand replaces the tenant-wide retry policy. The new settings
// apply to work handed out from now on; assignments already in flight keep
// the retry budget they snapshotted.
type SavePolicyCommand struct { //nolint:recvcheck //using for validation
	policy *policy.RetryPolicy

	guard guard.ConstructorGuard
}

// NewSavePolicyCommand creates a policy save request. The policy itself is
// validated by its constructor; the command only carries it.
func NewSavePolicyCommand(p *policy.RetryPolicy) (SavePolicyCommand, error) {
	if err := p.Validate(); err != nil {
		return SavePolicyCommand{}, err
	}

	return SavePolicyCommand{
		policy: p,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SavePolicyCommand) Validate() error {
	return c.guard.Validate(ErrSavePolicyCommandIsNotConstructed)
}

// Policy returns the policy to persist.
func (c SavePolicyCommand) Policy() *policy.RetryPolicy {
	return c.policy
}
