package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/policy"
)

// PolicyRepository defines the persistence contract for the tenant's
// singleton retry policy.
type PolicyRepository interface {
	// Get retrieves the current policy.
	Get(ctx context.Context) (*policy.RetryPolicy, error)

	// Save persists the policy, overwriting the singleton row.
	Save(ctx context.Context, aggregate *policy.RetryPolicy) error
}
