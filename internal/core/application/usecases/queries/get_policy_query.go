package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/guard"
)

var ErrGetPolicyQueryIsNotConstructed = errors.New(
	"GetPolicyQuery must be created via NewGetPolicyQuery constructor",
)

// GetPolicyQuery retrieves the tenant-wide retry policy.
type GetPolicyQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPolicyQuery creates a policy query.
func NewGetPolicyQuery() GetPolicyQuery {
	return GetPolicyQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPolicyQuery) Validate() error {
	return q.guard.Validate(ErrGetPolicyQueryIsNotConstructed)
}

// GetPolicyQueryResponse is the policy read model handed to the HTTP adapter.
type GetPolicyQueryResponse struct {
	Enabled                 bool
	MaxRetries              int
	RetryIntervalMinutes    int
	AutoMoveStatus          status.Code
	RetryStatuses           []status.Code
	ConfirmationStatuses    []status.Code
	WorkingHoursEnabled     bool
	WorkingHoursStart       string
	WorkingHoursEnd         string
	NotifyEmployee          bool
	NotifyAdmin             bool
	AutoSendToShipping      bool
	TriggerStatus           status.Code
	RequirePaymentConfirm   bool
	PartialPaymentThreshold int
	Version                 int64
}
