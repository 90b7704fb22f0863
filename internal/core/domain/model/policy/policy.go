package policy

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for policy operations.
var (
	// ErrPolicyIsNotConstructed is returned when using an improperly initialized RetryPolicy.
	ErrPolicyIsNotConstructed = errors.New("RetryPolicy must be created via NewRetryPolicy or RestoreRetryPolicy")
	// ErrPolicyDisabled is returned when an automation operation runs while the policy is disabled.
	ErrPolicyDisabled = errors.New("retry policy is disabled")
)

// WorkingHours restricts when the work queue hands out orders.
// A window with Start > End spans midnight.
type WorkingHours struct {
	Enabled bool
	Start   string // "HH:MM"
	End     string // "HH:MM"
}

// ShippingAutomation configures the automatic shipping handoff that fires
// when an order reaches the trigger status.
type ShippingAutomation struct {
	// AutoSendToShipping toggles the handoff entirely.
	AutoSendToShipping bool
	// TriggerStatus is the status whose entry fires the handoff.
	TriggerStatus status.Code
	// RequirePaymentConfirm demands an explicit payment confirmation
	// before handing off a not-fully-paid order.
	RequirePaymentConfirm bool
	// PartialPaymentThreshold is the minimal deposit share, in percent,
	// that lets a partially paid order ship.
	PartialPaymentThreshold int
}

// RetryPolicy is the tenant-wide automation configuration consulted by the
// status graph, the work queue and the shipping handoff trigger.
//
// The policy is read-mostly and versioned: saving bumps the version, and
// in-flight assignments keep the retry budget they snapshotted at assignment
// time, so live edits never alter work already handed out.
type RetryPolicy struct {
	enabled              bool
	maxRetries           int
	retryInterval        time.Duration
	autoMoveStatus       status.Code
	retryStatuses        map[status.Code]struct{}
	confirmationStatuses map[status.Code]struct{}
	workingHours         WorkingHours
	notifyEmployee       bool
	notifyAdmin          bool
	shipping             ShippingAutomation
	version              int64
	guard                guard.ConstructorGuard
}

// NewRetryPolicy creates a policy with version 1.
//
// Validation rules:
//   - maxRetries must be positive
//   - retryInterval must not be negative
//   - autoMoveStatus must not itself be a retry status
//   - retryStatuses and confirmationStatuses must be disjoint
func NewRetryPolicy(
	enabled bool,
	maxRetries int,
	retryInterval time.Duration,
	autoMoveStatus status.Code,
	retryStatuses, confirmationStatuses []status.Code,
	workingHours WorkingHours,
	notifyEmployee, notifyAdmin bool,
	shipping ShippingAutomation,
) (*RetryPolicy, error) {
	return RestoreRetryPolicy(
		enabled, maxRetries, retryInterval, autoMoveStatus,
		retryStatuses, confirmationStatuses, workingHours,
		notifyEmployee, notifyAdmin, shipping, 1,
	)
}

// RestoreRetryPolicy reconstructs a policy from persistence.
func RestoreRetryPolicy(
	enabled bool,
	maxRetries int,
	retryInterval time.Duration,
	autoMoveStatus status.Code,
	retryStatuses, confirmationStatuses []status.Code,
	workingHours WorkingHours,
	notifyEmployee, notifyAdmin bool,
	shipping ShippingAutomation,
	version int64,
) (*RetryPolicy, error) {
	if maxRetries <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("maxRetries",
			fmt.Errorf("%d is not greater than 0", maxRetries))
	}
	if retryInterval < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("retryInterval",
			fmt.Errorf("%s is negative", retryInterval))
	}
	if err := autoMoveStatus.Validate(); err != nil {
		return nil, err
	}

	retrySet := codeSet(retryStatuses)
	confirmSet := codeSet(confirmationStatuses)
	for c := range confirmSet {
		if _, ok := retrySet[c]; ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("confirmationStatuses",
				fmt.Errorf("%s is also a retry status", c))
		}
	}
	if _, ok := retrySet[autoMoveStatus]; ok {
		return nil, errs.NewValueIsInvalidErrorWithCause("autoMoveStatus",
			fmt.Errorf("%s is a retry status", autoMoveStatus))
	}
	if workingHours.Enabled {
		if err := validateClock(workingHours.Start); err != nil {
			return nil, err
		}
		if err := validateClock(workingHours.End); err != nil {
			return nil, err
		}
	}
	if shipping.AutoSendToShipping {
		if err := shipping.TriggerStatus.Validate(); err != nil {
			return nil, err
		}
		if shipping.PartialPaymentThreshold < 0 || shipping.PartialPaymentThreshold > 100 {
			return nil, errs.NewValueIsOutOfRangeError("partialPaymentThreshold",
				shipping.PartialPaymentThreshold, 0, 100)
		}
	}

	return &RetryPolicy{
		enabled:              enabled,
		maxRetries:           maxRetries,
		retryInterval:        retryInterval,
		autoMoveStatus:       autoMoveStatus,
		retryStatuses:        retrySet,
		confirmationStatuses: confirmSet,
		workingHours:         workingHours,
		notifyEmployee:       notifyEmployee,
		notifyAdmin:          notifyAdmin,
		shipping:             shipping,
		version:              version,
		guard:                guard.NewConstructorGuard(),
	}, nil
}

// Default returns the policy a fresh tenant starts with: three retries,
// thirty-minute interval, confirmation on confirmed/cancelled and the
// unreachable-customer terminals, auto-move to cancelled, shipping handoff
// on ready with a 50% deposit threshold.
func Default() *RetryPolicy {
	p, err := NewRetryPolicy(
		true,
		3,
		30*time.Minute,
		status.Cancelled,
		[]status.Code{status.New, status.UnderReview, status.Postponed, status.NoAnswer},
		[]status.Code{status.Confirmed, status.WrongNumber, status.OutOfArea, status.Duplicate, status.Cancelled},
		WorkingHours{},
		true,
		true,
		ShippingAutomation{
			AutoSendToShipping:      true,
			TriggerStatus:           status.Ready,
			PartialPaymentThreshold: 50,
		},
	)
	if err != nil {
		// The default configuration is a compile-time constant; it cannot fail validation.
		panic(err)
	}
	return p
}

// Validate ensures the policy was created through a constructor.
func (p *RetryPolicy) Validate() error {
	if p == nil {
		return ErrPolicyIsNotConstructed
	}
	return p.guard.Validate(ErrPolicyIsNotConstructed)
}

// Enabled reports whether workflow automation is on.
func (p *RetryPolicy) Enabled() bool {
	return p.enabled
}

// MaxRetries returns the retry budget snapshotted onto new assignments.
func (p *RetryPolicy) MaxRetries() int {
	return p.maxRetries
}

// RetryInterval returns the pause before a retried order is requeued.
func (p *RetryPolicy) RetryInterval() time.Duration {
	return p.retryInterval
}

// AutoMoveStatus returns the status forced onto retry-exhausted orders.
func (p *RetryPolicy) AutoMoveStatus() status.Code {
	return p.autoMoveStatus
}

// RetryStatuses returns the retry status set as a slice (order unspecified).
func (p *RetryPolicy) RetryStatuses() []status.Code {
	return setToSlice(p.retryStatuses)
}

// ConfirmationStatuses returns the confirmation status set as a slice.
func (p *RetryPolicy) ConfirmationStatuses() []status.Code {
	return setToSlice(p.confirmationStatuses)
}

// WorkingHours returns the queue working-hours window.
func (p *RetryPolicy) WorkingHours() WorkingHours {
	return p.workingHours
}

// NotifyEmployee reports whether agents are notified on assignment events.
func (p *RetryPolicy) NotifyEmployee() bool {
	return p.notifyEmployee
}

// NotifyAdmin reports whether admins are notified on retry exhaustion.
func (p *RetryPolicy) NotifyAdmin() bool {
	return p.notifyAdmin
}

// Shipping returns the shipping automation sub-policy.
func (p *RetryPolicy) Shipping() ShippingAutomation {
	return p.shipping
}

// Version returns the policy version, bumped on every save.
func (p *RetryPolicy) Version() int64 {
	return p.version
}

// BumpVersion increments the version before persisting an edit.
func (p *RetryPolicy) BumpVersion() {
	p.version++
}

// IsRetryStatus reports whether a decision into code keeps the order in the
// working pool.
func (p *RetryPolicy) IsRetryStatus(code status.Code) bool {
	_, ok := p.retryStatuses[code]
	return ok
}

// IsConfirmationStatus reports whether code resolves an agent's assignment.
func (p *RetryPolicy) IsConfirmationStatus(code status.Code) bool {
	_, ok := p.confirmationStatuses[code]
	return ok
}

// WithinWorkingHours reports whether the queue may hand out orders at the
// given instant. A disabled window always allows. A window whose start is
// after its end spans midnight.
func (p *RetryPolicy) WithinWorkingHours(now time.Time) bool {
	if !p.workingHours.Enabled {
		return true
	}

	minuteOfDay := now.Hour()*60 + now.Minute()
	start := clockMinutes(p.workingHours.Start)
	end := clockMinutes(p.workingHours.End)

	if start <= end {
		return minuteOfDay >= start && minuteOfDay < end
	}
	return minuteOfDay >= start || minuteOfDay < end
}

// ShouldSendToShipping decides the shipping handoff for an order entering
// code. The payment gate passes when the order is fully paid, the deposit
// reaches the partial-payment threshold, or payment was explicitly confirmed
// and confirmation is what the policy requires.
func (p *RetryPolicy) ShouldSendToShipping(code status.Code, total, deposit int64, paymentConfirmed bool) bool {
	if !p.shipping.AutoSendToShipping || code != p.shipping.TriggerStatus {
		return false
	}

	if deposit >= total {
		return true
	}
	if p.shipping.RequirePaymentConfirm {
		return paymentConfirmed
	}
	if total <= 0 {
		return false
	}
	return deposit*100 >= total*int64(p.shipping.PartialPaymentThreshold)
}

func codeSet(codes []status.Code) map[status.Code]struct{} {
	set := make(map[status.Code]struct{}, len(codes))
	for _, c := range codes {
		if c != "" {
			set[c] = struct{}{}
		}
	}
	return set
}

func setToSlice(set map[status.Code]struct{}) []status.Code {
	codes := make([]status.Code, 0, len(set))
	for c := range set {
		codes = append(codes, c)
	}
	return codes
}

func validateClock(s string) error {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("workingHours", err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return errs.NewValueIsInvalidErrorWithCause("workingHours",
			fmt.Errorf("%s is not a valid HH:MM clock value", s))
	}
	return nil
}

func clockMinutes(s string) int {
	var h, m int
	_, _ = fmt.Sscanf(s, "%d:%d", &h, &m)
	return h*60 + m
}
