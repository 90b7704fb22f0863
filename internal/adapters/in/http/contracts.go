package http

import (
	"time"

	"github.com/google/uuid"
)

// Wire contracts for the fulfillment API. Amounts are in minor currency
// units; timestamps are RFC 3339.

// Error is the uniform error body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	// RemainingSeconds is set on lock conflicts (HTTP 423).
	RemainingSeconds int64 `json:"remainingSeconds,omitempty"`
}

// NewOrder is the order registration request.
type NewOrder struct {
	Number        string        `json:"number"`
	CustomerName  string        `json:"customerName"`
	CustomerPhone string        `json:"customerPhone"`
	Address       string        `json:"address"`
	DepositAmount int64         `json:"depositAmount"`
	Items         []NewLineItem `json:"items"`
}

// NewLineItem is one product position on an order registration request.
type NewLineItem struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
}

// TransitionRequest asks for a status change on an order.
type TransitionRequest struct {
	StatusID uuid.UUID `json:"statusId"`
	Notes    string    `json:"notes"`
	Actor    string    `json:"actor"`
	// EmployeeID identifies the acting agent; nil for admin/automation actors.
	EmployeeID *uuid.UUID `json:"employeeId,omitempty"`
}

// AcquireLockRequest claims an order for an employee.
type AcquireLockRequest struct {
	EmployeeID uuid.UUID `json:"employeeId"`
	// TTLMinutes overrides the configured default when positive.
	TTLMinutes int `json:"ttlMinutes,omitempty"`
}

// DecideRequest records an agent's decision on their queued order.
type DecideRequest struct {
	OrderID    uuid.UUID `json:"orderId"`
	EmployeeID uuid.UUID `json:"employeeId"`
	StatusID   uuid.UUID `json:"statusId"`
	Notes      string    `json:"notes"`
}

// DecideResponse reports the decision outcome.
type DecideResponse struct {
	RetryExhausted bool `json:"retryExhausted"`
}

// QueuedOrder is the order handed out by the work queue.
type QueuedOrder struct {
	ID            uuid.UUID  `json:"id"`
	Number        string     `json:"number"`
	CustomerName  string     `json:"customerName"`
	CustomerPhone string     `json:"customerPhone"`
	Address       string     `json:"address"`
	StatusCode    string     `json:"statusCode"`
	TotalAmount   int64      `json:"totalAmount"`
	DepositAmount int64      `json:"depositAmount"`
	RetriesUsed   int        `json:"retriesUsed"`
	MaxRetries    int        `json:"maxRetries"`
	LockedUntil   *time.Time `json:"lockedUntil,omitempty"`
}

// FreeOrder is one entry of the distributable pool.
type FreeOrder struct {
	ID           uuid.UUID `json:"id"`
	Number       string    `json:"number"`
	CustomerName string    `json:"customerName"`
	StatusCode   string    `json:"statusCode"`
	TotalAmount  int64     `json:"totalAmount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ManualDistributionRequest maps employees to order sets.
type ManualDistributionRequest struct {
	Blocks []ManualBlock `json:"blocks"`
}

// ManualBlock is one employee's share of a manual distribution.
type ManualBlock struct {
	EmployeeID uuid.UUID   `json:"employeeId"`
	OrderIDs   []uuid.UUID `json:"orderIds"`
}

// ManualBlockOutcome reports what one block actually assigned.
type ManualBlockOutcome struct {
	EmployeeID uuid.UUID   `json:"employeeId"`
	Assigned   []uuid.UUID `json:"assigned"`
	Stale      []uuid.UUID `json:"stale"`
}

// AutoDistributionRequest commits a previewed distribution.
type AutoDistributionRequest struct {
	StatusCodes        []string   `json:"statusCodes"`
	From               *time.Time `json:"from,omitempty"`
	To                 *time.Time `json:"to,omitempty"`
	OrderCount         int        `json:"orderCount"`
	EmployeeCount      int        `json:"employeeCount"`
	ExpectedOrderCount int        `json:"expectedOrderCount"`
}

// AutoDistributionResponse summarizes a committed distribution.
type AutoDistributionResponse struct {
	TotalAssigned          int `json:"totalAssigned"`
	EmployeesParticipating int `json:"employeesParticipating"`
}

// DistributionPreview is the dry-run plan.
type DistributionPreview struct {
	EffectiveOrderCount    int                 `json:"effectiveOrderCount"`
	EffectiveEmployeeCount int                 `json:"effectiveEmployeeCount"`
	Assignments            []PlannedAssignment `json:"assignments"`
}

// PlannedAssignment is one employee's planned share.
type PlannedAssignment struct {
	EmployeeID   uuid.UUID    `json:"employeeId"`
	EmployeeName string       `json:"employeeName"`
	Orders       []PlannedRef `json:"orders"`
}

// PlannedRef identifies one planned order.
type PlannedRef struct {
	ID     uuid.UUID `json:"id"`
	Number string    `json:"number"`
}

// Policy is the retry policy wire representation, both read and write.
type Policy struct {
	Enabled                 bool     `json:"enabled"`
	MaxRetries              int      `json:"maxRetries"`
	RetryIntervalMinutes    int      `json:"retryIntervalMinutes"`
	AutoMoveStatus          string   `json:"autoMoveStatus"`
	RetryStatuses           []string `json:"retryStatuses"`
	ConfirmationStatuses    []string `json:"confirmationStatuses"`
	WorkingHoursEnabled     bool     `json:"workingHoursEnabled"`
	WorkingHoursStart       string   `json:"workingHoursStart"`
	WorkingHoursEnd         string   `json:"workingHoursEnd"`
	NotifyEmployee          bool     `json:"notifyEmployee"`
	NotifyAdmin             bool     `json:"notifyAdmin"`
	AutoSendToShipping      bool     `json:"autoSendToShipping"`
	TriggerStatus           string   `json:"triggerStatus"`
	RequirePaymentConfirm   bool     `json:"requirePaymentConfirm"`
	PartialPaymentThreshold int      `json:"partialPaymentThreshold"`
	Version                 int64    `json:"version"`
}

// NewStatus is the custom status creation request.
type NewStatus struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	SortOrder int    `json:"sortOrder"`
}

// Status is one catalog entry.
type Status struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	SortOrder int       `json:"sortOrder"`
	System    bool      `json:"system"`
}

// HistoryRecord is one status change on an order's audit trail.
type HistoryRecord struct {
	ID        uuid.UUID `json:"id"`
	FromCode  string    `json:"fromCode,omitempty"`
	ToCode    string    `json:"toCode"`
	Notes     string    `json:"notes,omitempty"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"createdAt"`
}
