package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/guard"
)

// ErrHistoryIsNotConstructed is returned when using an improperly
// initialized StatusHistory record.
var ErrHistoryIsNotConstructed = errors.New(
	"StatusHistory must be created via NewStatusHistory or RestoreStatusHistory",
)

// StatusHistory is an immutable append-only record of one status change.
// Records are never mutated or deleted; the full sequence reconstructs the
// order's status timeline.
type StatusHistory struct {
	id        kernel.UUID
	orderID   kernel.UUID
	from      status.Code
	to        status.Code
	notes     string
	actor     string
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewStatusHistory creates a history record for a transition.
// from is empty for the initial record written at order creation.
func NewStatusHistory(
	id, orderID kernel.UUID,
	from, to status.Code,
	notes, actor string,
	createdAt time.Time,
) (*StatusHistory, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), to.Validate()); err != nil {
		return nil, err
	}

	return &StatusHistory{
		id:        id,
		orderID:   orderID,
		from:      from,
		to:        to,
		notes:     notes,
		actor:     actor,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreStatusHistory reconstructs a history record from persistence.
func RestoreStatusHistory(
	id, orderID kernel.UUID,
	from, to status.Code,
	notes, actor string,
	createdAt time.Time,
) (*StatusHistory, error) {
	return NewStatusHistory(id, orderID, from, to, notes, actor, createdAt)
}

// Validate ensures the record was created through a constructor.
func (h *StatusHistory) Validate() error {
	if h == nil {
		return ErrHistoryIsNotConstructed
	}
	return h.guard.Validate(ErrHistoryIsNotConstructed)
}

// ID returns the record identifier.
func (h *StatusHistory) ID() kernel.UUID {
	return h.id
}

// OrderID returns the order the record belongs to.
func (h *StatusHistory) OrderID() kernel.UUID {
	return h.orderID
}

// From returns the previous status code (empty for the initial record).
func (h *StatusHistory) From() status.Code {
	return h.from
}

// To returns the new status code.
func (h *StatusHistory) To() status.Code {
	return h.to
}

// Notes returns the free-text note attached to the change.
func (h *StatusHistory) Notes() string {
	return h.notes
}

// Actor returns who applied the change (employee id, "admin" or "automation").
func (h *StatusHistory) Actor() string {
	return h.actor
}

// CreatedAt returns when the change was recorded.
func (h *StatusHistory) CreatedAt() time.Time {
	return h.createdAt
}
