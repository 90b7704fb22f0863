package status

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for status operations.
var (
	// ErrCodeIsRequired is returned when a status is created without a code.
	ErrCodeIsRequired = errs.NewValueIsRequiredError("code")
	// ErrNameIsRequired is returned when a status is created without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrStatusIsNotConstructed is returned when using an improperly initialized Status.
	ErrStatusIsNotConstructed = errors.New("Status must be created via NewCustomStatus or RestoreStatus")
	// ErrSystemCodeIsReserved is returned when a custom status reuses a system code.
	ErrSystemCodeIsReserved = errors.New("system status codes are reserved")
)

// Code is the stable key of a status. System codes are fixed by the platform;
// custom codes are tenant-defined and must not collide with system ones.
type Code string

// System status vocabulary. These codes and their transition edges are fixed
// by the platform and cannot be edited or deleted by tenants.
const (
	New         Code = "new"
	UnderReview Code = "under_review"
	Confirmed   Code = "confirmed"
	Postponed   Code = "postponed"
	NoAnswer    Code = "no_answer"
	WrongNumber Code = "wrong_number"
	OutOfArea   Code = "out_of_area"
	Duplicate   Code = "duplicate"
	Preparing   Code = "preparing"
	Ready       Code = "ready"
	Shipped     Code = "shipped"
	Delivered   Code = "delivered"
	Cancelled   Code = "cancelled"
	Returned    Code = "returned"
)

// String returns the code as a plain string.
func (c Code) String() string {
	return string(c)
}

// IsSystem reports whether the code belongs to the platform-fixed vocabulary.
func (c Code) IsSystem() bool {
	_, ok := systemEdges()[c]
	return ok
}

// IsTerminal reports whether the code is a system terminal status.
// Terminal statuses have no outgoing edges; once reached, an order's status
// can never change again.
func (c Code) IsTerminal() bool {
	edges, ok := systemEdges()[c]
	return ok && len(edges) == 0
}

// Validate checks that the code is non-empty.
func (c Code) Validate() error {
	if c == "" {
		return ErrCodeIsRequired
	}
	return nil
}

// Status is a named state an order can occupy. System statuses are seeded by
// the platform with fixed codes; custom statuses are created by tenant admins
// and may be edited or deleted while no order holds them.
//
// Status is an entity identified by its UUID; the code is the stable key used
// by the transition graph and by policy configuration.
type Status struct {
	id        kernel.UUID
	code      Code
	name      string
	color     string
	sortOrder int
	system    bool
	guard     guard.ConstructorGuard
}

// NewCustomStatus creates a tenant-defined status. The code must be non-empty
// and must not reuse a system code.
func NewCustomStatus(id kernel.UUID, code Code, name, color string, sortOrder int) (*Status, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := code.Validate(); err != nil {
		return nil, err
	}
	if code.IsSystem() {
		return nil, fmt.Errorf("%w: %s", ErrSystemCodeIsReserved, code)
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}

	return &Status{
		id:        id,
		code:      code,
		name:      name,
		color:     color,
		sortOrder: sortOrder,
		system:    false,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreStatus reconstructs a status from persistence. Unlike NewCustomStatus
// it accepts system statuses, since those rows are seeded by the platform.
func RestoreStatus(id kernel.UUID, code Code, name, color string, sortOrder int, system bool) (*Status, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := code.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}
	if system != code.IsSystem() {
		return nil, errs.NewValueIsInvalidErrorWithCause("system",
			fmt.Errorf("flag does not match code %q", code))
	}

	return &Status{
		id:        id,
		code:      code,
		name:      name,
		color:     color,
		sortOrder: sortOrder,
		system:    system,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the status was created through a constructor.
func (s *Status) Validate() error {
	if s == nil {
		return ErrStatusIsNotConstructed
	}
	return s.guard.Validate(ErrStatusIsNotConstructed)
}

// ID returns the status identifier.
func (s *Status) ID() kernel.UUID {
	return s.id
}

// Code returns the stable status key.
func (s *Status) Code() Code {
	return s.code
}

// Name returns the display name.
func (s *Status) Name() string {
	return s.name
}

// Color returns the display color.
func (s *Status) Color() string {
	return s.color
}

// SortOrder returns the display ordering weight.
func (s *Status) SortOrder() int {
	return s.sortOrder
}

// IsSystem reports whether the status is platform-fixed.
func (s *Status) IsSystem() bool {
	return s.system
}

// SeedDefinition describes one system status for initial seeding.
type SeedDefinition struct {
	Code      Code
	Name      string
	Color     string
	SortOrder int
}

// SystemSeed returns the platform status vocabulary in display order.
// Adapters use it to seed the status store on startup.
func SystemSeed() []SeedDefinition {
	return []SeedDefinition{
		{New, "New", "#2d9cdb", 10},
		{UnderReview, "Under review", "#f2c94c", 20},
		{Confirmed, "Confirmed", "#27ae60", 30},
		{Postponed, "Postponed", "#f2994a", 40},
		{NoAnswer, "No answer", "#bb6bd9", 50},
		{WrongNumber, "Wrong number", "#eb5757", 60},
		{OutOfArea, "Out of area", "#eb5757", 70},
		{Duplicate, "Duplicate", "#828282", 80},
		{Preparing, "Preparing", "#56ccf2", 90},
		{Ready, "Ready", "#6fcf97", 100},
		{Shipped, "Shipped", "#2f80ed", 110},
		{Delivered, "Delivered", "#219653", 120},
		{Cancelled, "Cancelled", "#4f4f4f", 130},
		{Returned, "Returned", "#9b51e0", 140},
	}
}
