// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The order aggregate spans four tables: the order row,
// its line items, its assignment history and its status history.
package orderrepo

import (
	"sort"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/status"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The version column backs optimistic concurrency control on updates.
type OrderDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number           string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	CustomerName     string          `gorm:"type:varchar(255)"`
	CustomerPhone    string          `gorm:"type:varchar(64)"`
	Address          string          `gorm:"type:text"`
	TotalAmount      int64           `gorm:"not null"`
	DepositAmount    int64           `gorm:"not null"`
	PaymentStatus    string          `gorm:"type:varchar(16);not null"`
	PaymentConfirmed bool            `gorm:"not null"`
	StatusID         uuid.UUID       `gorm:"type:uuid;not null"`
	StatusCode       string          `gorm:"type:varchar(64);not null;index"`
	Version          int64           `gorm:"not null"`
	CreatedAt        time.Time       `gorm:"not null;index"`
	Items            []ItemDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Assignments      []AssignmentDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History          []HistoryDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one line item row. Items are immutable after order
// creation, so updates never touch this table.
type ItemDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName string    `gorm:"type:varchar(255);not null"`
	Quantity    int       `gorm:"not null"`
	UnitPrice   int64     `gorm:"not null"`
}

// TableName specifies the database table name for line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// AssignmentDTO represents one assignment row, active or historical.
type AssignmentDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Active      bool       `gorm:"not null;index"`
	AssignedAt  time.Time  `gorm:"not null"`
	LockedUntil *time.Time `gorm:""`
	RetriesUsed int        `gorm:"not null"`
	MaxRetries  int        `gorm:"not null"`
}

// TableName specifies the database table name for assignments.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// HistoryDTO represents one append-only status change record.
type HistoryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	FromCode  string    `gorm:"type:varchar(64)"`
	ToCode    string    `gorm:"type:varchar(64);not null"`
	Notes     string    `gorm:"type:text"`
	Actor     string    `gorm:"type:varchar(64);not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for status history.
func (HistoryDTO) TableName() string {
	return "status_history"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	items := make([]ItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemDTO{
			OrderID:     orderID,
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
		})
	}

	assignments := make([]AssignmentDTO, 0, len(o.Assignments()))
	for _, a := range o.Assignments() {
		assignments = append(assignments, assignmentFromDomain(a))
	}

	history := make([]HistoryDTO, 0, len(o.History()))
	for _, h := range o.History() {
		history = append(history, HistoryDTO{
			ID:        h.ID().Bytes(),
			OrderID:   orderID,
			FromCode:  string(h.From()),
			ToCode:    string(h.To()),
			Notes:     h.Notes(),
			Actor:     h.Actor(),
			CreatedAt: h.CreatedAt(),
		})
	}

	return OrderDTO{
		ID:               orderID,
		Number:           o.Number(),
		CustomerName:     o.CustomerName(),
		CustomerPhone:    o.CustomerPhone(),
		Address:          o.Address(),
		TotalAmount:      o.TotalAmount(),
		DepositAmount:    o.DepositAmount(),
		PaymentStatus:    string(o.PaymentStatus()),
		PaymentConfirmed: o.PaymentConfirmed(),
		StatusID:         o.StatusID().Bytes(),
		StatusCode:       string(o.StatusCode()),
		Version:          o.Version(),
		CreatedAt:        o.CreatedAt(),
		Items:            items,
		Assignments:      assignments,
		History:          history,
	}
}

func assignmentFromDomain(a *order.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:          a.ID().Bytes(),
		OrderID:     a.OrderID().Bytes(),
		EmployeeID:  a.EmployeeID().Bytes(),
		Active:      a.IsActive(),
		AssignedAt:  a.AssignedAt(),
		LockedUntil: a.LockedUntil(),
		RetriesUsed: a.RetriesUsed(),
		MaxRetries:  a.MaxRetries(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including assignments and history using
// RestoreOrder. History is ordered oldest first regardless of load order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	statusID, err := kernel.UUIDFromBytes(dto.StatusID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := order.NewLineItem(itemDto.ProductName, itemDto.Quantity, itemDto.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	assignments := make([]*order.Assignment, 0, len(dto.Assignments))
	for _, aDto := range dto.Assignments {
		a, aErr := assignmentToDomain(aDto)
		if aErr != nil {
			return nil, aErr
		}
		assignments = append(assignments, a)
	}

	history := make([]*order.StatusHistory, 0, len(dto.History))
	for _, hDto := range dto.History {
		h, hErr := historyToDomain(hDto)
		if hErr != nil {
			return nil, hErr
		}
		history = append(history, h)
	}
	sort.Slice(history, func(i, j int) bool {
		return history[i].CreatedAt().Before(history[j].CreatedAt())
	})

	return order.RestoreOrder(
		id,
		dto.Number,
		dto.CustomerName,
		dto.CustomerPhone,
		dto.Address,
		items,
		dto.TotalAmount,
		dto.DepositAmount,
		order.PaymentStatus(dto.PaymentStatus),
		dto.PaymentConfirmed,
		statusID,
		status.Code(dto.StatusCode),
		dto.Version,
		dto.CreatedAt,
		assignments,
		history,
	)
}

func assignmentToDomain(dto AssignmentDTO) (*order.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	employeeID, err := kernel.UUIDFromBytes(dto.EmployeeID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreAssignment(
		id, orderID, employeeID,
		dto.Active,
		dto.AssignedAt,
		dto.LockedUntil,
		dto.RetriesUsed,
		dto.MaxRetries,
	)
}

func historyToDomain(dto HistoryDTO) (*order.StatusHistory, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreStatusHistory(
		id, orderID,
		status.Code(dto.FromCode),
		status.Code(dto.ToCode),
		dto.Notes,
		dto.Actor,
		dto.CreatedAt,
	)
}
