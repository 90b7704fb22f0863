// Package statusrepo provides data transfer objects and mapping functions for
// the status catalog.
package statusrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"

	"github.com/google/uuid"
)

// StatusDTO represents the database structure for persisting catalog entries.
type StatusDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code      string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Color     string    `gorm:"type:varchar(16)"`
	SortOrder int       `gorm:"not null"`
	System    bool      `gorm:"not null"`
}

// TableName specifies the database table name for status entities.
func (StatusDTO) TableName() string {
	return "statuses"
}

// fromDomain converts a status entity to its database representation.
func fromDomain(s *status.Status) StatusDTO {
	return StatusDTO{
		ID:        s.ID().Bytes(),
		Code:      string(s.Code()),
		Name:      s.Name(),
		Color:     s.Color(),
		SortOrder: s.SortOrder(),
		System:    s.IsSystem(),
	}
}

// toDomain converts a database DTO to a status entity.
func toDomain(dto StatusDTO) (*status.Status, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return status.RestoreStatus(id, status.Code(dto.Code), dto.Name, dto.Color, dto.SortOrder, dto.System)
}
