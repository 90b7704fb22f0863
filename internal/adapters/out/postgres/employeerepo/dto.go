// Package employeerepo provides data transfer objects and mapping functions
// for the confirmation-agent directory.
package employeerepo

import (
	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EmployeeDTO represents the database structure for persisting employees.
type EmployeeDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"type:varchar(255);not null"`
	Active bool      `gorm:"not null;index"`
}

// TableName specifies the database table name for employee entities.
func (EmployeeDTO) TableName() string {
	return "employees"
}

// fromDomain converts an employee domain aggregate to its database representation.
func fromDomain(e *employee.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:     e.ID().Bytes(),
		Name:   e.Name(),
		Active: e.IsActive(),
	}
}

// toDomain converts a database DTO to an employee domain aggregate.
func toDomain(dto EmployeeDTO) (*employee.Employee, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return employee.RestoreEmployee(id, dto.Name, dto.Active)
}
