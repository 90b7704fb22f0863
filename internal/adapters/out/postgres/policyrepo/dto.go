// Package policyrepo provides data transfer objects and mapping functions for
// the singleton retry policy.
package policyrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/policy"
	"fulfillment/internal/core/domain/model/status"
)

// singletonID pins the policy to a single row.
const singletonID = 1

// PolicyDTO represents the database structure for persisting the retry policy.
// The status code sets are stored as JSON arrays.
type PolicyDTO struct {
	ID                      int       `gorm:"primaryKey"`
	Enabled                 bool      `gorm:"not null"`
	MaxRetries              int       `gorm:"not null"`
	RetryIntervalMinutes    int       `gorm:"not null"`
	AutoMoveStatus          string    `gorm:"type:varchar(64);not null"`
	RetryStatuses           []string  `gorm:"serializer:json;type:jsonb;not null"`
	ConfirmationStatuses    []string  `gorm:"serializer:json;type:jsonb;not null"`
	WorkingHoursEnabled     bool      `gorm:"not null"`
	WorkingHoursStart       string    `gorm:"type:varchar(5)"`
	WorkingHoursEnd         string    `gorm:"type:varchar(5)"`
	NotifyEmployee          bool      `gorm:"not null"`
	NotifyAdmin             bool      `gorm:"not null"`
	AutoSendToShipping      bool      `gorm:"not null"`
	TriggerStatus           string    `gorm:"type:varchar(64)"`
	RequirePaymentConfirm   bool      `gorm:"not null"`
	PartialPaymentThreshold int       `gorm:"not null"`
	Version                 int64     `gorm:"not null"`
	UpdatedAt               time.Time `gorm:"not null"`
}

// TableName specifies the database table name for the retry policy.
func (PolicyDTO) TableName() string {
	return "retry_policies"
}

// fromDomain converts the policy aggregate to its database representation.
func fromDomain(p *policy.RetryPolicy) PolicyDTO {
	return PolicyDTO{
		ID:                      singletonID,
		Enabled:                 p.Enabled(),
		MaxRetries:              p.MaxRetries(),
		RetryIntervalMinutes:    int(p.RetryInterval() / time.Minute),
		AutoMoveStatus:          string(p.AutoMoveStatus()),
		RetryStatuses:           codesToStrings(p.RetryStatuses()),
		ConfirmationStatuses:    codesToStrings(p.ConfirmationStatuses()),
		WorkingHoursEnabled:     p.WorkingHours().Enabled,
		WorkingHoursStart:       p.WorkingHours().Start,
		WorkingHoursEnd:         p.WorkingHours().End,
		NotifyEmployee:          p.NotifyEmployee(),
		NotifyAdmin:             p.NotifyAdmin(),
		AutoSendToShipping:      p.Shipping().AutoSendToShipping,
		TriggerStatus:           string(p.Shipping().TriggerStatus),
		RequirePaymentConfirm:   p.Shipping().RequirePaymentConfirm,
		PartialPaymentThreshold: p.Shipping().PartialPaymentThreshold,
		Version:                 p.Version(),
	}
}

// toDomain converts a database DTO to the policy aggregate.
func toDomain(dto PolicyDTO) (*policy.RetryPolicy, error) {
	return policy.RestoreRetryPolicy(
		dto.Enabled,
		dto.MaxRetries,
		time.Duration(dto.RetryIntervalMinutes)*time.Minute,
		status.Code(dto.AutoMoveStatus),
		stringsToCodes(dto.RetryStatuses),
		stringsToCodes(dto.ConfirmationStatuses),
		policy.WorkingHours{
			Enabled: dto.WorkingHoursEnabled,
			Start:   dto.WorkingHoursStart,
			End:     dto.WorkingHoursEnd,
		},
		dto.NotifyEmployee,
		dto.NotifyAdmin,
		policy.ShippingAutomation{
			AutoSendToShipping:      dto.AutoSendToShipping,
			TriggerStatus:           status.Code(dto.TriggerStatus),
			RequirePaymentConfirm:   dto.RequirePaymentConfirm,
			PartialPaymentThreshold: dto.PartialPaymentThreshold,
		},
		dto.Version,
	)
}

func codesToStrings(codes []status.Code) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		out = append(out, string(c))
	}
	return out
}

func stringsToCodes(values []string) []status.Code {
	out := make([]status.Code, 0, len(values))
	for _, v := range values {
		out = append(out, status.Code(v))
	}
	return out
}
