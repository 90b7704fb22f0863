package policyrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/policy"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPolicyRepository implements PolicyRepository using GORM. The policy is
// a single row; Save upserts it.
type GormPolicyRepository struct {
	db *gorm.DB
}

// NewGormPolicyRepository creates a new GORM policy repository.
func NewGormPolicyRepository(db *gorm.DB) *GormPolicyRepository {
	return &GormPolicyRepository{db: db}
}

// Get retrieves the current policy.
func (r *GormPolicyRepository) Get(ctx context.Context) (*policy.RetryPolicy, error) {
	var dto PolicyDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", singletonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("retry policy", "singleton")
		}
		return nil, err
	}

	return toDomain(dto)
}

// Save persists the policy, overwriting the singleton row.
func (r *GormPolicyRepository) Save(ctx context.Context, aggregate *policy.RetryPolicy) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&dto).Error
}
