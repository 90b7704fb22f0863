package postgres

import (
	"context"
	"errors"

	"fulfillment/internal/adapters/out/postgres/employeerepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/policyrepo"
	"fulfillment/internal/adapters/out/postgres/statusrepo"
	"fulfillment/internal/core/domain/model/policy"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// Migrate creates or updates the database schema for every aggregate.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&statusrepo.StatusDTO{},
		&employeerepo.EmployeeDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.AssignmentDTO{},
		&orderrepo.HistoryDTO{},
		&policyrepo.PolicyDTO{},
	)
}

// SeedDefaults inserts the system status vocabulary and, when the singleton
// policy row is missing, the default retry policy. Idempotent.
func SeedDefaults(ctx context.Context, db *gorm.DB) error {
	if err := statusrepo.SeedSystemStatuses(ctx, db); err != nil {
		return err
	}

	policyRepo := policyrepo.NewGormPolicyRepository(db)
	_, err := policyRepo.Get(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	return policyRepo.Save(ctx, policy.Default())
}
