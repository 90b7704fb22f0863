package orderrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its items, history and version 1.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order. The write is guarded by the version the
// aggregate was loaded with: a concurrent writer bumping the version first
// makes this update hit zero rows, reported as errs.ErrVersionIsInvalid.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"deposit_amount":    dto.DepositAmount,
			"payment_status":    dto.PaymentStatus,
			"payment_confirmed": dto.PaymentConfirmed,
			"status_id":         dto.StatusID,
			"status_code":       dto.StatusCode,
			"version":           aggregate.Version() + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("order " + aggregate.ID().String())
	}

	for _, a := range dto.Assignments {
		assignment := a
		if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&assignment).Error; err != nil {
			return err
		}
	}

	// History is append-only: existing records are never rewritten.
	for _, h := range dto.History {
		record := h
		if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&record).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its items, assignments and history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetFree retrieves unassigned orders in the given statuses, oldest first.
// Zero time bounds disable the creation-time filter.
func (r *GormOrderRepository) GetFree(
	ctx context.Context,
	codes []status.Code,
	from, to time.Time,
) ([]*order.Order, error) {
	rawCodes := make([]string, 0, len(codes))
	for _, c := range codes {
		rawCodes = append(rawCodes, string(c))
	}

	query := r.preloaded(ctx).
		Where("status_code IN ?", rawCodes).
		Where("NOT EXISTS (SELECT 1 FROM assignments WHERE assignments.order_id = orders.id AND assignments.active)")

	if !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("created_at < ?", to)
	}

	var dtos []OrderDTO
	if err := query.Order("created_at, number, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetAssignedTo retrieves orders whose active assignment belongs to the
// employee, oldest first.
func (r *GormOrderRepository) GetAssignedTo(ctx context.Context, employeeID kernel.UUID) ([]*order.Order, error) {
	if err := employeeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.preloaded(ctx).
		Where(
			"EXISTS (SELECT 1 FROM assignments WHERE assignments.order_id = orders.id AND assignments.active AND assignments.employee_id = ?)",
			employeeID.Bytes(),
		).
		Order("created_at, number, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetAllWithActiveAssignment retrieves every currently assigned order.
func (r *GormOrderRepository) GetAllWithActiveAssignment(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.preloaded(ctx).
		Where("EXISTS (SELECT 1 FROM assignments WHERE assignments.order_id = orders.id AND assignments.active)").
		Order("created_at, number, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// CountByStatus returns how many orders currently hold the status code.
func (r *GormOrderRepository) CountByStatus(ctx context.Context, code status.Code) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("status_code = ?", string(code)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items").
		Preload("Assignments").
		Preload("History")
}

func (r *GormOrderRepository) toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
