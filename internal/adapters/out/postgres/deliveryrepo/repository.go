package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/domain/model/kernel"
	"grameego/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new request and its basket lines.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.DeliveryRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable columns of an existing request.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.DeliveryRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&DeliveryRequestDTO{}).
		Where("id = ?", aggregate.ID().Google()).
		Updates(mutableColumns(aggregate))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes the request and its basket lines.
func (r *GormDeliveryRepository) Delete(ctx context.Context, aggregate *delivery.DeliveryRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().Google()
	db := r.db.WithContext(ctx)

	if err := db.Where("delivery_id = ?", id).Delete(&DeliveryItemDTO{}).Error; err != nil {
		return err
	}

	result := db.Where("id = ?", id).Delete(&DeliveryRequestDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a request by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.DeliveryRequest, error) {
	return r.get(ctx, id, r.db.WithContext(ctx))
}

// GetForUpdate retrieves a request by ID with SELECT ... FOR UPDATE. Outside a
// transaction the lock is released as soon as the statement ends.
func (r *GormDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.DeliveryRequest, error) {
	return r.get(ctx, id, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}))
}

// Claim runs the conditional update
//
//	UPDATE delivery_requests SET delivery_status = Assigned, assigned_driver_id = $driver, updated_at = $at
//	WHERE id = $id AND delivery_status = Pending AND assigned_driver_id IS NULL
//	RETURNING *
//
// Postgres evaluates the WHERE clause against the row it locks for the
// update, so of any number of concurrent claims exactly one matches.
func (r *GormDeliveryRepository) Claim(
	ctx context.Context,
	id, driverID kernel.UUID,
	at time.Time,
) (*delivery.DeliveryRequest, error) {
	if err := errors.Join(id.Validate(), driverID.Validate()); err != nil {
		return nil, err
	}

	var claimed []DeliveryRequestDTO
	result := r.db.WithContext(ctx).
		Model(&claimed).
		Clauses(clause.Returning{}).
		Where("id = ? AND delivery_status = ? AND assigned_driver_id IS NULL", id.Google(), int(delivery.Pending)).
		Updates(map[string]any{
			"delivery_status":    int(delivery.Assigned),
			"assigned_driver_id": driverID.Google(),
			"updated_at":         at,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 || len(claimed) == 0 {
		return nil, errs.NewConflictError("this request has already been taken")
	}

	dto := claimed[0]
	if err := r.db.WithContext(ctx).
		Where("delivery_id = ?", dto.ID).
		Order("position").
		Find(&dto.Items).Error; err != nil {
		return nil, err
	}

	aggregate, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return aggregate, nil
}

func (r *GormDeliveryRepository) get(
	ctx context.Context,
	id kernel.UUID,
	db *gorm.DB,
) (*delivery.DeliveryRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryRequestDTO
	if err := db.Preload("Items", orderedItems).First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
