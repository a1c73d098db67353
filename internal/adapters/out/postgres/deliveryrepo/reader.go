package deliveryrepo

import (
	"context"

	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormDeliveryReader implements ports.DeliveryReader outside any unit of
// work.
type GormDeliveryReader struct {
	db *gorm.DB
}

func NewGormDeliveryReader(db *gorm.DB) *GormDeliveryReader {
	return &GormDeliveryReader{db: db}
}

func (r *GormDeliveryReader) ListByRequester(ctx context.Context, requesterID kernel.UUID) ([]*delivery.DeliveryRequest, error) {
	return r.find(ctx, "created_at DESC", "requester_id = ?", requesterID.Google())
}

func (r *GormDeliveryReader) ListPending(ctx context.Context) ([]*delivery.DeliveryRequest, error) {
	return r.find(ctx, "created_at DESC", "delivery_status = ?", int(delivery.Pending))
}

func (r *GormDeliveryReader) ListByDriver(ctx context.Context, driverID kernel.UUID) ([]*delivery.DeliveryRequest, error) {
	return r.find(ctx, "updated_at DESC", "assigned_driver_id = ?", driverID.Google())
}

func (r *GormDeliveryReader) ListByShop(ctx context.Context, shopID string) ([]*delivery.DeliveryRequest, error) {
	return r.find(ctx, "created_at DESC", "shop_id = ?", shopID)
}

type statusCount struct {
	DeliveryStatus int
	Total          int64
}

func (r *GormDeliveryReader) CountByStatus(ctx context.Context) (map[delivery.Status]int64, error) {
	var rows []statusCount
	if err := r.db.WithContext(ctx).
		Model(&DeliveryRequestDTO{}).
		Select("delivery_status, count(*) AS total").
		Group("delivery_status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[delivery.Status]int64, len(rows))
	for _, row := range rows {
		counts[delivery.Status(row.DeliveryStatus)] = row.Total
	}
	return counts, nil
}

func (r *GormDeliveryReader) find(
	ctx context.Context,
	order string,
	query string,
	args ...any,
) ([]*delivery.DeliveryRequest, error) {
	var dtos []DeliveryRequestDTO
	if err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where(query, args...).
		Order(order).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}
