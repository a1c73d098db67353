// Package deliveryrepo persists delivery requests with GORM: one row per
// request in delivery_requests and one row per basket line in delivery_items.
package deliveryrepo

import (
	"sort"
	"time"

	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryRequestDTO is the delivery_requests row. Enums are stored as their
// integer values. The two composite indexes serve the available-jobs listing
// and the shop panel.
type DeliveryRequestDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index"`

	ItemDescription string `gorm:"not null"`
	ContactNumber   string `gorm:"not null"`
	Village         string `gorm:"not null"`

	ShopID      *string `gorm:"index:idx_delivery_shop_confirmation,priority:1"`
	ShopName    string  `gorm:"not null"`
	ShopAddress string  `gorm:"not null"`

	EstimatedDistanceKm *float64
	Price               float64 `gorm:"not null"`
	NeedByAt            *time.Time

	ProductTotal *float64
	DeliveryFee  *float64
	GrandTotal   *float64

	DeliveryStatus   int        `gorm:"not null;index:idx_delivery_status_driver,priority:1"`
	AssignedDriverID *uuid.UUID `gorm:"type:uuid;index:idx_delivery_status_driver,priority:2"`

	ShopConfirmationStatus int `gorm:"not null;index:idx_delivery_shop_confirmation,priority:2"`
	ShopConfirmationAt     *time.Time
	ShopNote               string `gorm:"type:varchar(300);not null;default:''"`

	CreatedAt time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`

	Items []DeliveryItemDTO `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}

func (DeliveryRequestDTO) TableName() string {
	return "delivery_requests"
}

// DeliveryItemDTO is one basket line. Position keeps the client's order.
type DeliveryItemDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position   int       `gorm:"not null"`
	ProductID  string
	Name       string
	Quantity   float64
	UnitPrice  float64
}

func (DeliveryItemDTO) TableName() string {
	return "delivery_items"
}

func fromDomain(aggregate *delivery.DeliveryRequest) DeliveryRequestDTO {
	s := aggregate.Snapshot()

	var shopID *string
	if s.ShopID != "" {
		id := s.ShopID
		shopID = &id
	}

	items := make([]DeliveryItemDTO, 0, len(s.Basket.Items))
	for i, it := range s.Basket.Items {
		items = append(items, DeliveryItemDTO{
			ID:         uuid.New(),
			DeliveryID: s.ID.Google(),
			Position:   i,
			ProductID:  it.ID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
		})
	}

	return DeliveryRequestDTO{
		ID:                     s.ID.Google(),
		RequesterID:            s.RequesterID.Google(),
		ItemDescription:        s.ItemDescription,
		ContactNumber:          s.ContactNumber,
		Village:                s.Village,
		ShopID:                 shopID,
		ShopName:               s.ShopName,
		ShopAddress:            s.ShopAddress,
		EstimatedDistanceKm:    s.DistanceKm,
		Price:                  s.Price,
		NeedByAt:               s.NeedByAt,
		ProductTotal:           s.Basket.ProductTotal,
		DeliveryFee:            s.Basket.DeliveryFee,
		GrandTotal:             s.Basket.GrandTotal,
		DeliveryStatus:         int(s.Status),
		AssignedDriverID:       googleOrNil(s.DriverID),
		ShopConfirmationStatus: int(s.Confirmation),
		ShopConfirmationAt:     s.ConfirmedAt,
		ShopNote:               s.ShopNote,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
		Items:                  items,
	}
}

// mutableColumns is what Update writes. A map is used so that a cleared
// driver is written as NULL.
func mutableColumns(aggregate *delivery.DeliveryRequest) map[string]any {
	s := aggregate.Snapshot()
	return map[string]any{
		"delivery_status":          int(s.Status),
		"assigned_driver_id":       googleOrNil(s.DriverID),
		"shop_confirmation_status": int(s.Confirmation),
		"shop_confirmation_at":     s.ConfirmedAt,
		"shop_note":                s.ShopNote,
		"updated_at":               s.UpdatedAt,
	}
}

func toDomain(dto DeliveryRequestDTO) (*delivery.DeliveryRequest, error) {
	sort.SliceStable(dto.Items, func(i, j int) bool {
		return dto.Items[i].Position < dto.Items[j].Position
	})

	items := make([]delivery.LineItem, 0, len(dto.Items))
	for _, it := range dto.Items {
		items = append(items, delivery.LineItem{
			ID:        it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	var driverID *kernel.UUID
	if dto.AssignedDriverID != nil {
		id := kernel.UUIDFromGoogle(*dto.AssignedDriverID)
		driverID = &id
	}

	var shopID string
	if dto.ShopID != nil {
		shopID = *dto.ShopID
	}

	return delivery.RestoreDeliveryRequest(delivery.Snapshot{
		ID:              kernel.UUIDFromGoogle(dto.ID),
		RequesterID:     kernel.UUIDFromGoogle(dto.RequesterID),
		ItemDescription: dto.ItemDescription,
		ContactNumber:   dto.ContactNumber,
		Village:         dto.Village,
		ShopID:          shopID,
		ShopName:        dto.ShopName,
		ShopAddress:     dto.ShopAddress,
		Basket: delivery.Basket{
			Items:        items,
			ProductTotal: dto.ProductTotal,
			DeliveryFee:  dto.DeliveryFee,
			GrandTotal:   dto.GrandTotal,
		},
		DistanceKm:   dto.EstimatedDistanceKm,
		Price:        dto.Price,
		NeedByAt:     dto.NeedByAt,
		Status:       delivery.Status(dto.DeliveryStatus),
		DriverID:     driverID,
		Confirmation: delivery.ConfirmationStatus(dto.ShopConfirmationStatus),
		ConfirmedAt:  dto.ShopConfirmationAt,
		ShopNote:     dto.ShopNote,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
	})
}

func toDomainList(dtos []DeliveryRequestDTO) ([]*delivery.DeliveryRequest, error) {
	list := make([]*delivery.DeliveryRequest, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, nil
}

func googleOrNil(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Google()
	return &raw
}
