package delivery

import (
	"errors"
	"time"

	"grameego/internal/core/domain/model/kernel"
	"grameego/internal/pkg/errs"
	"grameego/internal/pkg/guard"
)

// Snapshot is the flat, exported state of a DeliveryRequest. Adapters use it
// to persist and render the aggregate without reaching into its fields.
type Snapshot struct {
	ID              kernel.UUID
	RequesterID     kernel.UUID
	ItemDescription string
	ContactNumber   string
	Village         string
	ShopID          string
	ShopName        string
	ShopAddress     string
	Basket          Basket
	DistanceKm      *float64
	Price           float64
	NeedByAt        *time.Time
	Status          Status
	DriverID        *kernel.UUID
	Confirmation    ConfirmationStatus
	ConfirmedAt     *time.Time
	ShopNote        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (d *DeliveryRequest) Snapshot() Snapshot {
	items := make([]LineItem, len(d.basket.Items))
	copy(items, d.basket.Items)

	var driverID *kernel.UUID
	if d.driverID != nil {
		id := *d.driverID
		driverID = &id
	}

	return Snapshot{
		ID:              d.id,
		RequesterID:     d.requesterID,
		ItemDescription: d.itemDescription,
		ContactNumber:   d.contactNumber,
		Village:         d.village,
		ShopID:          d.shop.ID(),
		ShopName:        d.shop.Name(),
		ShopAddress:     d.shop.Address(),
		Basket: Basket{
			Items:        items,
			ProductTotal: d.basket.ProductTotal,
			DeliveryFee:  d.basket.DeliveryFee,
			GrandTotal:   d.basket.GrandTotal,
		},
		DistanceKm:   d.distanceKm,
		Price:        d.price,
		NeedByAt:     d.needByAt,
		Status:       d.status,
		DriverID:     driverID,
		Confirmation: d.confirmation,
		ConfirmedAt:  d.confirmedAt,
		ShopNote:     d.shopNote,
		CreatedAt:    d.createdAt,
		UpdatedAt:    d.updatedAt,
	}
}

// RestoreDeliveryRequest rebuilds an aggregate from stored state. It rejects
// state that breaks the driver/status invariant, so a corrupted row never
// reaches the lifecycle rules.
func RestoreDeliveryRequest(s Snapshot) (*DeliveryRequest, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.RequesterID.Validate(),
		s.Status.Validate(),
		s.Confirmation.Validate(),
	); err != nil {
		return nil, err
	}
	if err := s.Status.ValidateCanHaveDriver(s.DriverID != nil); err != nil {
		return nil, err
	}
	if s.DriverID != nil {
		if err := s.DriverID.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("assignedDriver", err)
		}
	}

	items := make([]LineItem, len(s.Basket.Items))
	copy(items, s.Basket.Items)

	return &DeliveryRequest{
		id:              s.ID,
		requesterID:     s.RequesterID,
		itemDescription: s.ItemDescription,
		contactNumber:   s.ContactNumber,
		village:         s.Village,
		shop:            ShopRef{id: s.ShopID, name: s.ShopName, address: s.ShopAddress},
		basket: Basket{
			Items:        items,
			ProductTotal: s.Basket.ProductTotal,
			DeliveryFee:  s.Basket.DeliveryFee,
			GrandTotal:   s.Basket.GrandTotal,
		},
		distanceKm:   s.DistanceKm,
		price:        s.Price,
		needByAt:     s.NeedByAt,
		status:       s.Status,
		driverID:     s.DriverID,
		confirmation: s.Confirmation,
		confirmedAt:  s.ConfirmedAt,
		shopNote:     s.ShopNote,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}
