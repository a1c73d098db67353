package http

import (
	"time"

	"grameego/internal/core/application/usecases/commands"
	"grameego/internal/core/application/usecases/queries"
	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/domain/model/shop"
)

// CreateDeliveryRequest is the body of POST /api/deliveries. Numeric fields
// are kept loose because clients send numbers, numeric strings and nulls.
type CreateDeliveryRequest struct {
	ItemDescription     string            `json:"itemDescription"`
	ContactNumber       string            `json:"contactNumber"`
	Village             string            `json:"village"`
	ShopID              *string           `json:"shopId"`
	ShopName            string            `json:"shopName"`
	ShopAddress         string            `json:"shopAddress"`
	EstimatedDistanceKm any               `json:"estimatedDistanceKm"`
	NeedByAt            *string           `json:"needByAt"`
	Items               []LineItemRequest `json:"items"`
	ProductTotal        any               `json:"productTotal"`
	DeliveryFee         any               `json:"deliveryFee"`
	GrandTotal          any               `json:"grandTotal"`
}

type LineItemRequest struct {
	ID    any `json:"id"`
	Name  any `json:"name"`
	Qty   any `json:"qty"`
	Price any `json:"price"`
}

func (r CreateDeliveryRequest) toInput() commands.CreateDeliveryInput {
	items := make([]commands.LineItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, commands.LineItemInput{ID: it.ID, Name: it.Name, Quantity: it.Qty, Price: it.Price})
	}

	return commands.CreateDeliveryInput{
		ItemDescription:     r.ItemDescription,
		ContactNumber:       r.ContactNumber,
		Village:             r.Village,
		ShopID:              deref(r.ShopID),
		ShopName:            r.ShopName,
		ShopAddress:         r.ShopAddress,
		EstimatedDistanceKm: r.EstimatedDistanceKm,
		NeedByAt:            deref(r.NeedByAt),
		Items:               items,
		ProductTotal:        r.ProductTotal,
		DeliveryFee:         r.DeliveryFee,
		GrandTotal:          r.GrandTotal,
	}
}

type StatusChangeRequest struct {
	NewStatus string `json:"newStatus"`
}

type ShopDecisionRequest struct {
	Action string `json:"action"`
	Note   any    `json:"note"`
}

type LineItemResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Qty   float64 `json:"qty"`
	Price float64 `json:"price"`
}

// DeliveryResponse is the full record with string enums.
type DeliveryResponse struct {
	ID                     string             `json:"id"`
	CreatedBy              string             `json:"createdBy"`
	ItemDescription        string             `json:"itemDescription"`
	ContactNumber          string             `json:"contactNumber"`
	Village                string             `json:"village"`
	ShopID                 *string            `json:"shopId"`
	ShopName               string             `json:"shopName"`
	ShopAddress            string             `json:"shopAddress"`
	EstimatedDistanceKm    *float64           `json:"estimatedDistanceKm"`
	Price                  float64            `json:"price"`
	NeedByAt               *time.Time         `json:"needByAt"`
	AssignedDriver         *string            `json:"assignedDriver"`
	DeliveryStatus         string             `json:"deliveryStatus"`
	ShopConfirmationStatus string             `json:"shopConfirmationStatus"`
	ShopConfirmationAt     *time.Time         `json:"shopConfirmationAt"`
	ShopNote               string             `json:"shopNote"`
	Items                  []LineItemResponse `json:"items"`
	ProductTotal           *float64           `json:"productTotal"`
	DeliveryFee            *float64           `json:"deliveryFee"`
	GrandTotal             *float64           `json:"grandTotal"`
	CreatedAt              time.Time          `json:"createdAt"`
	UpdatedAt              time.Time          `json:"updatedAt"`
}

func newDeliveryResponse(s delivery.Snapshot) DeliveryResponse {
	items := make([]LineItemResponse, 0, len(s.Basket.Items))
	for _, it := range s.Basket.Items {
		items = append(items, LineItemResponse{ID: it.ID, Name: it.Name, Qty: it.Quantity, Price: it.UnitPrice})
	}

	var shopID *string
	if s.ShopID != "" {
		id := s.ShopID
		shopID = &id
	}

	var driver *string
	if s.DriverID != nil {
		id := s.DriverID.String()
		driver = &id
	}

	return DeliveryResponse{
		ID:                     s.ID.String(),
		CreatedBy:              s.RequesterID.String(),
		ItemDescription:        s.ItemDescription,
		ContactNumber:          s.ContactNumber,
		Village:                s.Village,
		ShopID:                 shopID,
		ShopName:               s.ShopName,
		ShopAddress:            s.ShopAddress,
		EstimatedDistanceKm:    s.DistanceKm,
		Price:                  s.Price,
		NeedByAt:               s.NeedByAt,
		AssignedDriver:         driver,
		DeliveryStatus:         s.Status.String(),
		ShopConfirmationStatus: s.Confirmation.String(),
		ShopConfirmationAt:     s.ConfirmedAt,
		ShopNote:               s.ShopNote,
		Items:                  items,
		ProductTotal:           s.Basket.ProductTotal,
		DeliveryFee:            s.Basket.DeliveryFee,
		GrandTotal:             s.Basket.GrandTotal,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
	}
}

func newDeliveryList(snaps []delivery.Snapshot) []DeliveryResponse {
	list := make([]DeliveryResponse, 0, len(snaps))
	for _, s := range snaps {
		list = append(list, newDeliveryResponse(s))
	}
	return list
}

// DeliveryUpdateResponse wraps the record after status, unassign and
// confirm.
type DeliveryUpdateResponse struct {
	Message  string           `json:"message"`
	Delivery DeliveryResponse `json:"delivery"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ShopSummaryResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	ProductsCount int    `json:"productsCount"`
}

func newShopSummaries(list []queries.ShopSummary) []ShopSummaryResponse {
	out := make([]ShopSummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ShopSummaryResponse(s))
	}
	return out
}

type ProductResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Unit  string  `json:"unit,omitempty"`
}

type ShopResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Address  string            `json:"address"`
	Products []ProductResponse `json:"products"`
}

func newShopResponse(s shop.Shop) ShopResponse {
	products := make([]ProductResponse, 0, s.ProductsCount())
	for _, p := range s.Products() {
		products = append(products, ProductResponse(p))
	}
	return ShopResponse{ID: s.ID(), Name: s.Name(), Address: s.Address(), Products: products}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
