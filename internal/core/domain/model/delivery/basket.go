package delivery

import "grameego/internal/pkg/normalize"

// LineItem is one line of the basket snapshot the customer saw at checkout.
type LineItem struct {
	ID        string
	Name      string
	Quantity  float64
	UnitPrice float64
}

// Basket is an optional snapshot taken at creation. Its totals are kept as
// supplied and never recomputed.
type Basket struct {
	Items        []LineItem
	ProductTotal *float64
	DeliveryFee  *float64
	GrandTotal   *float64
}

// NewLineItem builds a line from loosely typed input. Missing or
// non-numeric quantity and price become zero instead of failing.
func NewLineItem(id, name, quantity, unitPrice any) LineItem {
	return LineItem{
		ID:        normalize.Text(id),
		Name:      normalize.Text(name),
		Quantity:  normalize.NumberOrZero(quantity),
		UnitPrice: normalize.NumberOrZero(unitPrice),
	}
}

// IsEmpty reports whether no snapshot was supplied.
func (b Basket) IsEmpty() bool {
	return len(b.Items) == 0 && b.ProductTotal == nil && b.DeliveryFee == nil && b.GrandTotal == nil
}
