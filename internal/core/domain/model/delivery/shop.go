package delivery

import (
	"errors"
	"strings"

	"grameego/internal/pkg/errs"
)

// ShopRef is the display data of the shop a request targets plus the
// optional logical shop id used to route it to a shop account.
type ShopRef struct {
	id      string
	name    string
	address string
}

func NewShopRef(id, name, address string) (ShopRef, error) {
	ref := ShopRef{
		id:      strings.TrimSpace(id),
		name:    strings.TrimSpace(name),
		address: strings.TrimSpace(address),
	}

	var errList []error
	if ref.name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("shopName"))
	}
	if ref.address == "" {
		errList = append(errList, errs.NewValueIsRequiredError("shopAddress"))
	}
	if err := errors.Join(errList...); err != nil {
		return ShopRef{}, err
	}
	return ref, nil
}

func (s ShopRef) ID() string      { return s.id }
func (s ShopRef) Name() string    { return s.name }
func (s ShopRef) Address() string { return s.address }

// BelongsTo reports whether the request is routed to shopID. A request
// without a shop id belongs to no shop account.
func (s ShopRef) BelongsTo(shopID string) bool {
	return s.id != "" && s.id == shopID
}
