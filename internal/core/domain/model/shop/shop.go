// Package shop models the static catalog customers order from.
package shop

import (
	"errors"
	"fmt"
	"strings"

	"grameego/internal/pkg/errs"
	"grameego/internal/pkg/guard"
)

var ErrShopIsNotConstructed = errors.New("Shop must be created via NewShop constructor")

// Product is one catalog line of a shop.
type Product struct {
	ID    string
	Name  string
	Price float64
	Unit  string
}

// Shop is a catalog entry. It is immutable once built.
type Shop struct {
	id       string
	name     string
	address  string
	products []Product
	guard    guard.ConstructorGuard
}

func NewShop(id, name, address string, products []Product) (Shop, error) {
	s := Shop{
		id:      strings.TrimSpace(id),
		name:    strings.TrimSpace(name),
		address: strings.TrimSpace(address),
		guard:   guard.NewConstructorGuard(),
	}

	var errList []error
	if s.id == "" {
		errList = append(errList, errs.NewValueIsRequiredError("id"))
	}
	if s.name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if s.address == "" {
		errList = append(errList, errs.NewValueIsRequiredError("address"))
	}

	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"products", fmt.Errorf("duplicate product id %q in shop %q", p.ID, s.id)))
		}
		seen[p.ID] = struct{}{}
		if p.Price < 0 {
			errList = append(errList, errs.NewValueIsOutOfRangeError("price", p.Price, 0, "+Inf"))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return Shop{}, err
	}

	s.products = append([]Product(nil), products...)
	return s, nil
}

func (s Shop) ID() string      { return s.id }
func (s Shop) Name() string    { return s.name }
func (s Shop) Address() string { return s.address }

// Products returns a copy of the catalog lines.
func (s Shop) Products() []Product {
	return append([]Product(nil), s.products...)
}

func (s Shop) ProductsCount() int {
	return len(s.products)
}

func (s Shop) Validate() error {
	return s.guard.Validate(ErrShopIsNotConstructed)
}
