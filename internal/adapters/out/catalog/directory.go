// Package catalog serves the shop directory from a JSON document compiled
// into the binary.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"grameego/internal/core/domain/model/shop"
	"grameego/internal/pkg/errs"
)

//go:embed shops.json
var defaultShops []byte

type productDocument struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Unit  string  `json:"unit"`
}

type shopDocument struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Address  string            `json:"address"`
	Products []productDocument `json:"products"`
}

// Directory implements ports.ShopDirectory. It is read-only after
// construction and safe for concurrent use.
type Directory struct {
	shops []shop.Shop
	byID  map[string]int
}

// NewDefaultDirectory loads the embedded catalog.
func NewDefaultDirectory() (*Directory, error) {
	return NewDirectory(defaultShops)
}

// NewDirectory parses a catalog document.
func NewDirectory(document []byte) (*Directory, error) {
	var docs []shopDocument
	if err := json.Unmarshal(document, &docs); err != nil {
		return nil, fmt.Errorf("parse shop catalog: %w", err)
	}

	d := &Directory{
		shops: make([]shop.Shop, 0, len(docs)),
		byID:  make(map[string]int, len(docs)),
	}

	var errList []error
	for _, doc := range docs {
		products := make([]shop.Product, 0, len(doc.Products))
		for _, p := range doc.Products {
			products = append(products, shop.Product{ID: p.ID, Name: p.Name, Price: p.Price, Unit: p.Unit})
		}

		s, err := shop.NewShop(doc.ID, doc.Name, doc.Address, products)
		if err != nil {
			errList = append(errList, fmt.Errorf("shop %q: %w", doc.ID, err))
			continue
		}
		if _, dup := d.byID[s.ID()]; dup {
			errList = append(errList, fmt.Errorf("shop %q: %w", s.ID(),
				errs.NewValueIsInvalidErrorWithCause("id", errors.New("duplicate shop id"))))
			continue
		}

		d.byID[s.ID()] = len(d.shops)
		d.shops = append(d.shops, s)
	}

	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Directory) List(_ context.Context) ([]shop.Shop, error) {
	list := make([]shop.Shop, len(d.shops))
	copy(list, d.shops)
	return list, nil
}

func (d *Directory) Get(_ context.Context, id string) (shop.Shop, error) {
	i, ok := d.byID[id]
	if !ok {
		return shop.Shop{}, errs.NewObjectNotFoundError("shop", id)
	}
	return d.shops[i], nil
}
