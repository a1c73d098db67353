package ports

import (
	"context"

	"grameego/internal/core/domain/model/shop"
)

// ShopDirectory is the read-only shop catalog.
type ShopDirectory interface {
	List(ctx context.Context) ([]shop.Shop, error)

	// Get returns the shop or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id string) (shop.Shop, error)
}
