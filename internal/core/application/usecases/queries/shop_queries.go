package queries

import (
	"context"
	"errors"
	"strings"

	"grameego/internal/core/domain/model/shop"
	"grameego/internal/core/ports"
	"grameego/internal/pkg/errs"
	"grameego/internal/pkg/guard"
)

var ErrGetShopQueryIsNotConstructed = errors.New("GetShopQuery must be created via NewGetShopQuery constructor")

// ShopSummary is a directory line without the product list.
type ShopSummary struct {
	ID            string
	Name          string
	Address       string
	ProductsCount int
}

type ListShopsQueryHandler struct {
	directory ports.ShopDirectory
}

func NewListShopsQueryHandler(directory ports.ShopDirectory) ListShopsQueryHandler {
	return ListShopsQueryHandler{directory: directory}
}

func (h ListShopsQueryHandler) Handle(ctx context.Context) ([]ShopSummary, error) {
	shops, err := h.directory.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ShopSummary, 0, len(shops))
	for _, s := range shops {
		summaries = append(summaries, ShopSummary{
			ID:            s.ID(),
			Name:          s.Name(),
			Address:       s.Address(),
			ProductsCount: s.ProductsCount(),
		})
	}
	return summaries, nil
}

// GetShopQuery looks up one shop with its products.
type GetShopQuery struct {
	shopID string
	guard  guard.ConstructorGuard
}

func NewGetShopQuery(shopID string) (GetShopQuery, error) {
	id := strings.TrimSpace(shopID)
	if id == "" {
		return GetShopQuery{}, errs.NewValueIsRequiredError("shopId")
	}
	return GetShopQuery{shopID: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShopQuery) Validate() error {
	return q.guard.Validate(ErrGetShopQueryIsNotConstructed)
}

func (q GetShopQuery) ShopID() string { return q.shopID }

type GetShopQueryHandler struct {
	directory ports.ShopDirectory
}

func NewGetShopQueryHandler(directory ports.ShopDirectory) GetShopQueryHandler {
	return GetShopQueryHandler{directory: directory}
}

func (h GetShopQueryHandler) Handle(ctx context.Context, query GetShopQuery) (shop.Shop, error) {
	if err := query.Validate(); err != nil {
		return shop.Shop{}, err
	}
	return h.directory.Get(ctx, query.ShopID())
}
