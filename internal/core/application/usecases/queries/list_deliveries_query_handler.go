package queries

import (
	"context"

	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/ports"
)

// ListDeliveriesQueryHandler reads listings through a ports.DeliveryReader.
type ListDeliveriesQueryHandler struct {
	reader ports.DeliveryReader
}

func NewListDeliveriesQueryHandler(reader ports.DeliveryReader) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{reader: reader}
}

// Handle returns the snapshots of the requests in scope; never nil.
func (h ListDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListDeliveriesQuery,
) ([]delivery.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		list []*delivery.DeliveryRequest
		err  error
	)

	actor := query.Actor()
	switch query.Scope() {
	case ScopeMine:
		list, err = h.reader.ListByRequester(ctx, actor.ID())
	case ScopeAvailable:
		list, err = h.reader.ListPending(ctx)
	case ScopeAssignedToMe:
		list, err = h.reader.ListByDriver(ctx, actor.ID())
	case ScopeShopOrders:
		list, err = h.reader.ListByShop(ctx, actor.ShopID())
	case UnknownScope:
	}
	if err != nil {
		return nil, err
	}

	snapshots := make([]delivery.Snapshot, 0, len(list))
	for _, d := range list {
		snapshots = append(snapshots, d.Snapshot())
	}
	return snapshots, nil
}
