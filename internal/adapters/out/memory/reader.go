package memory

import (
	"context"

	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/domain/model/kernel"
)

// Reader implements ports.DeliveryReader over a Store.
type Reader struct {
	store *Store
}

func NewReader(store *Store) *Reader {
	return &Reader{store: store}
}

func (r *Reader) ListByRequester(_ context.Context, requesterID kernel.UUID) ([]*delivery.DeliveryRequest, error) {
	return restoreAll(r.store.filter(func(s delivery.Snapshot) bool {
		return s.RequesterID.IsEqual(requesterID)
	}, newestCreated))
}

func (r *Reader) ListPending(_ context.Context) ([]*delivery.DeliveryRequest, error) {
	return restoreAll(r.store.filter(func(s delivery.Snapshot) bool {
		return s.Status == delivery.Pending
	}, newestCreated))
}

func (r *Reader) ListByDriver(_ context.Context, driverID kernel.UUID) ([]*delivery.DeliveryRequest, error) {
	return restoreAll(r.store.filter(func(s delivery.Snapshot) bool {
		return s.DriverID != nil && s.DriverID.IsEqual(driverID)
	}, func(a, b delivery.Snapshot) bool {
		return a.UpdatedAt.After(b.UpdatedAt)
	}))
}

func (r *Reader) ListByShop(_ context.Context, shopID string) ([]*delivery.DeliveryRequest, error) {
	return restoreAll(r.store.filter(func(s delivery.Snapshot) bool {
		return shopID != "" && s.ShopID == shopID
	}, newestCreated))
}

func (r *Reader) CountByStatus(_ context.Context) (map[delivery.Status]int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[delivery.Status]int64)
	for _, s := range r.store.records {
		counts[s.Status]++
	}
	return counts, nil
}

func newestCreated(a, b delivery.Snapshot) bool {
	return a.CreatedAt.After(b.CreatedAt)
}

func restoreAll(snaps []delivery.Snapshot) ([]*delivery.DeliveryRequest, error) {
	list := make([]*delivery.DeliveryRequest, 0, len(snaps))
	for _, s := range snaps {
		d, err := delivery.RestoreDeliveryRequest(s)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, nil
}
