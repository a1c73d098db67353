// Package ports defines the contracts between the lifecycle core and its
// adapters: the record store, the event sink and the shop directory.
package ports

import (
	"context"
	"time"

	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/domain/model/kernel"
)

// DeliveryRepository is the transactional record store for delivery
// requests. Implementations bound to a unit of work run every call inside the
// unit's transaction.
type DeliveryRepository interface {
	// Add persists a new request together with its basket lines.
	Add(ctx context.Context, aggregate *delivery.DeliveryRequest) error

	// Update writes the mutable part of the request (status, driver,
	// confirmation, note, timestamps).
	Update(ctx context.Context, aggregate *delivery.DeliveryRequest) error

	// Delete removes the request permanently.
	Delete(ctx context.Context, aggregate *delivery.DeliveryRequest) error

	// Get returns the request or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*delivery.DeliveryRequest, error)

	// GetForUpdate is Get holding a row lock until the transaction ends, so
	// the caller's read-validate-write sequence can't interleave with another
	// writer.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.DeliveryRequest, error)

	// Claim assigns the request to driverID in one conditional update that
	// only matches while the request is Pending with no driver. It returns the
	// updated request, or an errs.ConflictError when nothing matched because
	// another driver won, or the request is gone.
	Claim(ctx context.Context, id, driverID kernel.UUID, at time.Time) (*delivery.DeliveryRequest, error)
}

// DeliveryReader serves the listings. Results are never nil.
type DeliveryReader interface {
	// ListByRequester returns the customer's requests, newest first.
	ListByRequester(ctx context.Context, requesterID kernel.UUID) ([]*delivery.DeliveryRequest, error)

	// ListPending returns every Pending request regardless of shop
	// confirmation, newest first.
	ListPending(ctx context.Context) ([]*delivery.DeliveryRequest, error)

	// ListByDriver returns the driver's requests, most recently updated first.
	ListByDriver(ctx context.Context, driverID kernel.UUID) ([]*delivery.DeliveryRequest, error)

	// ListByShop returns the requests routed to shopID, newest first.
	ListByShop(ctx context.Context, shopID string) ([]*delivery.DeliveryRequest, error)

	// CountByStatus returns the number of requests per delivery status.
	CountByStatus(ctx context.Context) (map[delivery.Status]int64, error)
}
