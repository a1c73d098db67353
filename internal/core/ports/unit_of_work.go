package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Events recorded on the
// aggregates it touched are published once Commit succeeds.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit commits the transaction, then publishes pending domain events.
	Commit(ctx context.Context) error

	// Rollback discards the transaction and its pending events. It returns an
	// error when no transaction is open, e.g. after Commit.
	Rollback(ctx context.Context) error

	// DeliveryRepository returns a repository bound to the current
	// transaction.
	DeliveryRepository() DeliveryRepository
}
