// Package postgres provides the GORM implementation of the unit of work used
// by the delivery command handlers.
//
// A unit of work wraps one database transaction. Repositories obtained from it
// run inside that transaction and register every aggregate they write, so that
// the domain events those aggregates recorded are published once the commit
// has succeeded:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.DeliveryRepository().Update(ctx, request); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance belongs to a single goroutine.
package postgres

import (
	"context"

	"grameego/internal/adapters/out/outbox"
	"grameego/internal/adapters/out/postgres/deliveryrepo"
	"grameego/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool and one event publisher.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
}

// NewGormUnitOfWorkFactory creates a factory. publisher may be nil, in which
// case recorded events are dropped after commit.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, publisher: publisher}
}

// Create produces a fresh unit of work with its own transaction state and
// tracker.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		tracker:   outbox.NewTracker(),
		publisher: f.publisher,
	}
}

// GormUnitOfWork coordinates one database transaction and the aggregates
// written in it.
type GormUnitOfWork struct {
	db        *gorm.DB
	tx        *gorm.DB
	tracker   *outbox.Tracker
	publisher ports.EventPublisher
}

// Begin opens the transaction. Calling it again while a transaction is open
// is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit makes the changes durable and then publishes the events of every
// tracked aggregate. Publishing errors are logged, not returned.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.tracker.Reset()
		return err
	}

	uow.tracker.Flush(ctx, uow.publisher)
	return nil
}

// Rollback discards the transaction and the tracked aggregates. It returns
// gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.tracker.Reset()
	return err
}

// DeliveryRepository returns a repository bound to the open transaction, or
// to the pool when none is open.
func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return deliveryrepo.NewGormDeliveryRepository(db, uow.tracker)
}
