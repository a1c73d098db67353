package memory

import (
	"context"
	"errors"
	"time"

	"grameego/internal/adapters/out/outbox"
	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/domain/model/kernel"
	"grameego/internal/core/ports"
	"grameego/internal/pkg/errs"
)

// ErrNoTransaction is returned by Commit and Rollback outside Begin.
var ErrNoTransaction = errors.New("memory: no open transaction")

type writeKind int

const (
	writeAdd writeKind = iota
	writeUpdate
	writeDelete
)

type write struct {
	kind     writeKind
	snapshot delivery.Snapshot
	readAt   time.Time
}

type claimRecord struct {
	before  delivery.Snapshot
	claimed delivery.Snapshot
}

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store     *Store
	publisher ports.EventPublisher
}

func NewUnitOfWorkFactory(store *Store, publisher ports.EventPublisher) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store, publisher: publisher}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{
		store:     f.store,
		publisher: f.publisher,
		tracker:   outbox.NewTracker(),
	}
}

// UnitOfWork stages Add, Update and Delete until Commit. Claim goes to the
// store immediately, as it would in a database, and is reverted on Rollback.
type UnitOfWork struct {
	store     *Store
	publisher ports.EventPublisher
	tracker   *outbox.Tracker

	open   bool
	reads  map[string]time.Time
	writes []write
	claims []claimRecord
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.open {
		return nil
	}
	uow.open = true
	uow.reads = make(map[string]time.Time)
	return nil
}

func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if !uow.open {
		return ErrNoTransaction
	}

	err := uow.store.apply(uow.writes)
	if err != nil {
		uow.revert()
	}
	uow.reset()
	if err != nil {
		uow.tracker.Reset()
		return err
	}

	uow.tracker.Flush(ctx, uow.publisher)
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.open {
		return ErrNoTransaction
	}
	uow.revert()
	uow.reset()
	uow.tracker.Reset()
	return nil
}

func (uow *UnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return &repository{uow: uow}
}

func (uow *UnitOfWork) revert() {
	for i := len(uow.claims) - 1; i >= 0; i-- {
		uow.store.revertClaim(uow.claims[i].before, uow.claims[i].claimed)
	}
}

func (uow *UnitOfWork) reset() {
	uow.open = false
	uow.reads = nil
	uow.writes = nil
	uow.claims = nil
}

// stage records a write, or applies it at once when no transaction is open.
func (uow *UnitOfWork) stage(w write) error {
	if !uow.open {
		return uow.store.apply([]write{w})
	}
	uow.writes = append(uow.writes, w)
	return nil
}

// staged returns the latest uncommitted state of id, if any.
func (uow *UnitOfWork) staged(id kernel.UUID) (delivery.Snapshot, bool, bool) {
	for i := len(uow.writes) - 1; i >= 0; i-- {
		w := uow.writes[i]
		if w.snapshot.ID.IsEqual(id) {
			return clone(w.snapshot), w.kind == writeDelete, true
		}
	}
	return delivery.Snapshot{}, false, false
}

type repository struct {
	uow *UnitOfWork
}

func (r *repository) Add(_ context.Context, aggregate *delivery.DeliveryRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.uow.stage(write{kind: writeAdd, snapshot: aggregate.Snapshot()}); err != nil {
		return err
	}
	r.uow.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *repository) Update(_ context.Context, aggregate *delivery.DeliveryRequest) error {
	return r.modify(writeUpdate, aggregate)
}

func (r *repository) Delete(_ context.Context, aggregate *delivery.DeliveryRequest) error {
	return r.modify(writeDelete, aggregate)
}

func (r *repository) Get(_ context.Context, id kernel.UUID) (*delivery.DeliveryRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if snap, deleted, ok := r.uow.staged(id); ok {
		if deleted {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return delivery.RestoreDeliveryRequest(snap)
	}

	snap, ok := r.uow.store.load(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery", id.String())
	}
	if r.uow.reads != nil {
		r.uow.reads[id.String()] = snap.UpdatedAt
	}
	return delivery.RestoreDeliveryRequest(snap)
}

// GetForUpdate is Get; the write is checked against the version read here
// when the unit of work commits.
func (r *repository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.DeliveryRequest, error) {
	return r.Get(ctx, id)
}

func (r *repository) Claim(_ context.Context, id, driverID kernel.UUID, at time.Time) (*delivery.DeliveryRequest, error) {
	if err := errors.Join(id.Validate(), driverID.Validate()); err != nil {
		return nil, err
	}

	driver, err := kernel.NewActor(driverID, kernel.Driver, "", "")
	if err != nil {
		return nil, err
	}

	before, claimed, err := r.uow.store.claim(id, driver, at)
	if err != nil {
		return nil, err
	}
	if r.uow.open {
		r.uow.claims = append(r.uow.claims, claimRecord{before: before, claimed: claimed})
		r.uow.reads[id.String()] = claimed.UpdatedAt
	}

	aggregate, err := delivery.RestoreDeliveryRequest(claimed)
	if err != nil {
		return nil, err
	}
	r.uow.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return aggregate, nil
}

func (r *repository) modify(kind writeKind, aggregate *delivery.DeliveryRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	snap := aggregate.Snapshot()
	readAt, ok := r.readVersion(aggregate.ID())
	if !ok {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	}

	if err := r.uow.stage(write{kind: kind, snapshot: snap, readAt: readAt}); err != nil {
		return err
	}
	r.uow.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// readVersion is the UpdatedAt the write must find in the store at commit.
func (r *repository) readVersion(id kernel.UUID) (time.Time, bool) {
	if r.uow.reads != nil {
		if at, ok := r.uow.reads[id.String()]; ok {
			return at, true
		}
	}
	snap, ok := r.uow.store.load(id)
	if !ok {
		return time.Time{}, false
	}
	return snap.UpdatedAt, true
}
