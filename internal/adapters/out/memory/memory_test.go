package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"grameego/internal/adapters/out/memory"
	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/domain/model/kernel"
	"grameego/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []delivery.Event
}

func (p *recordingPublisher) Publish(_ context.Context, events ...delivery.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func newActor(t *testing.T, role kernel.Role, shopID string) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), role, role.String(), shopID)
	require.NoError(t, err)
	return actor
}

func newRequest(t *testing.T, customer kernel.Actor, shopID string, createdAt time.Time) *delivery.DeliveryRequest {
	t.Helper()
	shop, err := delivery.NewShopRef(shopID, "Karim Store", "Bazar Road")
	require.NoError(t, err)
	d, err := delivery.NewDeliveryRequest(kernel.NewUUID(), customer, delivery.Details{
		ItemDescription: "Rice",
		ContactNumber:   "01700000000",
		Village:         "Charpara",
		Shop:            shop,
		Basket:          delivery.Basket{Items: []delivery.LineItem{delivery.NewLineItem("p-1", "Rice", 2, 55)}},
	}, 4, createdAt)
	require.NoError(t, err)
	return d
}

func seed(t *testing.T, factory *memory.UnitOfWorkFactory, requests ...*delivery.DeliveryRequest) {
	t.Helper()
	ctx := context.Background()
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	for _, r := range requests {
		require.NoError(t, uow.DeliveryRepository().Add(ctx, r))
	}
	require.NoError(t, uow.Commit(ctx))
}

func TestUnitOfWork_CommitAppliesAndPublishes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	publisher := &recordingPublisher{}
	factory := memory.NewUnitOfWorkFactory(store, publisher)
	request := newRequest(t, newActor(t, kernel.Customer, ""), "shop-1", fixedNow)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.DeliveryRepository().Add(ctx, request))
	assert.Zero(t, store.Len(), "staged until commit")

	require.NoError(t, uow.Commit(ctx))

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, publisher.count())
	assert.ErrorIs(t, uow.Rollback(ctx), memory.ErrNoTransaction)

	loaded, err := factory.Create().DeliveryRepository().Get(ctx, request.ID())
	require.NoError(t, err)
	assert.Equal(t, request.Snapshot(), loaded.Snapshot())
}

func TestUnitOfWork_RollbackDiscards(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	publisher := &recordingPublisher{}
	factory := memory.NewUnitOfWorkFactory(store, publisher)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.DeliveryRepository().Add(ctx, newRequest(t, newActor(t, kernel.Customer, ""), "shop-1", fixedNow)))
	require.NoError(t, uow.Rollback(ctx))

	assert.Zero(t, store.Len())
	assert.Zero(t, publisher.count())
}

func TestUnitOfWork_RollbackRevertsClaim(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore(), nil)
	request := newRequest(t, newActor(t, kernel.Customer, ""), "shop-1", fixedNow)
	seed(t, factory, request)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	_, err := uow.DeliveryRepository().Claim(ctx, request.ID(), kernel.NewUUID(), fixedNow.Add(time.Minute))
	require.NoError(t, err)
	require.NoError(t, uow.Rollback(ctx))

	stored, err := factory.Create().DeliveryRepository().Get(ctx, request.ID())
	require.NoError(t, err)
	assert.Equal(t, delivery.Pending, stored.Status())
	assert.Nil(t, stored.Driver())
}

func TestUnitOfWork_ConcurrentClaimsExactlyOneWins(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore(), nil)
	request := newRequest(t, newActor(t, kernel.Customer, ""), "shop-1", fixedNow)
	seed(t, factory, request)

	const drivers = 64
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		winners   []kernel.UUID
		conflicts int
	)
	start := make(chan struct{})

	for range drivers {
		driver := newActor(t, kernel.Driver, "")
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			uow := factory.Create()
			if err := uow.Begin(ctx); err != nil {
				t.Error(err)
				return
			}
			defer func() { _ = uow.Rollback(ctx) }()

			claimed, err := uow.DeliveryRepository().Claim(ctx, request.ID(), driver.ID(), fixedNow)
			if err == nil {
				err = claimed.RecordClaim(driver, fixedNow)
			}
			if err == nil {
				err = uow.Commit(ctx)
			}

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners = append(winners, driver.ID())
			case errors.Is(err, errs.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	require.Len(t, winners, 1)
	assert.Equal(t, drivers-1, conflicts)

	stored, err := factory.Create().DeliveryRepository().Get(ctx, request.ID())
	require.NoError(t, err)
	assert.Equal(t, delivery.Assigned, stored.Status())
	require.NotNil(t, stored.Driver())
	assert.Equal(t, winners[0], *stored.Driver())
}

func TestRepository_Claim(t *testing.T) {
	ctx := context.Background()
	publisher := &recordingPublisher{}
	factory := memory.NewUnitOfWorkFactory(memory.NewStore(), publisher)
	request := newRequest(t, newActor(t, kernel.Customer, ""), "shop-1", fixedNow)
	seed(t, factory, request)
	seeded := publisher.count()

	driver := newActor(t, kernel.Driver, "")
	claimedAt := fixedNow.Add(time.Minute)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	claimed, err := uow.DeliveryRepository().Claim(ctx, request.ID(), driver.ID(), claimedAt)
	require.NoError(t, err)
	require.NoError(t, claimed.RecordClaim(driver, claimedAt))
	require.NoError(t, uow.Commit(ctx))

	t.Run("assigns the request and keeps the rest of the record", func(t *testing.T) {
		stored, err := factory.Create().DeliveryRepository().Get(ctx, request.ID())
		require.NoError(t, err)
		assert.Equal(t, delivery.Assigned, stored.Status())
		require.NotNil(t, stored.Driver())
		assert.True(t, stored.Driver().IsEqual(driver.ID()))
		assert.True(t, stored.UpdatedAt().Equal(claimedAt))
		assert.Equal(t, request.Basket(), stored.Basket())
	})

	t.Run("publishes a single accepted event", func(t *testing.T) {
		publisher.mu.Lock()
		defer publisher.mu.Unlock()
		require.Len(t, publisher.events, seeded+1)
		assert.Equal(t, delivery.EventAccepted, publisher.events[seeded].Type)
	})

	t.Run("a taken request conflicts", func(t *testing.T) {
		_, err := factory.Create().DeliveryRepository().
			Claim(ctx, request.ID(), newActor(t, kernel.Driver, "").ID(), fixedNow.Add(2*time.Minute))
		assert.True(t, errors.Is(err, errs.ErrConflict))
	})

	t.Run("an unknown request conflicts", func(t *testing.T) {
		_, err := factory.Create().DeliveryRepository().
			Claim(ctx, kernel.NewUUID(), driver.ID(), fixedNow)
		assert.True(t, errors.Is(err, errs.ErrConflict))
	})
}

func TestUnitOfWork_StaleUpdateIsRefused(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore(), nil)
	shop := newActor(t, kernel.Shop, "shop-1")
	request := newRequest(t, newActor(t, kernel.Customer, ""), "shop-1", fixedNow)
	seed(t, factory, request)

	first := factory.Create()
	second := factory.Create()
	require.NoError(t, first.Begin(ctx))
	require.NoError(t, second.Begin(ctx))

	a, err := first.DeliveryRepository().GetForUpdate(ctx, request.ID())
	require.NoError(t, err)
	b, err := second.DeliveryRepository().GetForUpdate(ctx, request.ID())
	require.NoError(t, err)

	require.NoError(t, a.ConfirmByShop(shop, delivery.Accept, "", fixedNow.Add(time.Minute)))
	require.NoError(t, b.ConfirmByShop(shop, delivery.Reject, "", fixedNow.Add(2*time.Minute)))

	require.NoError(t, first.DeliveryRepository().Update(ctx, a))
	require.NoError(t, first.Commit(ctx))

	require.NoError(t, second.DeliveryRepository().Update(ctx, b))
	err = second.Commit(ctx)
	assert.ErrorIs(t, err, errs.ErrConflict)

	stored, err := factory.Create().DeliveryRepository().Get(ctx, request.ID())
	require.NoError(t, err)
	assert.Equal(t, delivery.ConfirmationAccepted, stored.Confirmation())
}

func TestRepository_DeleteAndMissing(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore(), nil)
	customer := newActor(t, kernel.Customer, "")
	request := newRequest(t, customer, "shop-1", fixedNow)
	seed(t, factory, request)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	loaded, err := uow.DeliveryRepository().GetForUpdate(ctx, request.ID())
	require.NoError(t, err)
	require.NoError(t, loaded.Cancel(customer, fixedNow))
	require.NoError(t, uow.DeliveryRepository().Delete(ctx, loaded))

	_, err = uow.DeliveryRepository().Get(ctx, request.ID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound, "a staged delete hides the record")
	require.NoError(t, uow.Commit(ctx))

	_, err = factory.Create().DeliveryRepository().Get(ctx, request.ID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = factory.Create().DeliveryRepository().Claim(ctx, request.ID(), kernel.NewUUID(), fixedNow)
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestReader_Listings(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store, nil)
	reader := memory.NewReader(store)

	customer := newActor(t, kernel.Customer, "")
	older := newRequest(t, customer, "shop-1", fixedNow)
	newer := newRequest(t, customer, "shop-1", fixedNow.Add(time.Hour))
	other := newRequest(t, newActor(t, kernel.Customer, ""), "shop-2", fixedNow.Add(2*time.Hour))
	seed(t, factory, older, newer, other)

	driver := newActor(t, kernel.Driver, "")
	_, err := factory.Create().DeliveryRepository().Claim(ctx, other.ID(), driver.ID(), fixedNow.Add(3*time.Hour))
	require.NoError(t, err)

	mine, err := reader.ListByRequester(ctx, customer.ID())
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, newer.ID(), mine[0].ID())
	assert.Equal(t, older.ID(), mine[1].ID())

	pending, err := reader.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	assigned, err := reader.ListByDriver(ctx, driver.ID())
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, other.ID(), assigned[0].ID())

	shopOrders, err := reader.ListByShop(ctx, "shop-2")
	require.NoError(t, err)
	require.Len(t, shopOrders, 1)

	none, err := reader.ListByShop(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	counts, err := reader.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[delivery.Status]int64{delivery.Pending: 2, delivery.Assigned: 1}, counts)
}
