package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"grameego/internal/core/application/usecases/queries"
	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/domain/model/kernel"
	"grameego/internal/core/domain/model/shop"
	"grameego/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryReader struct{ mock.Mock }

func (m *MockDeliveryReader) list(args mock.Arguments) ([]*delivery.DeliveryRequest, error) {
	list, _ := args.Get(0).([]*delivery.DeliveryRequest)
	return list, args.Error(1)
}

func (m *MockDeliveryReader) ListByRequester(ctx context.Context, id kernel.UUID) ([]*delivery.DeliveryRequest, error) {
	return m.list(m.Called(ctx, id))
}

func (m *MockDeliveryReader) ListPending(ctx context.Context) ([]*delivery.DeliveryRequest, error) {
	return m.list(m.Called(ctx))
}

func (m *MockDeliveryReader) ListByDriver(ctx context.Context, id kernel.UUID) ([]*delivery.DeliveryRequest, error) {
	return m.list(m.Called(ctx, id))
}

func (m *MockDeliveryReader) ListByShop(ctx context.Context, shopID string) ([]*delivery.DeliveryRequest, error) {
	return m.list(m.Called(ctx, shopID))
}

func (m *MockDeliveryReader) CountByStatus(ctx context.Context) (map[delivery.Status]int64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[delivery.Status]int64)
	return counts, args.Error(1)
}

type MockShopDirectory struct{ mock.Mock }

func (m *MockShopDirectory) List(ctx context.Context) ([]shop.Shop, error) {
	args := m.Called(ctx)
	shops, _ := args.Get(0).([]shop.Shop)
	return shops, args.Error(1)
}

func (m *MockShopDirectory) Get(ctx context.Context, id string) (shop.Shop, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(shop.Shop)
	return s, args.Error(1)
}

func newActor(t *testing.T, role kernel.Role, shopID string) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), role, "", shopID)
	require.NoError(t, err)
	return actor
}

func newRequest(t *testing.T, customer kernel.Actor) *delivery.DeliveryRequest {
	t.Helper()
	ref, err := delivery.NewShopRef("shop-1", "Karim Store", "Bazar Road")
	require.NoError(t, err)
	d, err := delivery.NewDeliveryRequest(kernel.NewUUID(), customer, delivery.Details{
		ItemDescription: "eggs", ContactNumber: "017", Village: "Charpara", Shop: ref,
	}, 4, time.Now())
	require.NoError(t, err)
	return d
}

func TestNewListDeliveriesQuery_Roles(t *testing.T) {
	customer := newActor(t, kernel.Customer, "")
	driver := newActor(t, kernel.Driver, "")
	shopActor := newActor(t, kernel.Shop, "shop-1")
	unlinked := newActor(t, kernel.Shop, "")

	testCases := []struct {
		scope   queries.Scope
		actor   kernel.Actor
		wantErr error
	}{
		{queries.ScopeMine, customer, nil},
		{queries.ScopeMine, driver, errs.ErrPermissionDenied},
		{queries.ScopeAvailable, driver, nil},
		{queries.ScopeAvailable, customer, errs.ErrPermissionDenied},
		{queries.ScopeAssignedToMe, driver, nil},
		{queries.ScopeAssignedToMe, shopActor, errs.ErrPermissionDenied},
		{queries.ScopeShopOrders, shopActor, nil},
		{queries.ScopeShopOrders, unlinked, errs.ErrValueIsRequired},
		{queries.ScopeShopOrders, customer, errs.ErrPermissionDenied},
		{queries.UnknownScope, customer, errs.ErrValueIsInvalid},
	}

	for _, tc := range testCases {
		t.Run(tc.scope.String()+"/"+tc.actor.Role().String(), func(t *testing.T) {
			q, err := queries.NewListDeliveriesQuery(tc.actor, tc.scope)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, q.Validate())
		})
	}
}

func TestListDeliveriesQueryHandler_Handle(t *testing.T) {
	customer := newActor(t, kernel.Customer, "")
	driver := newActor(t, kernel.Driver, "")
	shopActor := newActor(t, kernel.Shop, "shop-1")
	d := newRequest(t, customer)

	t.Run("each scope hits its reader method", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockDeliveryReader)
		reader.On("ListByRequester", ctx, customer.ID()).Return([]*delivery.DeliveryRequest{d}, nil).Once()
		reader.On("ListPending", ctx).Return([]*delivery.DeliveryRequest{d}, nil).Once()
		reader.On("ListByDriver", ctx, driver.ID()).Return([]*delivery.DeliveryRequest{}, nil).Once()
		reader.On("ListByShop", ctx, "shop-1").Return([]*delivery.DeliveryRequest{d}, nil).Once()

		h := queries.NewListDeliveriesQueryHandler(reader)
		for scope, actor := range map[queries.Scope]kernel.Actor{
			queries.ScopeMine:         customer,
			queries.ScopeAvailable:    driver,
			queries.ScopeAssignedToMe: driver,
			queries.ScopeShopOrders:   shopActor,
		} {
			q, err := queries.NewListDeliveriesQuery(actor, scope)
			require.NoError(t, err)

			got, err := h.Handle(ctx, q)
			require.NoError(t, err, scope.String())
			assert.NotNil(t, got)
			if scope != queries.ScopeAssignedToMe {
				require.Len(t, got, 1)
				assert.Equal(t, d.ID(), got[0].ID)
			}
		}
		reader.AssertExpectations(t)
	})

	t.Run("reader failure is returned", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockDeliveryReader)
		reader.On("ListPending", ctx).Return(nil, errors.New("db down")).Once()

		q, err := queries.NewListDeliveriesQuery(driver, queries.ScopeAvailable)
		require.NoError(t, err)

		_, err = queries.NewListDeliveriesQueryHandler(reader).Handle(ctx, q)
		require.Error(t, err)
	})

	t.Run("unconstructed query", func(t *testing.T) {
		_, err := queries.NewListDeliveriesQueryHandler(new(MockDeliveryReader)).Handle(t.Context(), queries.ListDeliveriesQuery{})
		require.ErrorIs(t, err, queries.ErrListDeliveriesQueryIsNotConstructed)
	})
}

func TestCountDeliveriesByStatusQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	reader := new(MockDeliveryReader)
	reader.On("CountByStatus", ctx).Return(map[delivery.Status]int64{delivery.Pending: 3, delivery.Picked: 1}, nil).Once()

	counts, err := queries.NewCountDeliveriesByStatusQueryHandler(reader).
		Handle(ctx, queries.NewCountDeliveriesByStatusQuery())

	require.NoError(t, err)
	assert.Equal(t, map[delivery.Status]int64{
		delivery.Pending:   3,
		delivery.Assigned:  0,
		delivery.Picked:    1,
		delivery.Delivered: 0,
	}, counts)
}

func TestShopQueries(t *testing.T) {
	ctx := t.Context()
	karim, err := shop.NewShop("shop-1", "Karim Store", "Bazar Road", []shop.Product{{ID: "rice", Name: "Rice", Price: 70}})
	require.NoError(t, err)

	directory := new(MockShopDirectory)
	directory.On("List", ctx).Return([]shop.Shop{karim}, nil).Once()
	directory.On("Get", ctx, "shop-1").Return(karim, nil).Once()
	directory.On("Get", ctx, "nope").Return(nil, errs.NewObjectNotFoundError("shop", "nope")).Once()

	summaries, err := queries.NewListShopsQueryHandler(directory).Handle(ctx)
	require.NoError(t, err)
	assert.Equal(t, []queries.ShopSummary{{ID: "shop-1", Name: "Karim Store", Address: "Bazar Road", ProductsCount: 1}}, summaries)

	getHandler := queries.NewGetShopQueryHandler(directory)

	q, err := queries.NewGetShopQuery(" shop-1 ")
	require.NoError(t, err)
	got, err := getHandler.Handle(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "Karim Store", got.Name())

	q, err = queries.NewGetShopQuery("nope")
	require.NoError(t, err)
	_, err = getHandler.Handle(ctx, q)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = queries.NewGetShopQuery(" ")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	directory.AssertExpectations(t)
}
