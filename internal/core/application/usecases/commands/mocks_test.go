package commands_test

import (
	"context"
	"testing"
	"time"

	"grameego/internal/core/application/usecases/commands"
	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/domain/model/kernel"
	"grameego/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.DeliveryRequest) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.DeliveryRequest) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDeliveryRepository) Delete(ctx context.Context, d *delivery.DeliveryRequest) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.DeliveryRequest, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*delivery.DeliveryRequest)
	return d, args.Error(1)
}

func (m *MockDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.DeliveryRequest, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*delivery.DeliveryRequest)
	return d, args.Error(1)
}

func (m *MockDeliveryRepository) Claim(
	ctx context.Context,
	id, driverID kernel.UUID,
	at time.Time,
) (*delivery.DeliveryRequest, error) {
	args := m.Called(ctx, id, driverID, at)
	d, _ := args.Get(0).(*delivery.DeliveryRequest)
	return d, args.Error(1)
}

type MockDeliveryUoW struct{ mock.Mock }

func (m *MockDeliveryUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDeliveryUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDeliveryUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

// happyUoW wires a factory and unit of work that begin, commit and roll back
// without error around repo.
func happyUoW(ctx context.Context, repo *MockDeliveryRepository) (*MockDeliveryUoWFactory, *MockDeliveryUoW) {
	uow := new(MockDeliveryUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(repo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow
}

func newActor(t *testing.T, role kernel.Role, shopID string) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), role, role.String(), shopID)
	require.NoError(t, err)
	return actor
}

func pendingRequest(t *testing.T, customer kernel.Actor, shopID string) *delivery.DeliveryRequest {
	t.Helper()
	shop, err := delivery.NewShopRef(shopID, "Karim Store", "Bazar Road")
	require.NoError(t, err)

	d, err := delivery.NewDeliveryRequest(kernel.NewUUID(), customer, delivery.Details{
		ItemDescription: "2kg rice",
		ContactNumber:   "01700000000",
		Village:         "Charpara",
		Shop:            shop,
	}, 4, fixedNow)
	require.NoError(t, err)
	d.PullEvents()
	return d
}

func claimedRequest(t *testing.T, customer, driver kernel.Actor) *delivery.DeliveryRequest {
	t.Helper()
	d := pendingRequest(t, customer, "shop-1")
	require.NoError(t, d.Claim(driver, fixedNow))
	d.PullEvents()
	return d
}
