package deliveryrepo_test

import (
	"testing"
	"time"

	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

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

	first := delivery.NewLineItem("p-1", "Rice", 2, 55)
	second := delivery.NewLineItem("p-2", "Lentils", 1, "120")

	distance := 5.0
	total := 230.0
	d, err := delivery.NewDeliveryRequest(kernel.NewUUID(), customer, delivery.Details{
		ItemDescription: "Rice and lentils",
		ContactNumber:   "01700000000",
		Village:         "Charpara",
		Shop:            shop,
		Basket: delivery.Basket{
			Items:        []delivery.LineItem{first, second},
			ProductTotal: &total,
		},
		DistanceKm: &distance,
	}, 5, createdAt)
	require.NoError(t, err)
	return d
}
