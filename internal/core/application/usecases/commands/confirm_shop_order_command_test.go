package commands_test

import (
	"testing"

	"grameego/internal/core/application/usecases/commands"
	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/domain/model/kernel"
	"grameego/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewConfirmShopOrderCommand(t *testing.T) {
	shop := newActor(t, kernel.Shop, "shop-1")

	cmd, err := commands.NewConfirmShopOrderCommand(shop, kernel.NewUUID(), "reject", "no stock")
	require.NoError(t, err)
	assert.Equal(t, delivery.Reject, cmd.Action())
	assert.Equal(t, "no stock", cmd.Note())

	_, err = commands.NewConfirmShopOrderCommand(shop, kernel.NewUUID(), "approve", "")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewConfirmShopOrderCommand(newActor(t, kernel.Shop, ""), kernel.NewUUID(), "accept", "")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewConfirmShopOrderCommand(newActor(t, kernel.Customer, ""), kernel.NewUUID(), "accept", "")
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func TestConfirmShopOrderCommandHandler_Handle(t *testing.T) {
	customer := newActor(t, kernel.Customer, "")
	shop := newActor(t, kernel.Shop, "shop-1")

	t.Run("shop accepts its order", func(t *testing.T) {
		ctx := t.Context()
		d := pendingRequest(t, customer, "shop-1")
		cmd, err := commands.NewConfirmShopOrderCommand(shop, d.ID(), "accept", "ready in 10 min")
		require.NoError(t, err)

		repo := new(MockDeliveryRepository)
		repo.On("GetForUpdate", ctx, d.ID()).Return(d, nil).Once()
		repo.On("Update", ctx, d).Return(nil).Once()
		factory, uow := happyUoW(ctx, repo)

		h := commands.NewConfirmShopOrderCommandHandler(factory, clock)
		got, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, delivery.ConfirmationAccepted, got.Confirmation())
		assert.Equal(t, delivery.Pending, got.Status())
		require.NotNil(t, got.ConfirmedAt())
		assert.Equal(t, fixedNow, *got.ConfirmedAt())
		uow.AssertExpectations(t)
	})

	t.Run("re-accepting a rejected order is a conflict", func(t *testing.T) {
		ctx := t.Context()
		d := pendingRequest(t, customer, "shop-1")
		require.NoError(t, d.ConfirmByShop(shop, delivery.Reject, "", fixedNow))
		cmd, err := commands.NewConfirmShopOrderCommand(shop, d.ID(), "accept", "")
		require.NoError(t, err)

		repo := new(MockDeliveryRepository)
		repo.On("GetForUpdate", ctx, d.ID()).Return(d, nil).Once()

		uow := new(MockDeliveryUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("DeliveryRepository").Return(repo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockDeliveryUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewConfirmShopOrderCommandHandler(factory, clock)
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, delivery.ConfirmationRejected, d.Confirmation())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("order of another shop is denied", func(t *testing.T) {
		ctx := t.Context()
		d := pendingRequest(t, customer, "shop-2")
		cmd, err := commands.NewConfirmShopOrderCommand(shop, d.ID(), "accept", "")
		require.NoError(t, err)

		repo := new(MockDeliveryRepository)
		repo.On("GetForUpdate", ctx, d.ID()).Return(d, nil).Once()

		uow := new(MockDeliveryUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("DeliveryRepository").Return(repo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockDeliveryUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewConfirmShopOrderCommandHandler(factory, clock)
		_, err = h.Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrPermissionDenied)
	})
}
