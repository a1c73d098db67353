package commands_test

import (
	"testing"

	"grameego/internal/core/application/usecases/commands"
	"grameego/internal/core/domain/model/kernel"
	"grameego/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelDeliveryCommandHandler_Handle(t *testing.T) {
	customer := newActor(t, kernel.Customer, "")

	_, err := commands.NewCancelDeliveryCommand(newActor(t, kernel.Driver, ""), kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrPermissionDenied)

	t.Run("owner deletes pending request", func(t *testing.T) {
		ctx := t.Context()
		d := pendingRequest(t, customer, "shop-1")
		cmd, err := commands.NewCancelDeliveryCommand(customer, d.ID())
		require.NoError(t, err)

		repo := new(MockDeliveryRepository)
		repo.On("GetForUpdate", ctx, d.ID()).Return(d, nil).Once()
		repo.On("Delete", ctx, d).Return(nil).Once()
		factory, uow := happyUoW(ctx, repo)

		h := commands.NewCancelDeliveryCommandHandler(factory, clock)
		require.NoError(t, h.Handle(ctx, cmd))
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("someone else's request is denied", func(t *testing.T) {
		ctx := t.Context()
		d := pendingRequest(t, customer, "shop-1")
		cmd, err := commands.NewCancelDeliveryCommand(newActor(t, kernel.Customer, ""), d.ID())
		require.NoError(t, err)

		repo := new(MockDeliveryRepository)
		repo.On("GetForUpdate", ctx, d.ID()).Return(d, nil).Once()

		uow := new(MockDeliveryUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("DeliveryRepository").Return(repo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockDeliveryUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewCancelDeliveryCommandHandler(factory, clock)
		require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrPermissionDenied)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
