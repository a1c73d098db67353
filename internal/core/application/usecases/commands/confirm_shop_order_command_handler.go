package commands

import (
	"context"

	"grameego/internal/core/domain/model/delivery"
)

// ConfirmShopOrderCommandHandler records a shop decision. It never touches
// the driver axis: a rejected order stays in the available pool.
type ConfirmShopOrderCommandHandler struct {
	uowFactory DeliveryUoWFactory
	now        Clock
}

func NewConfirmShopOrderCommandHandler(uowFactory DeliveryUoWFactory, now Clock) ConfirmShopOrderCommandHandler {
	return ConfirmShopOrderCommandHandler{uowFactory: uowFactory, now: now}
}

func (h *ConfirmShopOrderCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmShopOrderCommand,
) (*delivery.DeliveryRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()
	d, err := repo.GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	if err = d.ConfirmByShop(cmd.Shop(), cmd.Action(), cmd.Note(), h.now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
