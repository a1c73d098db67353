package commands

import (
	"context"

	"grameego/internal/core/domain/model/delivery"
)

type UnassignDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	now        Clock
}

func NewUnassignDeliveryCommandHandler(uowFactory DeliveryUoWFactory, now Clock) UnassignDeliveryCommandHandler {
	return UnassignDeliveryCommandHandler{uowFactory: uowFactory, now: now}
}

// Handle returns the request Pending again with no driver.
func (h *UnassignDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd UnassignDeliveryCommand,
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

	if err = d.Unassign(cmd.Driver(), h.now()); err != nil {
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
