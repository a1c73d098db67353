package commands

import (
	"context"

	"grameego/internal/core/domain/model/delivery"
)

type AdvanceDeliveryStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
	now        Clock
}

func NewAdvanceDeliveryStatusCommandHandler(
	uowFactory DeliveryUoWFactory,
	now Clock,
) AdvanceDeliveryStatusCommandHandler {
	return AdvanceDeliveryStatusCommandHandler{uowFactory: uowFactory, now: now}
}

// Handle locks the request, lets the aggregate check ownership and
// direction, then writes the new status.
func (h *AdvanceDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceDeliveryStatusCommand,
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

	if err = d.AdvanceStatus(cmd.Driver(), cmd.Target(), h.now()); err != nil {
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
