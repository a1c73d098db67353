package commands

import (
	"context"
)

// CancelDeliveryCommandHandler deletes the request. There is no soft delete:
// cancelling twice yields errs.ObjectNotFoundError the second time.
type CancelDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	now        Clock
}

func NewCancelDeliveryCommandHandler(uowFactory DeliveryUoWFactory, now Clock) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{uowFactory: uowFactory, now: now}
}

func (h *CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()
	d, err := repo.GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if err = d.Cancel(cmd.Customer(), h.now()); err != nil {
		return err
	}

	if err = repo.Delete(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
