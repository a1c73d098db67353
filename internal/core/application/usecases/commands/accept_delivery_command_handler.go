package commands

import (
	"context"

	"grameego/internal/core/domain/model/delivery"
)

// AcceptDeliveryCommandHandler claims a request for a driver. The claim is a
// single conditional update in the store; there is no read before it, so two
// drivers racing for the same request can't both win. The loser gets an
// errs.ConflictError and nothing is retried.
type AcceptDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	now        Clock
}

func NewAcceptDeliveryCommandHandler(uowFactory DeliveryUoWFactory, now Clock) AcceptDeliveryCommandHandler {
	return AcceptDeliveryCommandHandler{uowFactory: uowFactory, now: now}
}

func (h *AcceptDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd AcceptDeliveryCommand,
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

	at := h.now()
	claimed, err := uow.DeliveryRepository().Claim(ctx, cmd.DeliveryID(), cmd.Driver().ID(), at)
	if err != nil {
		return nil, err
	}

	if err = claimed.RecordClaim(cmd.Driver(), at); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return claimed, nil
}
