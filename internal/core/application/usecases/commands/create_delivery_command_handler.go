package commands

import (
	"context"

	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/domain/services"
)

// CreateDeliveryCommandHandler prices and stores a new request.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	pricing    services.PriceCalculator
	now        Clock
}

func NewCreateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	pricing services.PriceCalculator,
	now Clock,
) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		now:        now,
	}
}

// Handle returns the created request, Pending on both axes.
func (h *CreateDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd CreateDeliveryCommand,
) (*delivery.DeliveryRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	details := cmd.Details()
	created, err := delivery.NewDeliveryRequest(
		cmd.DeliveryID(),
		cmd.Requester(),
		details,
		h.pricing.ComputePrice(details.DistanceKm),
		h.now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DeliveryRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
