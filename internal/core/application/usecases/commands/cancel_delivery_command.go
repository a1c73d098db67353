package commands

import (
	"errors"

	"grameego/internal/core/domain/model/kernel"
	"grameego/internal/pkg/guard"
)

var ErrCancelDeliveryCommandIsNotConstructed = errors.New(
	"CancelDeliveryCommand must be created via NewCancelDeliveryCommand constructor",
)

// CancelDeliveryCommand withdraws a customer's own Pending request.
type CancelDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	customer   kernel.Actor

	guard guard.ConstructorGuard
}

func NewCancelDeliveryCommand(customer kernel.Actor, deliveryID kernel.UUID) (CancelDeliveryCommand, error) {
	if err := customer.RequireRole(kernel.Customer, "cancel"); err != nil {
		return CancelDeliveryCommand{}, err
	}
	if err := deliveryID.Validate(); err != nil {
		return CancelDeliveryCommand{}, err
	}

	return CancelDeliveryCommand{
		deliveryID: deliveryID,
		customer:   customer,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CancelDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryCommandIsNotConstructed)
}

func (c CancelDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c CancelDeliveryCommand) Customer() kernel.Actor  { return c.customer }
