package commands

import (
	"errors"

	"grameego/internal/core/domain/model/kernel"
	"grameego/internal/pkg/guard"
)

var ErrAcceptDeliveryCommandIsNotConstructed = errors.New(
	"AcceptDeliveryCommand must be created via NewAcceptDeliveryCommand constructor",
)

// AcceptDeliveryCommand is a driver's attempt to claim a Pending request.
type AcceptDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	driver     kernel.Actor

	guard guard.ConstructorGuard
}

func NewAcceptDeliveryCommand(driver kernel.Actor, deliveryID kernel.UUID) (AcceptDeliveryCommand, error) {
	if err := driver.RequireRole(kernel.Driver, "accept requests"); err != nil {
		return AcceptDeliveryCommand{}, err
	}
	if err := deliveryID.Validate(); err != nil {
		return AcceptDeliveryCommand{}, err
	}

	return AcceptDeliveryCommand{
		deliveryID: deliveryID,
		driver:     driver,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAcceptDeliveryCommandIsNotConstructed)
}

func (c AcceptDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c AcceptDeliveryCommand) Driver() kernel.Actor    { return c.driver }
