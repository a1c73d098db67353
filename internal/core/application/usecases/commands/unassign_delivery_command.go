package commands

import (
	"errors"

	"grameego/internal/core/domain/model/kernel"
	"grameego/internal/pkg/guard"
)

var ErrUnassignDeliveryCommandIsNotConstructed = errors.New(
	"UnassignDeliveryCommand must be created via NewUnassignDeliveryCommand constructor",
)

// UnassignDeliveryCommand releases a claimed request back to the pool.
type UnassignDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	driver     kernel.Actor

	guard guard.ConstructorGuard
}

func NewUnassignDeliveryCommand(driver kernel.Actor, deliveryID kernel.UUID) (UnassignDeliveryCommand, error) {
	if err := driver.RequireRole(kernel.Driver, "unassign"); err != nil {
		return UnassignDeliveryCommand{}, err
	}
	if err := deliveryID.Validate(); err != nil {
		return UnassignDeliveryCommand{}, err
	}

	return UnassignDeliveryCommand{
		deliveryID: deliveryID,
		driver:     driver,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UnassignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrUnassignDeliveryCommandIsNotConstructed)
}

func (c UnassignDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c UnassignDeliveryCommand) Driver() kernel.Actor    { return c.driver }
