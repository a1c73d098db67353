package commands

import (
	"errors"

	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/domain/model/kernel"
	"grameego/internal/pkg/guard"
)

var ErrAdvanceDeliveryStatusCommandIsNotConstructed = errors.New(
	"AdvanceDeliveryStatusCommand must be created via NewAdvanceDeliveryStatusCommand constructor",
)

// AdvanceDeliveryStatusCommand moves a claimed request to Picked or Delivered.
// The target is checked before the request is looked up.
type AdvanceDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	driver     kernel.Actor
	target     delivery.Status

	guard guard.ConstructorGuard
}

func NewAdvanceDeliveryStatusCommand(
	driver kernel.Actor,
	deliveryID kernel.UUID,
	newStatus string,
) (AdvanceDeliveryStatusCommand, error) {
	if err := driver.RequireRole(kernel.Driver, "update status"); err != nil {
		return AdvanceDeliveryStatusCommand{}, err
	}

	cmd := AdvanceDeliveryStatusCommand{
		driver: driver,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setTarget(newStatus),
	); err != nil {
		return AdvanceDeliveryStatusCommand{}, err
	}

	return cmd, nil
}

func (c AdvanceDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceDeliveryStatusCommandIsNotConstructed)
}

func (c AdvanceDeliveryStatusCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c AdvanceDeliveryStatusCommand) Driver() kernel.Actor    { return c.driver }
func (c AdvanceDeliveryStatusCommand) Target() delivery.Status { return c.target }

func (c *AdvanceDeliveryStatusCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *AdvanceDeliveryStatusCommand) setTarget(newStatus string) error {
	target, err := delivery.ParseStatus(newStatus)
	if err != nil {
		return err
	}
	// Only forward targets are ever valid, whatever the current status.
	if _, err = delivery.Assigned.Advance(target); err != nil {
		return err
	}
	c.target = target
	return nil
}
