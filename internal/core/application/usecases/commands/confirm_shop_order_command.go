package commands

import (
	"errors"

	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/domain/model/kernel"
	"grameego/internal/pkg/guard"
)

var ErrConfirmShopOrderCommandIsNotConstructed = errors.New(
	"ConfirmShopOrderCommand must be created via NewConfirmShopOrderCommand constructor",
)

// ConfirmShopOrderCommand is a shop accepting or rejecting an order routed to it.
type ConfirmShopOrderCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	shop       kernel.Actor
	action     delivery.ConfirmationAction
	note       string

	guard guard.ConstructorGuard
}

func NewConfirmShopOrderCommand(
	shop kernel.Actor,
	deliveryID kernel.UUID,
	action string,
	note string,
) (ConfirmShopOrderCommand, error) {
	if err := delivery.RequireLinkedShop(shop); err != nil {
		return ConfirmShopOrderCommand{}, err
	}

	cmd := ConfirmShopOrderCommand{
		shop:  shop,
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setAction(action),
	); err != nil {
		return ConfirmShopOrderCommand{}, err
	}

	return cmd, nil
}

func (c ConfirmShopOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmShopOrderCommandIsNotConstructed)
}

func (c ConfirmShopOrderCommand) DeliveryID() kernel.UUID             { return c.deliveryID }
func (c ConfirmShopOrderCommand) Shop() kernel.Actor                  { return c.shop }
func (c ConfirmShopOrderCommand) Action() delivery.ConfirmationAction { return c.action }
func (c ConfirmShopOrderCommand) Note() string                        { return c.note }

func (c *ConfirmShopOrderCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *ConfirmShopOrderCommand) setAction(action string) error {
	parsed, err := delivery.ParseConfirmationAction(action)
	if err != nil {
		return err
	}
	c.action = parsed
	return nil
}
