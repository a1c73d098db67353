package commands

import (
	"errors"
	"strings"

	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/domain/model/kernel"
	"grameego/internal/pkg/errs"
	"grameego/internal/pkg/guard"
	"grameego/internal/pkg/normalize"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// LineItemInput is one basket line as the client sent it. Numbers may arrive
// as JSON numbers, numeric strings or not at all.
type LineItemInput struct {
	ID       any
	Name     any
	Quantity any
	Price    any
}

// CreateDeliveryInput is the raw creation payload.
type CreateDeliveryInput struct {
	ItemDescription     string
	ContactNumber       string
	Village             string
	ShopID              string
	ShopName            string
	ShopAddress         string
	EstimatedDistanceKm any
	NeedByAt            string
	Items               []LineItemInput
	ProductTotal        any
	DeliveryFee         any
	GrandTotal          any
}

// CreateDeliveryCommand opens a new request for a customer. The constructor
// is the normalization step: optional numbers that are not finite become
// unset, basket numbers become zero, and only required text and needByAt can
// fail.
//
// Example:
//
//	cmd, err := NewCreateDeliveryCommand(customer, CreateDeliveryInput{
//	    ItemDescription: "2kg rice", ContactNumber: "017...", Village: "Charpara",
//	    ShopName: "Karim Store", ShopAddress: "Bazar Road", EstimatedDistanceKm: 5,
//	})
//	if err != nil {
//	    return err
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	requester  kernel.Actor
	details    delivery.Details

	guard guard.ConstructorGuard
}

func NewCreateDeliveryCommand(requester kernel.Actor, input CreateDeliveryInput) (CreateDeliveryCommand, error) {
	if err := requester.RequireRole(kernel.Customer, "create requests"); err != nil {
		return CreateDeliveryCommand{}, err
	}

	cmd := CreateDeliveryCommand{
		deliveryID: kernel.NewUUID(),
		requester:  requester,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setText("itemDescription", input.ItemDescription, &cmd.details.ItemDescription),
		cmd.setText("contactNumber", input.ContactNumber, &cmd.details.ContactNumber),
		cmd.setText("village", input.Village, &cmd.details.Village),
		cmd.setShop(input.ShopID, input.ShopName, input.ShopAddress),
		cmd.setNeedByAt(input.NeedByAt),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	cmd.details.DistanceKm = normalize.NonNegative(normalize.OptionalNumber(input.EstimatedDistanceKm))
	cmd.details.Basket = normalizeBasket(input)

	return cmd, nil
}

func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c CreateDeliveryCommand) Requester() kernel.Actor {
	return c.requester
}

func (c CreateDeliveryCommand) Details() delivery.Details {
	return c.details
}

func (c *CreateDeliveryCommand) setText(param, value string, dst *string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return errs.NewValueIsRequiredError(param)
	}
	*dst = v
	return nil
}

func (c *CreateDeliveryCommand) setShop(id, name, address string) error {
	ref, err := delivery.NewShopRef(id, name, address)
	if err != nil {
		return err
	}
	c.details.Shop = ref
	return nil
}

func (c *CreateDeliveryCommand) setNeedByAt(value string) error {
	at, err := normalize.Timestamp(value)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("needByAt", err)
	}
	c.details.NeedByAt = at
	return nil
}

func normalizeBasket(input CreateDeliveryInput) delivery.Basket {
	items := make([]delivery.LineItem, 0, len(input.Items))
	for _, it := range input.Items {
		items = append(items, delivery.NewLineItem(it.ID, it.Name, it.Quantity, it.Price))
	}

	return delivery.Basket{
		Items:        items,
		ProductTotal: normalize.OptionalNumber(input.ProductTotal),
		DeliveryFee:  normalize.OptionalNumber(input.DeliveryFee),
		GrandTotal:   normalize.OptionalNumber(input.GrandTotal),
	}
}
