package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"grameego/internal/core/domain/model/kernel"
	"grameego/internal/pkg/errs"
	"grameego/internal/pkg/guard"
	"grameego/internal/pkg/normalize"
)

// MaxShopNoteLength bounds the note a shop may attach to its decision, in
// characters.
const MaxShopNoteLength = 300

var ErrDeliveryRequestIsNotConstructed = errors.New(
	"DeliveryRequest must be created via NewDeliveryRequest or RestoreDeliveryRequest",
)

// Details is the customer-supplied part of a new request, already normalized.
type Details struct {
	ItemDescription string
	ContactNumber   string
	Village         string
	Shop            ShopRef
	Basket          Basket
	DistanceKm      *float64
	NeedByAt        *time.Time
}

// DeliveryRequest is the aggregate root tracked from creation to delivery.
//
// Invariants:
//   - driverID is set if and only if status != Pending
//   - requester and the customer-supplied details never change
//   - confirmation never leaves Rejected
type DeliveryRequest struct {
	id              kernel.UUID
	requesterID     kernel.UUID
	itemDescription string
	contactNumber   string
	village         string
	shop            ShopRef
	basket          Basket
	distanceKm      *float64
	price           float64
	needByAt        *time.Time

	status       Status
	driverID     *kernel.UUID
	confirmation ConfirmationStatus
	confirmedAt  *time.Time
	shopNote     string

	createdAt time.Time
	updatedAt time.Time

	events []Event
	guard  guard.ConstructorGuard
}

// NewDeliveryRequest opens a request on behalf of a customer. The price is
// computed by the caller (see services.PriceCalculator) so tariffs stay
// outside the aggregate.
func NewDeliveryRequest(
	id kernel.UUID,
	requester kernel.Actor,
	details Details,
	price float64,
	now time.Time,
) (*DeliveryRequest, error) {
	if err := requester.RequireRole(kernel.Customer, "create requests"); err != nil {
		return nil, err
	}

	d := &DeliveryRequest{
		requesterID:  requester.ID(),
		shop:         details.Shop,
		basket:       details.Basket,
		distanceKm:   normalize.NonNegative(details.DistanceKm),
		needByAt:     details.NeedByAt,
		price:        price,
		status:       Pending,
		confirmation: ConfirmationPending,
		createdAt:    now,
		updatedAt:    now,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setText("itemDescription", details.ItemDescription, &d.itemDescription),
		d.setText("contactNumber", details.ContactNumber, &d.contactNumber),
		d.setText("village", details.Village, &d.village),
		d.setShop(details.Shop),
		d.setPrice(price),
	); err != nil {
		return nil, err
	}

	d.record(EventCreated, requester.ID(), now)
	return d, nil
}

func (d *DeliveryRequest) Validate() error {
	if d == nil {
		return ErrDeliveryRequestIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryRequestIsNotConstructed)
}

func (d *DeliveryRequest) ID() kernel.UUID                  { return d.id }
func (d *DeliveryRequest) RequesterID() kernel.UUID         { return d.requesterID }
func (d *DeliveryRequest) ItemDescription() string          { return d.itemDescription }
func (d *DeliveryRequest) ContactNumber() string            { return d.contactNumber }
func (d *DeliveryRequest) Village() string                  { return d.village }
func (d *DeliveryRequest) Shop() ShopRef                    { return d.shop }
func (d *DeliveryRequest) Basket() Basket                   { return d.basket }
func (d *DeliveryRequest) DistanceKm() *float64             { return d.distanceKm }
func (d *DeliveryRequest) Price() float64                   { return d.price }
func (d *DeliveryRequest) NeedByAt() *time.Time             { return d.needByAt }
func (d *DeliveryRequest) Status() Status                   { return d.status }
func (d *DeliveryRequest) Driver() *kernel.UUID             { return d.driverID }
func (d *DeliveryRequest) Confirmation() ConfirmationStatus { return d.confirmation }
func (d *DeliveryRequest) ConfirmedAt() *time.Time          { return d.confirmedAt }
func (d *DeliveryRequest) ShopNote() string                 { return d.shopNote }
func (d *DeliveryRequest) CreatedAt() time.Time             { return d.createdAt }
func (d *DeliveryRequest) UpdatedAt() time.Time             { return d.updatedAt }

// IsAssignedTo reports whether driverID currently holds the request.
func (d *DeliveryRequest) IsAssignedTo(driverID kernel.UUID) bool {
	return d.driverID != nil && d.driverID.IsEqual(driverID)
}

// Claim assigns a Pending, unassigned request to driver. It only decides
// whether the claim is legal; callers must hold exclusive access to the
// record, as the memory store does under its lock. Database-backed stores
// claim with a conditional update instead and acknowledge it with
// RecordClaim.
func (d *DeliveryRequest) Claim(driver kernel.Actor, now time.Time) error {
	if err := driver.RequireRole(kernel.Driver, "accept requests"); err != nil {
		return err
	}
	if d.driverID != nil {
		return errs.NewConflictError("this request has already been taken")
	}

	next, err := d.status.Assign()
	if err != nil {
		return err
	}

	driverID := driver.ID()
	d.status = next
	d.driverID = &driverID
	d.updatedAt = now
	d.record(EventAccepted, driver.ID(), now)
	return nil
}

// RecordClaim acknowledges a claim the store already applied atomically. The
// aggregate must come back Assigned to this driver, anything else means the
// claim was lost.
func (d *DeliveryRequest) RecordClaim(driver kernel.Actor, now time.Time) error {
	if err := driver.RequireRole(kernel.Driver, "accept requests"); err != nil {
		return err
	}
	if d.status != Assigned || !d.IsAssignedTo(driver.ID()) {
		return errs.NewConflictError("this request has already been taken")
	}

	d.record(EventAccepted, driver.ID(), now)
	return nil
}

// AdvanceStatus moves the request to Picked or Delivered on behalf of its
// assigned driver.
func (d *DeliveryRequest) AdvanceStatus(driver kernel.Actor, target Status, now time.Time) error {
	if err := d.requireAssignee(driver, "update status"); err != nil {
		return err
	}

	next, err := d.status.Advance(target)
	if err != nil {
		return err
	}

	d.status = next
	d.updatedAt = now
	d.record(EventStatusAdvanced, driver.ID(), now)
	return nil
}

// Unassign hands an Assigned request back to the pool. Any driver,
// including this one, may claim it again afterwards.
func (d *DeliveryRequest) Unassign(driver kernel.Actor, now time.Time) error {
	if err := d.requireAssignee(driver, "unassign"); err != nil {
		return err
	}

	next, err := d.status.Release()
	if err != nil {
		return err
	}

	d.status = next
	d.driverID = nil
	d.updatedAt = now
	d.record(EventUnassigned, driver.ID(), now)
	return nil
}

// Cancel checks that customer may withdraw the request. The record itself
// is removed by the repository.
func (d *DeliveryRequest) Cancel(customer kernel.Actor, now time.Time) error {
	if err := customer.RequireRole(kernel.Customer, "cancel"); err != nil {
		return err
	}
	if !d.requesterID.IsEqual(customer.ID()) {
		return errs.NewPermissionDeniedError("not your request")
	}
	if err := d.status.ValidateCancel(); err != nil {
		return err
	}

	d.record(EventCancelled, customer.ID(), now)
	return nil
}

// ConfirmByShop applies a shop decision. The note, when given, replaces the
// previous one and is cut to MaxShopNoteLength characters. The driver axis
// is left untouched.
func (d *DeliveryRequest) ConfirmByShop(
	shop kernel.Actor,
	action ConfirmationAction,
	note string,
	now time.Time,
) error {
	if err := RequireLinkedShop(shop); err != nil {
		return err
	}
	if !d.shop.BelongsTo(shop.ShopID()) {
		return errs.NewPermissionDeniedError("this order does not belong to your shop")
	}

	next, err := d.confirmation.Apply(action)
	if err != nil {
		return err
	}

	d.confirmation = next
	d.confirmedAt = &now
	if note != "" {
		d.shopNote = normalize.Truncate(note, MaxShopNoteLength)
	}
	d.updatedAt = now
	d.record(EventConfirmationChanged, shop.ID(), now)
	return nil
}

// RequireLinkedShop fails unless actor is a shop bound to a shop id.
func RequireLinkedShop(actor kernel.Actor) error {
	if err := actor.RequireRole(kernel.Shop, "access this resource"); err != nil {
		return err
	}
	if actor.ShopID() == "" {
		return errs.NewValueIsRequiredErrorWithCause(
			"shopId",
			errors.New("shop account is missing shopId mapping"),
		)
	}
	return nil
}

// PullEvents returns the recorded events and clears them.
func (d *DeliveryRequest) PullEvents() []Event {
	events := d.events
	d.events = nil
	return events
}

func (d *DeliveryRequest) requireAssignee(driver kernel.Actor, action string) error {
	if err := driver.RequireRole(kernel.Driver, action); err != nil {
		return err
	}
	if !d.IsAssignedTo(driver.ID()) {
		return errs.NewPermissionDeniedError("not your assignment")
	}
	return nil
}

func (d *DeliveryRequest) record(eventType EventType, actorID kernel.UUID, at time.Time) {
	var driverID *kernel.UUID
	if d.driverID != nil {
		id := *d.driverID
		driverID = &id
	}

	d.events = append(d.events, Event{
		Type:         eventType,
		DeliveryID:   d.id,
		ActorID:      actorID,
		Status:       d.status,
		Confirmation: d.confirmation,
		DriverID:     driverID,
		ShopID:       d.shop.ID(),
		OccurredAt:   at,
	})
}

func (d *DeliveryRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *DeliveryRequest) setText(param, value string, dst *string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return errs.NewValueIsRequiredError(param)
	}
	*dst = trimmed
	return nil
}

func (d *DeliveryRequest) setShop(shop ShopRef) error {
	if shop.Name() == "" || shop.Address() == "" {
		return errs.NewValueIsRequiredErrorWithCause("shop", errors.New("shopName and shopAddress are required"))
	}
	return nil
}

func (d *DeliveryRequest) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%v is negative", price))
	}
	return nil
}
