// Package queries contains the read side: listings of delivery requests per
// actor, status counts for reporting, and the shop directory.
package queries

import (
	"errors"
	"fmt"

	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/domain/model/kernel"
	"grameego/internal/pkg/errs"
	"grameego/internal/pkg/guard"
)

var ErrListDeliveriesQueryIsNotConstructed = errors.New(
	"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
)

// Scope selects which requests an actor is listing.
type Scope int

const (
	UnknownScope Scope = iota
	// ScopeMine is a customer's own requests, newest first.
	ScopeMine
	// ScopeAvailable is every Pending request, newest first.
	ScopeAvailable
	// ScopeAssignedToMe is a driver's jobs, most recently updated first.
	ScopeAssignedToMe
	// ScopeShopOrders is the requests routed to a shop, newest first.
	ScopeShopOrders
)

func (s Scope) String() string {
	switch s {
	case ScopeMine:
		return "mine"
	case ScopeAvailable:
		return "available"
	case ScopeAssignedToMe:
		return "assigned-to-me"
	case ScopeShopOrders:
		return "shop-orders"
	case UnknownScope:
	}
	return "unknown"
}

// ListDeliveriesQuery lists requests visible to an actor in a scope.
//
// Example:
//
//	query, err := NewListDeliveriesQuery(driver, ScopeAvailable)
//	if err != nil {
//	    return err // permission denied for non-drivers
//	}
//	jobs, err := handler.Handle(ctx, query)
type ListDeliveriesQuery struct {
	actor kernel.Actor
	scope Scope

	guard guard.ConstructorGuard
}

func NewListDeliveriesQuery(actor kernel.Actor, scope Scope) (ListDeliveriesQuery, error) {
	var err error
	switch scope {
	case ScopeMine:
		err = actor.RequireRole(kernel.Customer, "view their requests")
	case ScopeAvailable:
		err = actor.RequireRole(kernel.Driver, "view available requests")
	case ScopeAssignedToMe:
		err = actor.RequireRole(kernel.Driver, "view assigned jobs")
	case ScopeShopOrders:
		err = delivery.RequireLinkedShop(actor)
	case UnknownScope:
		fallthrough
	default:
		err = errs.NewValueIsInvalidErrorWithCause("scope", fmt.Errorf("%d is not a valid scope", scope))
	}
	if err != nil {
		return ListDeliveriesQuery{}, err
	}

	return ListDeliveriesQuery{
		actor: actor,
		scope: scope,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

func (q ListDeliveriesQuery) Actor() kernel.Actor { return q.actor }
func (q ListDeliveriesQuery) Scope() Scope        { return q.scope }
