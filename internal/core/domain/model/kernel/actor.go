package kernel

import (
	"errors"
	"fmt"
	"strings"

	"grameego/internal/pkg/errs"
	"grameego/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role is the closed set of actor classes that may touch a delivery request.
type Role int

const (
	UnknownRole Role = iota
	Customer
	Driver
	Shop
)

func getRoleStrings() map[Role]string {
	//nolint:exhaustive // UnknownRole has no wire form
	return map[Role]string{
		Customer: "customer",
		Driver:   "driver",
		Shop:     "shop",
	}
}

// ParseRole maps the wire name of a role ("customer", "driver", "shop").
func ParseRole(s string) (Role, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for role, name := range getRoleStrings() {
		if name == needle {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Actor is the verified identity attached to every operation. It comes from
// the identity provider and is trusted as is.
type Actor struct {
	id     UUID
	role   Role
	name   string
	shopID string
	guard  guard.ConstructorGuard
}

// NewActor builds an actor. shopID is only meaningful for shops and may be
// empty for a shop account that has not been linked yet.
func NewActor(id UUID, role Role, name, shopID string) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:     id,
		role:   role,
		name:   strings.TrimSpace(name),
		shopID: strings.TrimSpace(shopID),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (a Actor) ID() UUID       { return a.id }
func (a Actor) Role() Role     { return a.role }
func (a Actor) Name() string   { return a.name }
func (a Actor) ShopID() string { return a.shopID }

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// RequireRole fails with a permission error unless the actor has role.
// action completes the sentence "only <role>s can <action>".
func (a Actor) RequireRole(role Role, action string) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.role != role {
		return errs.NewPermissionDeniedError(fmt.Sprintf("only %ss can %s", role, action))
	}
	return nil
}
