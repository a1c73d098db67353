// Package guard provides ConstructorGuard, a marker embedded in value objects,
// entities and commands so that zero values created without their constructor
// fail validation.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing value was built by its constructor.
//
// Example usage:
//
//	var ErrShopRefNotConstructed = errors.New("ShopRef must be created via NewShopRef")
//
//	type ShopRef struct {
//	    name  string
//	    guard guard.ConstructorGuard
//	}
//
//	func (s ShopRef) Validate() error {
//	    return s.guard.Validate(ErrShopRefNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks a value as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guarded value was not created through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
