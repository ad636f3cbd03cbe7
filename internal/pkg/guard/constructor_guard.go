// Package guard provides the constructor guard pattern used across the
// fulfillment domain to ensure that value objects, aggregates, commands, and
// queries are only created through their designated constructor functions.
//
// A zero-value struct embedding a ConstructorGuard fails validation, which makes
// it impossible to smuggle an unvalidated Order, Delivery, or Driver into the
// engine by direct struct initialization.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by
// ConstructorGuard.Validate() when a nil error is passed as the validation
// error. This ensures that validation always fails with a meaningful message
// even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard enforces that domain objects are created through their
// constructor functions rather than as zero values.
//
// The guard works by maintaining an internal flag that is only set to true when
// the object is created through the proper constructor. Any attempt to use a
// zero-value struct will fail validation.
//
// Example usage:
//
//	var ErrMoneyNotConstructed = errors.New("Money must be created via NewMoney")
//
//	type Money struct {
//	    cents int64
//	    guard guard.ConstructorGuard
//	}
//
//	func NewMoney(cents int64) (Money, error) {
//	    if cents < 0 {
//	        return Money{}, errors.New("cents cannot be negative")
//	    }
//	    return Money{cents: cents, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (m Money) Validate() error {
//	    return m.guard.Validate(ErrMoneyNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a ConstructorGuard that marks an object as
// properly constructed. Call it in the constructor of every guarded domain
// object.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was properly constructed.
//
// If the object was created as a zero value, the provided validation error is
// returned. If validationError is nil, ErrDefaultConstructorGuard is returned
// instead.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
