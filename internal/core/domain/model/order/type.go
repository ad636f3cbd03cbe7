package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Type distinguishes how an order is fulfilled: the customer picks it up, or a
// delivery is created for it and dispatched through the driver fleet.
type Type int

const (
	// TypeUnknown represents an invalid or undefined order type.
	TypeUnknown Type = iota

	// TypePickup means the customer collects the order themselves.
	// Pickup orders never have an associated delivery.
	TypePickup

	// TypeDelivery means the order is transported to the customer.
	// Exactly one delivery may be created for an order of this type.
	TypeDelivery
)

// getTypeStrings returns a map of Type values to their string representations.
func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:  "Unknown",
		TypePickup:   "Pickup",
		TypeDelivery: "Delivery",
	}
}

// TypeFromString parses an order type from its string name, case-insensitively.
// Unknown names produce a validation error.
func TypeFromString(value string) (Type, error) {
	switch {
	case strings.EqualFold(value, "Pickup"):
		return TypePickup, nil
	case strings.EqualFold(value, "Delivery"):
		return TypeDelivery, nil
	default:
		return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("order type is invalid", fmt.Errorf("%q is not a valid order type", value))
	}
}

// Validate checks if the Type value is valid.
// Valid types are Pickup and Delivery; TypeUnknown (0) is invalid.
func (t Type) Validate() error {
	if t != TypePickup && t != TypeDelivery {
		return errs.NewValueIsInvalidErrorWithCause("order type is invalid", fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// String returns the human-readable name of the order type.
// It implements the fmt.Stringer interface and is safe to call on any value.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}
