package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Money is a value object that represents a non-negative monetary amount in
// cents. Order totals, taxes, fees, and tips are all expressed as Money.
//
// Storing cents as an integer avoids floating point rounding in financial
// arithmetic. The zero value (0 cents) is a valid amount, so Money carries no
// constructor guard; negative amounts are rejected at construction.
//
// Money is immutable: arithmetic methods return a new Money.
//
// Example usage:
//
//	subtotal, _ := kernel.NewMoney(1250)           // $12.50
//	tax, _ := kernel.NewMoney(100)                 // $1.00
//	total := subtotal.Add(tax)
//	fmt.Println(total.String())                    // "13.50"
type Money struct {
	cents int64
}

// NewMoney creates a Money amount from cents.
// Returns an error if cents is negative; monetary fields on orders and
// deliveries are non-negative by invariant.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money amount",
			fmt.Errorf("%d cents is negative", cents),
		)
	}
	return Money{cents: cents}, nil
}

// MustNewMoney creates a Money amount from cents and panics if cents is
// negative. Intended for constants and tests where the amount is known valid.
func MustNewMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts.
// Non-negative inputs always produce a non-negative sum.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Mul returns the amount multiplied by a non-negative factor.
// Used for line totals (unit price times quantity).
func (m Money) Mul(factor int) Money {
	if factor < 0 {
		factor = 0
	}
	return Money{cents: m.cents * int64(factor)}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String returns the amount in decimal notation with two fractional digits,
// e.g. "13.50". It implements the fmt.Stringer interface.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
