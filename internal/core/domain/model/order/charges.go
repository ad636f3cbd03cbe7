package order

import "fulfillment/internal/core/domain/model/kernel"

// Charges is a value object bundling the monetary breakdown of an order.
// Every component is a kernel.Money, so non-negativity is guaranteed by
// construction, and the total is always the sum of the components rather than
// a separately stored figure that could drift.
type Charges struct {
	subtotal    kernel.Money
	tax         kernel.Money
	deliveryFee kernel.Money
	tip         kernel.Money
}

// NewCharges creates the monetary breakdown for an order.
// All components are already validated Money values, so no error is possible.
func NewCharges(subtotal, tax, deliveryFee, tip kernel.Money) Charges {
	return Charges{
		subtotal:    subtotal,
		tax:         tax,
		deliveryFee: deliveryFee,
		tip:         tip,
	}
}

// Subtotal returns the pre-tax item total.
func (c Charges) Subtotal() kernel.Money {
	return c.subtotal
}

// Tax returns the tax component.
func (c Charges) Tax() kernel.Money {
	return c.tax
}

// DeliveryFee returns the delivery fee component.
// Zero for pickup orders.
func (c Charges) DeliveryFee() kernel.Money {
	return c.deliveryFee
}

// Tip returns the tip component.
func (c Charges) Tip() kernel.Money {
	return c.tip
}

// Total returns the sum of all components.
func (c Charges) Total() kernel.Money {
	return c.subtotal.Add(c.tax).Add(c.deliveryFee).Add(c.tip)
}
