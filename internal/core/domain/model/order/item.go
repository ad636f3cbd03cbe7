package order

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

const (
	// itemMinQuantity is the smallest quantity a single line item may carry.
	itemMinQuantity = 1
	// itemMaxQuantity caps a single line item; larger purchases are split
	// across lines so kitchen tickets stay readable.
	itemMaxQuantity = 100
)

// Item is a value object describing a single line of an order: a named
// product, how many units were bought, the unit price, and any customer
// options or notes attached to the line.
//
// Items are immutable once constructed. The delivery record snapshots the
// order's items at creation time, so drivers see the lines exactly as they
// were when the delivery was cut.
type Item struct {
	name      string
	quantity  int
	unitPrice kernel.Money
	options   []string
	notes     string
}

// NewItem creates a validated order line.
//
// Business rules:
//   - name must be non-empty
//   - quantity must be within [1, 100]
//   - unitPrice must be a constructed Money (non-negative by construction)
//
// Options and notes are free-form and may be empty.
func NewItem(name string, quantity int, unitPrice kernel.Money, options []string, notes string) (Item, error) {
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity < itemMinQuantity || quantity > itemMaxQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, itemMinQuantity, itemMaxQuantity)
	}

	item := Item{
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
		notes:     notes,
	}
	if len(options) > 0 {
		item.options = make([]string, len(options))
		copy(item.options, options)
	}
	return item, nil
}

// Name returns the product name of the line.
func (i Item) Name() string {
	return i.name
}

// Quantity returns how many units the line covers.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price of a single unit.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Options returns a copy of the customer options attached to the line.
func (i Item) Options() []string {
	if len(i.options) == 0 {
		return nil
	}
	out := make([]string, len(i.options))
	copy(out, i.options)
	return out
}

// Notes returns the free-form note attached to the line.
func (i Item) Notes() string {
	return i.notes
}

// LineTotal returns the unit price multiplied by the quantity.
func (i Item) LineTotal() kernel.Money {
	return i.unitPrice.Mul(i.quantity)
}

// Validate ensures the Item was created through NewItem.
// The zero value carries an empty name, which is invalid.
func (i Item) Validate() error {
	if i.name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	if i.quantity < itemMinQuantity || i.quantity > itemMaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", i.quantity, itemMinQuantity, itemMaxQuantity)
	}
	return nil
}
