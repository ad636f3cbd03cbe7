package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
	// ErrOrderNumberIsRequired is returned when attempting to create an order without a number.
	ErrOrderNumberIsRequired = errs.NewValueIsRequiredError("order number")
	// ErrCustomerNameIsRequired is returned when attempting to create an order without a customer.
	ErrCustomerNameIsRequired = errs.NewValueIsRequiredError("customer name")
	// ErrItemsAreRequired is returned when attempting to create an order with no line items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// Order represents a customer purchase request in the system. It is the
// aggregate root that manages the order lifecycle from creation through
// preparation to completion or cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty order number
//   - The order number and creation time are immutable
//   - Must carry at least one line item
//   - Status transitions follow the forward-only rules in Status
//   - Orders are never deleted; terminal states end the lifecycle
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// number is the human-facing order number, unique and immutable
	number string

	// orderType says whether the customer picks the order up or it is delivered
	orderType Type

	// status represents the current state in the order lifecycle
	status Status

	// customerName identifies the purchasing customer
	customerName string

	// items are the order lines, in the sequence the customer entered them
	items []Item

	// charges is the monetary breakdown (subtotal, tax, fee, tip)
	charges Charges

	// payment mirrors the external payment outcome
	payment Payment

	// createdAt is stamped once at creation
	createdAt time.Time

	// estimatedReadyTime is an optional kitchen estimate
	estimatedReadyTime *time.Time

	// specialInstructions is an optional free-form customer note
	specialInstructions string

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Pending status. This is the only way to
// create a fresh order, ensuring all business invariants hold from the start.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - number: unique human-facing order number (must be non-empty)
//   - orderType: Pickup or Delivery
//   - customerName: purchasing customer (must be non-empty)
//   - items: at least one validated line item
//   - charges: monetary breakdown (components are non-negative by construction)
//   - payment: method and settlement status
//   - specialInstructions: optional free-form note
//
// Returns the created order, or a joined validation error if any parameter is
// invalid. The creation time is stamped once and never changes.
func NewOrder(
	id kernel.UUID,
	number string,
	orderType Type,
	customerName string,
	items []Item,
	charges Charges,
	payment Payment,
	specialInstructions string,
) (*Order, error) {
	o := &Order{
		status:              Pending,
		charges:             charges,
		specialInstructions: specialInstructions,
		createdAt:           time.Now().UTC(),
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setOrderType(orderType),
		o.setCustomerName(customerName),
		o.setItems(items),
		o.setPayment(payment),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder, which always starts in Pending, this constructor restores
// the order to its previously persisted status and timestamps. The restored
// order behaves identically to one created through normal domain operations.
func RestoreOrder(
	id kernel.UUID,
	number string,
	orderType Type,
	status Status,
	customerName string,
	items []Item,
	charges Charges,
	payment Payment,
	specialInstructions string,
	createdAt time.Time,
	estimatedReadyTime *time.Time,
) (*Order, error) {
	o := &Order{
		charges:             charges,
		specialInstructions: specialInstructions,
		createdAt:           createdAt,
		estimatedReadyTime:  estimatedReadyTime,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setOrderType(orderType),
		o.setStatus(status),
		o.setCustomerName(customerName),
		o.setItems(items),
		o.setPayment(payment),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// This method should be called when reconstructing orders from persistence
// to ensure data integrity.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the immutable human-facing order number.
func (o *Order) Number() string {
	return o.number
}

// OrderType returns whether the order is for pickup or delivery.
func (o *Order) OrderType() Type {
	return o.orderType
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CustomerName returns the purchasing customer's name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Items returns a copy of the order lines in their original sequence.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// Charges returns the monetary breakdown of the order.
func (o *Order) Charges() Charges {
	return o.charges
}

// Payment returns the mirrored payment method and status.
func (o *Order) Payment() Payment {
	return o.payment
}

// CreatedAt returns the immutable creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// EstimatedReadyTime returns the optional kitchen estimate.
// Returns nil when no estimate has been set.
func (o *Order) EstimatedReadyTime() *time.Time {
	return o.estimatedReadyTime
}

// SpecialInstructions returns the optional customer note.
func (o *Order) SpecialInstructions() string {
	return o.specialInstructions
}

// RequiresDelivery reports whether a Delivery record should exist for this order.
func (o *Order) RequiresDelivery() bool {
	return o.orderType == TypeDelivery
}

// Accept moves the order from Pending to Confirmed, representing merchant
// acceptance. From any other status it fails with an InvalidTransitionError
// and leaves the order unchanged.
func (o *Order) Accept() error {
	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Reject moves the order from Pending to Cancelled, representing merchant
// rejection before acceptance. From any other status it fails with an
// InvalidTransitionError and leaves the order unchanged.
func (o *Order) Reject() error {
	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Advance moves the order one step forward along the preparation chain:
// Confirmed -> Preparing -> Ready -> Completed.
//
// Calling Advance on a Pending or terminal order fails with an
// InvalidTransitionError and never mutates state, so repeated calls on a
// terminal order always produce the same error.
//
// Entering Completed is the signal that the order side of a delivery is
// fulfilled; the caller may notify the delivery, but this method never
// mutates it.
func (o *Order) Advance() error {
	newStatus, err := o.status.Next()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// SetEstimatedReadyTime records the kitchen's estimate for when the order
// will be ready. Estimates on terminal orders are meaningless and rejected.
func (o *Order) SetEstimatedReadyTime(t time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionError("order", o.status.String(), "an estimated ready time")
	}
	o.estimatedReadyTime = &t
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setNumber validates and sets the immutable order number.
// This is a private method used only during construction.
func (o *Order) setNumber(number string) error {
	if number == "" {
		return ErrOrderNumberIsRequired
	}
	o.number = number
	return nil
}

// setOrderType validates and sets the fulfillment type.
// This is a private method used only during construction.
func (o *Order) setOrderType(orderType Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	o.orderType = orderType
	return nil
}

// setStatus validates and sets the status.
// Used during restoration to establish the persisted lifecycle state.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setCustomerName validates and sets the customer name.
// This is a private method used only during construction.
func (o *Order) setCustomerName(customerName string) error {
	if customerName == "" {
		return ErrCustomerNameIsRequired
	}
	o.customerName = customerName
	return nil
}

// setItems validates and sets the order lines.
// At least one valid item is required.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

// setPayment validates and sets the payment mirror.
// This is a private method used only during construction.
func (o *Order) setPayment(payment Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	o.payment = payment
	return nil
}
