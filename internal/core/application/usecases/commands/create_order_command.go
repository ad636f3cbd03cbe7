package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNumberIsRequired  = errors.New("order number is required")
	ErrCustomerNameIsRequired = errors.New("customer name is required")
	ErrItemsAreRequired       = errors.New("at least one item is required")
)

// OrderItemSpec carries one order line as submitted by the caller.
// The handler turns it into a validated domain item.
type OrderItemSpec struct {
	Name      string
	Quantity  int
	UnitPrice kernel.Money
	Options   []string
	Notes     string
}

// CreateOrderCommand represents a request to register a new order.
// Encapsulates the order lines, charges, and payment details.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), "ORD-00000001", order.TypeDelivery, "Alice",
//	    items, charges, payment, "ring the bell",
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	number              string
	orderType           order.Type
	customerName        string
	items               []OrderItemSpec
	charges             order.Charges
	payment             order.Payment
	specialInstructions string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the ID, number, type, customer name, and items are present;
// the handler validates the individual lines when building domain items.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	number string,
	orderType order.Type,
	customerName string,
	items []OrderItemSpec,
	charges order.Charges,
	payment order.Payment,
	specialInstructions string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		charges:             charges,
		payment:             payment,
		specialInstructions: specialInstructions,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setNumber(number),
		orderCommand.setOrderType(orderType),
		orderCommand.setCustomerName(customerName),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Number returns the human-facing order number.
func (c CreateOrderCommand) Number() string {
	return c.number
}

// OrderType returns whether the order is pickup or delivery.
func (c CreateOrderCommand) OrderType() order.Type {
	return c.orderType
}

// CustomerName returns the ordering customer's name.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// Items returns the submitted order lines.
func (c CreateOrderCommand) Items() []OrderItemSpec {
	return c.items
}

// Charges returns the submitted charge breakdown.
func (c CreateOrderCommand) Charges() order.Charges {
	return c.charges
}

// Payment returns the submitted payment details.
func (c CreateOrderCommand) Payment() order.Payment {
	return c.payment
}

// SpecialInstructions returns the optional kitchen note.
func (c CreateOrderCommand) SpecialInstructions() string {
	return c.specialInstructions
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setNumber(number string) error {
	if number == "" {
		return ErrOrderNumberIsRequired
	}

	c.number = number
	return nil
}

func (c *CreateOrderCommand) setOrderType(orderType order.Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}

	c.orderType = orderType
	return nil
}

func (c *CreateOrderCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return ErrCustomerNameIsRequired
	}

	c.customerName = customerName
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemSpec) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = items
	return nil
}
