package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateDeliveryCommandIsNotConstructed = errors.New(
		"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
	)
	ErrDeliveryNumberIsRequired = errors.New("delivery number is required")
)

// CreateDeliveryCommand represents a request to cut a delivery record for a
// delivery-type order. The items snapshot and payment mirror are taken from
// the order itself; the command carries the logistics details.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID          kernel.UUID
	number              string
	orderID             kernel.UUID
	customer            delivery.Contact
	restaurant          delivery.Contact
	distanceKm          float64
	estimatedMinutes    int
	scheduledTime       *time.Time
	specialInstructions string

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to cut a delivery for an order.
// Both contacts must be valid; the route estimates are validated by the
// delivery aggregate in the handler.
func NewCreateDeliveryCommand(
	deliveryID kernel.UUID,
	number string,
	orderID kernel.UUID,
	customer delivery.Contact,
	restaurant delivery.Contact,
	distanceKm float64,
	estimatedMinutes int,
	scheduledTime *time.Time,
	specialInstructions string,
) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		distanceKm:          distanceKm,
		estimatedMinutes:    estimatedMinutes,
		scheduledTime:       scheduledTime,
		specialInstructions: specialInstructions,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setNumber(number),
		cmd.setOrderID(orderID),
		cmd.setCustomer(customer),
		cmd.setRestaurant(restaurant),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the unique identifier for the new delivery.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Number returns the human-facing delivery number.
func (c CreateDeliveryCommand) Number() string {
	return c.number
}

// OrderID returns the identifier of the order being transported.
func (c CreateDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Customer returns the drop-off contact.
func (c CreateDeliveryCommand) Customer() delivery.Contact {
	return c.customer
}

// Restaurant returns the pick-up contact.
func (c CreateDeliveryCommand) Restaurant() delivery.Contact {
	return c.restaurant
}

// DistanceKm returns the planned route distance.
func (c CreateDeliveryCommand) DistanceKm() float64 {
	return c.distanceKm
}

// EstimatedMinutes returns the planned transport duration.
func (c CreateDeliveryCommand) EstimatedMinutes() int {
	return c.estimatedMinutes
}

// ScheduledTime returns the optional promised drop-off time.
func (c CreateDeliveryCommand) ScheduledTime() *time.Time {
	return c.scheduledTime
}

// SpecialInstructions returns the optional driver note.
func (c CreateDeliveryCommand) SpecialInstructions() string {
	return c.specialInstructions
}

func (c *CreateDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *CreateDeliveryCommand) setNumber(number string) error {
	if number == "" {
		return ErrDeliveryNumberIsRequired
	}

	c.number = number
	return nil
}

func (c *CreateDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateDeliveryCommand) setCustomer(customer delivery.Contact) error {
	if err := customer.Validate(); err != nil {
		return err
	}

	c.customer = customer
	return nil
}

func (c *CreateDeliveryCommand) setRestaurant(restaurant delivery.Contact) error {
	if err := restaurant.Validate(); err != nil {
		return err
	}

	c.restaurant = restaurant
	return nil
}
