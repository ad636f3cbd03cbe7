package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand represents a request to confirm a pending order,
// optionally promising an estimated ready time.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	estimatedReadyTime *time.Time

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command to confirm a pending order.
// The estimated ready time is optional; pass nil to leave it unset.
func NewAcceptOrderCommand(orderID kernel.UUID, estimatedReadyTime *time.Time) (AcceptOrderCommand, error) {
	cmd := AcceptOrderCommand{
		estimatedReadyTime: estimatedReadyTime,
		guard:              guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return AcceptOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to confirm.
func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// EstimatedReadyTime returns the promised ready time, or nil if none.
func (c AcceptOrderCommand) EstimatedReadyTime() *time.Time {
	return c.estimatedReadyTime
}

func (c *AcceptOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
