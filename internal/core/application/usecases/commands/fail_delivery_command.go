package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrFailDeliveryCommandIsNotConstructed = errors.New(
		"FailDeliveryCommand must be created via NewFailDeliveryCommand constructor",
	)
	ErrFailureReasonIsRequired = errors.New("failure reason is required")
)

// FailDeliveryCommand represents a request to abandon an active delivery,
// recording why it could not be completed.
type FailDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

// NewFailDeliveryCommand creates a command to fail a delivery.
// The reason is required.
func NewFailDeliveryCommand(deliveryID kernel.UUID, reason string) (FailDeliveryCommand, error) {
	cmd := FailDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setReason(reason),
	); err != nil {
		return FailDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FailDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrFailDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery to fail.
func (c FailDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Reason returns why the delivery is being abandoned.
func (c FailDeliveryCommand) Reason() string {
	return c.reason
}

func (c *FailDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *FailDeliveryCommand) setReason(reason string) error {
	if reason == "" {
		return ErrFailureReasonIsRequired
	}

	c.reason = reason
	return nil
}
