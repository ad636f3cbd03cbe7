package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrAssignPendingDeliveryCommandIsNotConstructed = errors.New(
	"AssignPendingDeliveryCommand must be created via NewAssignPendingDeliveryCommand constructor",
)

// AssignPendingDeliveryCommand represents a request to automatically pair
// the oldest pending delivery with the best available driver. It carries no
// parameters; the selection is made from current fleet state.
type AssignPendingDeliveryCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignPendingDeliveryCommand creates a command for automatic dispatch.
func NewAssignPendingDeliveryCommand() AssignPendingDeliveryCommand {
	return AssignPendingDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c AssignPendingDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignPendingDeliveryCommandIsNotConstructed)
}
