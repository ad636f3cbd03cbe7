package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSetDriverStatusCommandIsNotConstructed = errors.New(
	"SetDriverStatusCommand must be created via NewSetDriverStatusCommand constructor",
)

// SetDriverStatusCommand represents a request to toggle a driver's shift
// state between Available and Offline. Busy is derived from load and cannot
// be requested directly.
type SetDriverStatusCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	status   driver.Status

	guard guard.ConstructorGuard
}

// NewSetDriverStatusCommand creates a command to toggle a driver's shift state.
// Only Available and Offline are accepted as targets.
func NewSetDriverStatusCommand(driverID kernel.UUID, status driver.Status) (SetDriverStatusCommand, error) {
	cmd := SetDriverStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setStatus(status),
	); err != nil {
		return SetDriverStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetDriverStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverStatusCommandIsNotConstructed)
}

// DriverID returns the identifier of the driver to toggle.
func (c SetDriverStatusCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Status returns the requested shift state.
func (c SetDriverStatusCommand) Status() driver.Status {
	return c.status
}

func (c *SetDriverStatusCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *SetDriverStatusCommand) setStatus(status driver.Status) error {
	if status != driver.Available && status != driver.Offline {
		return errs.NewValueIsInvalidError("status must be Available or Offline")
	}

	c.status = status
	return nil
}
