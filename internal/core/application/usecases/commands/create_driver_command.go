package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateDriverCommandIsNotConstructed = errors.New(
		"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
	)
	ErrDriverNameIsRequired  = errors.New("driver name is required")
	ErrDriverPhoneIsRequired = errors.New("driver phone is required")
)

// CreateDriverCommand represents a request to register a new driver in the
// fleet.
type CreateDriverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	name     string
	phone    string
	rating   float64
	vehicle  driver.Vehicle

	guard guard.ConstructorGuard
}

// NewCreateDriverCommand creates a command to register a driver.
// The vehicle must be valid; the rating range is validated by the driver
// aggregate in the handler.
func NewCreateDriverCommand(
	driverID kernel.UUID,
	name string,
	phone string,
	rating float64,
	vehicle driver.Vehicle,
) (CreateDriverCommand, error) {
	cmd := CreateDriverCommand{
		rating: rating,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setName(name),
		cmd.setPhone(phone),
		cmd.setVehicle(vehicle),
	); err != nil {
		return CreateDriverCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

// DriverID returns the unique identifier for the new driver.
func (c CreateDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Name returns the driver's name.
func (c CreateDriverCommand) Name() string {
	return c.name
}

// Phone returns the driver's contact number.
func (c CreateDriverCommand) Phone() string {
	return c.phone
}

// Rating returns the driver's initial rating.
func (c CreateDriverCommand) Rating() float64 {
	return c.rating
}

// Vehicle returns the driver's vehicle.
func (c CreateDriverCommand) Vehicle() driver.Vehicle {
	return c.vehicle
}

func (c *CreateDriverCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *CreateDriverCommand) setName(name string) error {
	if name == "" {
		return ErrDriverNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateDriverCommand) setPhone(phone string) error {
	if phone == "" {
		return ErrDriverPhoneIsRequired
	}

	c.phone = phone
	return nil
}

func (c *CreateDriverCommand) setVehicle(vehicle driver.Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}

	c.vehicle = vehicle
	return nil
}
