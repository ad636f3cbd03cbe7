package driver

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// VehicleType classifies the driver's vehicle.
type VehicleType int

const (
	// VehicleUnknown represents an invalid or undefined vehicle type.
	VehicleUnknown VehicleType = iota

	// VehicleBicycle is a pedal bicycle.
	VehicleBicycle

	// VehicleScooter is a motor scooter.
	VehicleScooter

	// VehicleCar is a car.
	VehicleCar
)

// getVehicleTypeStrings returns a map of VehicleType values to their string representations.
func getVehicleTypeStrings() map[VehicleType]string {
	return map[VehicleType]string{
		VehicleUnknown: "Unknown",
		VehicleBicycle: "Bicycle",
		VehicleScooter: "Scooter",
		VehicleCar:     "Car",
	}
}

// VehicleTypeFromString parses a vehicle type from its string name,
// case-insensitively. Unknown names produce a validation error.
func VehicleTypeFromString(value string) (VehicleType, error) {
	for vehicleType, name := range getVehicleTypeStrings() {
		if vehicleType != VehicleUnknown && strings.EqualFold(name, value) {
			return vehicleType, nil
		}
	}
	return VehicleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"vehicle type is invalid",
		fmt.Errorf("%q is not a valid vehicle type", value),
	)
}

// Validate checks if the VehicleType value is valid.
func (v VehicleType) Validate() error {
	switch v {
	case VehicleBicycle, VehicleScooter, VehicleCar:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"vehicle type is invalid",
			fmt.Errorf("%d is not a valid vehicle type", v),
		)
	}
}

// String returns the human-readable name of the vehicle type.
func (v VehicleType) String() string {
	if str, ok := getVehicleTypeStrings()[v]; ok {
		return str
	}
	return "Unknown"
}

// Vehicle is a value object describing the driver's vehicle.
// The plate is optional: bicycles carry none.
type Vehicle struct {
	vehicleType VehicleType
	plate       string
}

// NewVehicle creates a validated Vehicle.
// The type must be valid; a plate is required for everything but bicycles.
func NewVehicle(vehicleType VehicleType, plate string) (Vehicle, error) {
	if err := vehicleType.Validate(); err != nil {
		return Vehicle{}, err
	}
	if plate == "" && vehicleType != VehicleBicycle {
		return Vehicle{}, errs.NewValueIsRequiredError("vehicle plate")
	}
	return Vehicle{vehicleType: vehicleType, plate: plate}, nil
}

// Type returns the vehicle classification.
func (v Vehicle) Type() VehicleType {
	return v.vehicleType
}

// Plate returns the registration plate, empty for bicycles.
func (v Vehicle) Plate() string {
	return v.plate
}

// Validate ensures the Vehicle was created through NewVehicle.
// The zero value carries VehicleUnknown, which is invalid.
func (v Vehicle) Validate() error {
	if err := v.vehicleType.Validate(); err != nil {
		return err
	}
	if v.plate == "" && v.vehicleType != VehicleBicycle {
		return errs.NewValueIsRequiredError("vehicle plate")
	}
	return nil
}
