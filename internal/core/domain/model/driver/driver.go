package driver

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	// driverMinRating is the lowest rating a driver can hold.
	driverMinRating = 0.0
	// driverMaxRating is the highest rating a driver can hold.
	driverMaxRating = 5.0
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create a driver without a phone.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver constructor")
	// ErrDriverUnavailable is returned when an assignment is attempted on a
	// driver that is Busy or Offline.
	ErrDriverUnavailable = errors.New("driver is unavailable")
	// ErrNoActiveDeliveries is returned when releasing a driver that carries
	// no active deliveries.
	ErrNoActiveDeliveries = errors.New("driver has no active deliveries")
	// ErrDriverHasActiveDeliveries is returned when toggling availability
	// while the driver still carries active deliveries.
	ErrDriverHasActiveDeliveries = errors.New("driver has active deliveries")
)

// Driver represents a delivery driver in the system.
// It is an aggregate root that manages driver identity, availability, and
// delivery load accounting.
//
// Business rules:
//   - Driver must have a valid UUID, non-empty name and phone, a rating
//     within [0, 5], and a valid vehicle
//   - Busy exactly while currentDeliveries > 0; the load drops back to zero
//     and the driver returns to Available when deliveries complete or fail
//   - totalDeliveries counts completed deliveries only; failed deliveries
//     release the driver without incrementing it
//   - Offline is entered and left only while the load is zero, and Offline
//     drivers are never selectable for assignment
type Driver struct {
	// id uniquely identifies the driver
	id kernel.UUID
	// name is the human-readable name of the driver
	name string
	// phone is the driver's contact number
	phone string
	// status is the availability state, kept consistent with the load
	status Status
	// currentDeliveries is the number of active deliveries bound to the driver
	currentDeliveries int
	// totalDeliveries counts deliveries the driver completed
	totalDeliveries int
	// rating is the driver's quality score in [0, 5]
	rating float64
	// vehicle describes what the driver rides
	vehicle Vehicle
	// guard ensures the driver was properly constructed
	guard guard.ConstructorGuard
}

// NewDriver creates a new Driver with the specified parameters.
// This is the only way to create a fresh driver instance.
//
// A new driver starts Available with no active deliveries and no completed
// delivery history.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: human-readable name (must be non-empty)
//   - phone: contact number (must be non-empty)
//   - rating: quality score (must be within [0, 5])
//   - vehicle: the driver's vehicle (must be valid)
//
// Returns the created driver, or a joined validation error if any parameter
// is invalid.
func NewDriver(id kernel.UUID, name, phone string, rating float64, vehicle Vehicle) (*Driver, error) {
	driver := &Driver{
		status: Available,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driver.setID(id),
		driver.setName(name),
		driver.setPhone(phone),
		driver.setRating(rating),
		driver.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	return driver, nil
}

// RestoreDriver reconstructs a Driver aggregate from persistent storage.
// Unlike NewDriver, which always starts Available and unloaded, this
// constructor restores the persisted status, load, and delivery history.
//
// Business rules:
//   - The persisted status must be valid
//   - Status and load must be consistent: Busy iff currentDeliveries > 0,
//     and Offline only with a zero load
//   - Delivery counters must be non-negative
func RestoreDriver(
	id kernel.UUID,
	name string,
	phone string,
	status Status,
	currentDeliveries int,
	totalDeliveries int,
	rating float64,
	vehicle Vehicle,
) (*Driver, error) {
	driver := &Driver{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driver.setID(id),
		driver.setName(name),
		driver.setPhone(phone),
		driver.setLoad(status, currentDeliveries),
		driver.setTotalDeliveries(totalDeliveries),
		driver.setRating(rating),
		driver.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	return driver, nil
}

// IsEqual compares two drivers by their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// Validate checks if the Driver was properly constructed through a
// constructor. The zero value of Driver is invalid.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// ID returns the unique identifier of the driver.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the human-readable name of the driver.
func (d *Driver) Name() string {
	return d.name
}

// Phone returns the driver's contact number.
func (d *Driver) Phone() string {
	return d.phone
}

// Status returns the driver's availability state.
func (d *Driver) Status() Status {
	return d.status
}

// CurrentDeliveries returns the number of active deliveries bound to the driver.
func (d *Driver) CurrentDeliveries() int {
	return d.currentDeliveries
}

// TotalDeliveries returns how many deliveries the driver completed.
// Failed deliveries are not counted.
func (d *Driver) TotalDeliveries() int {
	return d.totalDeliveries
}

// Rating returns the driver's quality score in [0, 5].
func (d *Driver) Rating() float64 {
	return d.rating
}

// Vehicle returns the driver's vehicle.
func (d *Driver) Vehicle() Vehicle {
	return d.vehicle
}

// IsSelectable reports whether the driver may receive a new assignment.
func (d *Driver) IsSelectable() bool {
	return d.status.IsSelectable()
}

// TakeDelivery binds one more active delivery to the driver.
//
// Only an Available driver can take a delivery; Busy and Offline drivers
// fail with ErrDriverUnavailable. Taking a delivery moves the driver to Busy.
//
// The delivery side of the binding is handled by the delivery aggregate; see
// the assignment domain service for the coordinated operation.
func (d *Driver) TakeDelivery() error {
	if !d.status.IsSelectable() {
		return fmt.Errorf("%w: %s driver cannot take a delivery", ErrDriverUnavailable, d.status.String())
	}

	d.currentDeliveries++
	d.status = Busy
	return nil
}

// ReleaseDelivery unbinds one active delivery from the driver, after the
// delivery reached a terminal state.
//
// Parameters:
//   - completed: true when the delivery was delivered (counted toward
//     totalDeliveries), false when it failed (released without counting)
//
// When the load drops to zero the driver returns to Available. Releasing a
// driver with no active deliveries fails with ErrNoActiveDeliveries.
func (d *Driver) ReleaseDelivery(completed bool) error {
	if d.currentDeliveries == 0 {
		return ErrNoActiveDeliveries
	}

	d.currentDeliveries--
	if completed {
		d.totalDeliveries++
	}
	if d.currentDeliveries == 0 {
		d.status = Available
	}
	return nil
}

// SetAvailable puts the driver back on shift.
//
// Valid only from Offline; a Busy driver is already on shift and its status
// is derived from the load. Calling it on an Available driver is a no-op.
func (d *Driver) SetAvailable() error {
	if d.status == Available {
		return nil
	}
	if d.currentDeliveries > 0 {
		return ErrDriverHasActiveDeliveries
	}

	d.status = Available
	return nil
}

// SetOffline takes the driver off shift.
//
// Valid only while the driver carries no active deliveries: a Busy driver
// must finish or fail its deliveries first. Calling it on an Offline driver
// is a no-op.
func (d *Driver) SetOffline() error {
	if d.status == Offline {
		return nil
	}
	if d.currentDeliveries > 0 {
		return ErrDriverHasActiveDeliveries
	}

	d.status = Offline
	return nil
}

// setID sets the driver's unique identifier with validation.
// This is an internal setter used during driver construction.
func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	d.id = id
	return nil
}

// setName sets the driver's name with validation.
// This is an internal setter used during driver construction.
func (d *Driver) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	d.name = name
	return nil
}

// setPhone sets the driver's contact number with validation.
// This is an internal setter used during driver construction.
func (d *Driver) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}

	d.phone = phone
	return nil
}

// setLoad sets the persisted status and active delivery count, validating
// their consistency. Used during driver restoration.
func (d *Driver) setLoad(status Status, currentDeliveries int) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if currentDeliveries < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"current deliveries",
			fmt.Errorf("%d is negative", currentDeliveries),
		)
	}

	busy := currentDeliveries > 0
	if busy != (status == Busy) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s driver cannot carry %d active deliveries", status.String(), currentDeliveries),
		)
	}

	d.status = status
	d.currentDeliveries = currentDeliveries
	return nil
}

// setTotalDeliveries sets the completed delivery counter with validation.
// Used during driver restoration.
func (d *Driver) setTotalDeliveries(totalDeliveries int) error {
	if totalDeliveries < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"total deliveries",
			fmt.Errorf("%d is negative", totalDeliveries),
		)
	}

	d.totalDeliveries = totalDeliveries
	return nil
}

// setRating sets the driver's rating with range validation.
// This is an internal setter used during driver construction.
func (d *Driver) setRating(rating float64) error {
	if rating < driverMinRating || rating > driverMaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, driverMinRating, driverMaxRating)
	}

	d.rating = rating
	return nil
}

// setVehicle sets the driver's vehicle with validation.
// This is an internal setter used during driver construction.
func (d *Driver) setVehicle(vehicle Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}

	d.vehicle = vehicle
	return nil
}
