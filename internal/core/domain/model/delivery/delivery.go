package delivery

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for delivery operations.
var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not created
	// through the NewDelivery or RestoreDelivery factory methods.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery constructor")
	// ErrDeliveryNumberIsRequired is returned when attempting to create a delivery without a number.
	ErrDeliveryNumberIsRequired = errs.NewValueIsRequiredError("delivery number")
	// ErrFailureReasonIsRequired is returned when failing a delivery without a reason.
	ErrFailureReasonIsRequired = errs.NewValueIsRequiredError("failure reason")
)

// Delivery represents the logistics record tracking transport of an order's
// items to the customer. It is the aggregate root that manages the delivery
// lifecycle and the exclusive binding to a driver.
//
// Delivery follows these invariants:
//   - Must have a valid unique identifier, a non-empty delivery number, and
//     a valid order reference
//   - A driver is bound iff the status is Assigned, PickedUp, or InTransit;
//     entering Delivered or Failed releases the binding
//   - actualPickupTime and actualDeliveryTime are stamped exactly once, on
//     the transition into PickedUp and Delivered respectively
//   - Status transitions follow the forward-only rules in Status
//   - Can only be created through NewDelivery or RestoreDelivery
//
// The Delivery struct uses private fields to ensure encapsulation and
// maintains its invariants through validated methods.
type Delivery struct {
	// id is the unique identifier for the delivery
	id kernel.UUID

	// number is the human-facing delivery number, unique and immutable
	number string

	// orderID references the delivery-type order this record transports
	orderID kernel.UUID

	// status represents the current state in the delivery lifecycle
	status Status

	// customer is the drop-off contact
	customer Contact

	// restaurant is the pick-up contact
	restaurant Contact

	// items is the order-line snapshot taken when the delivery was cut
	items []order.Item

	// driverID is the exclusively bound driver (nil unless status is active)
	driverID *kernel.UUID

	// distanceKm is the planned route distance
	distanceKm float64

	// estimatedMinutes is the planned transport duration
	estimatedMinutes int

	// scheduledTime is the optional promised drop-off time
	scheduledTime *time.Time

	// actualPickupTime is stamped once, entering PickedUp
	actualPickupTime *time.Time

	// actualDeliveryTime is stamped once, entering Delivered
	actualDeliveryTime *time.Time

	// specialInstructions is an optional free-form note for the driver
	specialInstructions string

	// failureReason records why the delivery failed, if it did
	failureReason string

	// payment mirrors the order's payment fields for the driver-facing record
	payment order.Payment

	// createdAt is stamped once at creation
	createdAt time.Time

	// updatedAt tracks the last mutation
	updatedAt time.Time

	// guard ensures the delivery was created via a constructor
	guard guard.ConstructorGuard
}

// NewDelivery creates a new Delivery in Pending status for a delivery-type
// order. This is the only way to create a fresh delivery, ensuring all
// business invariants hold from the start.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - number: unique human-facing delivery number (must be non-empty)
//   - orderID: the order being transported (must be a valid UUID)
//   - customer: drop-off contact (name, phone, address)
//   - restaurant: pick-up contact (name, address)
//   - items: snapshot of the order lines (at least one)
//   - distanceKm: planned route distance (must be non-negative)
//   - estimatedMinutes: planned transport duration (must be non-negative)
//   - scheduledTime: optional promised drop-off time
//   - specialInstructions: optional driver note
//   - payment: payment fields mirrored from the order
//
// Returns the created delivery, or a joined validation error if any parameter
// is invalid. The delivery starts unbound; use a driver assignment to move it
// out of Pending.
func NewDelivery(
	id kernel.UUID,
	number string,
	orderID kernel.UUID,
	customer Contact,
	restaurant Contact,
	items []order.Item,
	distanceKm float64,
	estimatedMinutes int,
	scheduledTime *time.Time,
	specialInstructions string,
	payment order.Payment,
) (*Delivery, error) {
	now := time.Now().UTC()
	d := &Delivery{
		status:              Pending,
		scheduledTime:       scheduledTime,
		specialInstructions: specialInstructions,
		createdAt:           now,
		updatedAt:           now,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setNumber(number),
		d.setOrderID(orderID),
		d.setCustomer(customer),
		d.setRestaurant(restaurant),
		d.setItems(items),
		d.setDistanceKm(distanceKm),
		d.setEstimatedMinutes(estimatedMinutes),
		d.setPayment(payment),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a Delivery aggregate from persistent storage.
// Unlike NewDelivery, which always starts Pending and unbound, this
// constructor restores the delivery to its previously persisted status,
// driver binding, and timestamps.
//
// Business rules:
//   - The persisted status must be valid
//   - A driver must be bound iff the status is active (Assigned, PickedUp,
//     InTransit); any other combination is rejected as corrupt state
func RestoreDelivery(
	id kernel.UUID,
	number string,
	orderID kernel.UUID,
	status Status,
	customer Contact,
	restaurant Contact,
	items []order.Item,
	driverID *kernel.UUID,
	distanceKm float64,
	estimatedMinutes int,
	scheduledTime *time.Time,
	actualPickupTime *time.Time,
	actualDeliveryTime *time.Time,
	specialInstructions string,
	failureReason string,
	payment order.Payment,
	createdAt time.Time,
	updatedAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		scheduledTime:       scheduledTime,
		actualPickupTime:    actualPickupTime,
		actualDeliveryTime:  actualDeliveryTime,
		specialInstructions: specialInstructions,
		failureReason:       failureReason,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setNumber(number),
		d.setOrderID(orderID),
		d.setStatus(status),
		d.setCustomer(customer),
		d.setRestaurant(restaurant),
		d.setItems(items),
		d.setDriverID(status, driverID),
		d.setDistanceKm(distanceKm),
		d.setEstimatedMinutes(estimatedMinutes),
		d.setPayment(payment),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the Delivery instance was properly constructed.
// This method should be called when reconstructing deliveries from
// persistence to ensure data integrity.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// Number returns the immutable human-facing delivery number.
func (d *Delivery) Number() string {
	return d.number
}

// OrderID returns the identifier of the order being transported.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// Status returns the current status of the delivery.
func (d *Delivery) Status() Status {
	return d.status
}

// Customer returns the drop-off contact.
func (d *Delivery) Customer() Contact {
	return d.customer
}

// Restaurant returns the pick-up contact.
func (d *Delivery) Restaurant() Contact {
	return d.restaurant
}

// Items returns a copy of the order-line snapshot.
func (d *Delivery) Items() []order.Item {
	out := make([]order.Item, len(d.items))
	copy(out, d.items)
	return out
}

// DriverID returns the exclusively bound driver's ID.
// Returns nil unless the delivery is in an active state; terminal deliveries
// hold no binding.
func (d *Delivery) DriverID() *kernel.UUID {
	return d.driverID
}

// DistanceKm returns the planned route distance.
func (d *Delivery) DistanceKm() float64 {
	return d.distanceKm
}

// EstimatedMinutes returns the planned transport duration.
func (d *Delivery) EstimatedMinutes() int {
	return d.estimatedMinutes
}

// ScheduledTime returns the optional promised drop-off time.
func (d *Delivery) ScheduledTime() *time.Time {
	return d.scheduledTime
}

// ActualPickupTime returns the moment the driver collected the order.
// Nil until the delivery enters PickedUp.
func (d *Delivery) ActualPickupTime() *time.Time {
	return d.actualPickupTime
}

// ActualDeliveryTime returns the moment the delivery completed.
// Nil until the delivery enters Delivered.
func (d *Delivery) ActualDeliveryTime() *time.Time {
	return d.actualDeliveryTime
}

// SpecialInstructions returns the optional driver note.
func (d *Delivery) SpecialInstructions() string {
	return d.specialInstructions
}

// FailureReason returns why the delivery failed, or empty if it has not.
func (d *Delivery) FailureReason() string {
	return d.failureReason
}

// Payment returns the payment fields mirrored from the order.
func (d *Delivery) Payment() order.Payment {
	return d.payment
}

// CreatedAt returns the immutable creation time.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns the time of the last mutation.
func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// AssignDriver exclusively binds a driver to the delivery and moves it from
// Pending to Assigned.
//
// The caller is responsible for ensuring the driver side of the binding
// (availability check, load increment); see the assignment domain service.
//
// Returns:
//   - nil on successful binding
//   - ErrDeliveryNotPending if the delivery is already assigned or terminal
//   - a validation error if the driver ID is invalid
func (d *Delivery) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	newStatus, err := d.status.Assign()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.driverID = &driverID
	d.touch()
	return nil
}

// Advance moves the delivery one step forward along the transport chain:
// Assigned -> PickedUp -> InTransit -> Delivered.
//
// Entering PickedUp stamps actualPickupTime; entering Delivered stamps
// actualDeliveryTime and releases the driver binding. Both timestamps are
// write-once: if one already exists at stamping time, the call fails with an
// AlreadyRecordedError and nothing is mutated.
//
// Calling Advance on a Pending delivery fails with ErrRequiresAssignment;
// calling it on a terminal delivery fails with an InvalidTransitionError.
// Neither failure mutates state.
//
// Callers that need the released driver (to return its capacity) must read
// DriverID before advancing into Delivered; see the assignment domain service.
func (d *Delivery) Advance() error {
	newStatus, err := d.status.Next()
	if err != nil {
		return err
	}

	switch newStatus {
	case PickedUp:
		if d.actualPickupTime != nil {
			return errs.NewAlreadyRecordedError("actual pickup time")
		}
		now := time.Now().UTC()
		d.actualPickupTime = &now
	case Delivered:
		if d.actualDeliveryTime != nil {
			return errs.NewAlreadyRecordedError("actual delivery time")
		}
		now := time.Now().UTC()
		d.actualDeliveryTime = &now
		d.driverID = nil
	}

	d.status = newStatus
	d.touch()
	return nil
}

// MarkFailed abandons an active delivery, recording the reason, and releases
// the driver binding.
//
// Valid only from Assigned, PickedUp, or InTransit; a Pending delivery stays
// queued instead of failing, and terminal deliveries cannot fail again. The
// reason is required.
//
// Callers that need the released driver (to return its capacity) must read
// DriverID before failing; see the assignment domain service.
func (d *Delivery) MarkFailed(reason string) error {
	if reason == "" {
		return ErrFailureReasonIsRequired
	}

	newStatus, err := d.status.Fail()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.failureReason = reason
	d.driverID = nil
	d.touch()
	return nil
}

// touch updates the mutation timestamp.
func (d *Delivery) touch() {
	d.updatedAt = time.Now().UTC()
}

// setID validates and sets the delivery's unique identifier.
// This is a private method used only during construction.
func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

// setNumber validates and sets the immutable delivery number.
// This is a private method used only during construction.
func (d *Delivery) setNumber(number string) error {
	if number == "" {
		return ErrDeliveryNumberIsRequired
	}
	d.number = number
	return nil
}

// setOrderID validates and sets the order reference.
// This is a private method used only during construction.
func (d *Delivery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	d.orderID = orderID
	return nil
}

// setStatus validates and sets the status.
// Used during restoration to establish the persisted lifecycle state.
func (d *Delivery) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

// setCustomer validates and sets the drop-off contact.
// This is a private method used only during construction.
func (d *Delivery) setCustomer(customer Contact) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	d.customer = customer
	return nil
}

// setRestaurant validates and sets the pick-up contact.
// This is a private method used only during construction.
func (d *Delivery) setRestaurant(restaurant Contact) error {
	if err := restaurant.Validate(); err != nil {
		return err
	}
	d.restaurant = restaurant
	return nil
}

// setItems validates and sets the order-line snapshot.
// At least one valid item is required.
func (d *Delivery) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	d.items = make([]order.Item, len(items))
	copy(d.items, items)
	return nil
}

// setDriverID validates the status/driver consistency and sets the binding.
// Used during restoration; fresh deliveries always start unbound.
func (d *Delivery) setDriverID(status Status, driverID *kernel.UUID) error {
	if err := status.ValidateCanHaveDriver(driverID != nil); err != nil {
		return err
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return err
		}
		id := *driverID
		d.driverID = &id
	}
	return nil
}

// setDistanceKm validates and sets the planned route distance.
// This is a private method used only during construction.
func (d *Delivery) setDistanceKm(distanceKm float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("distance", fmt.Errorf("%f is negative", distanceKm))
	}
	d.distanceKm = distanceKm
	return nil
}

// setEstimatedMinutes validates and sets the planned transport duration.
// This is a private method used only during construction.
func (d *Delivery) setEstimatedMinutes(estimatedMinutes int) error {
	if estimatedMinutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimated minutes", fmt.Errorf("%d is negative", estimatedMinutes))
	}
	d.estimatedMinutes = estimatedMinutes
	return nil
}

// setPayment validates and sets the payment mirror.
// This is a private method used only during construction.
func (d *Delivery) setPayment(payment order.Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	d.payment = payment
	return nil
}
