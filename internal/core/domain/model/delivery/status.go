package delivery

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Domain errors for delivery status operations.
var (
	// ErrRequiresAssignment is returned when advancing a delivery that is
	// still Pending; a driver must be assigned before the delivery can move.
	ErrRequiresAssignment = errors.New("delivery requires a driver assignment")
	// ErrDeliveryNotPending is returned when assignment is attempted on a
	// delivery that is already assigned or terminal.
	ErrDeliveryNotPending = errors.New("delivery is not pending")
)

// Status represents the lifecycle state of a delivery.
// It implements a state machine with defined transitions to ensure
// deliveries follow the correct logistics workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> PickedUp ──> InTransit ──> Delivered
//	               │            │            │
//	               └────────────┴────────────┴──> Failed
//
// Failed is only reachable from the three active states. A Pending delivery
// cannot fail; it simply stays queued. Delivered and Failed are terminal.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a delivery is first created.
	// Deliveries in this status are queued, waiting for a driver.
	Pending

	// Assigned indicates a driver has been exclusively bound to the delivery.
	Assigned

	// PickedUp indicates the driver collected the order from the restaurant.
	PickedUp

	// InTransit indicates the driver is on the way to the customer.
	InTransit

	// Delivered indicates the delivery completed successfully.
	// This is a terminal state with no further transitions allowed.
	Delivered

	// Failed indicates the delivery was abandoned from an active state.
	// This is a terminal state.
	Failed
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Assigned:  "Assigned",
		PickedUp:  "PickedUp",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Failed:    "Failed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Assigned:  "Assigned",
		PickedUp:  "PickedUp",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Failed:    "Failed",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Assigned, PickedUp, InTransit, Delivered,
// Failed. Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
//
// Returns "Unknown" for invalid status values. This method implements the
// fmt.Stringer interface and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status from its string name, case-insensitively.
// Unknown names produce a validation error.
func StatusFromString(value string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if strings.EqualFold(name, value) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", value))
}

// IsTerminal reports whether no further transition is defined from the status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed
}

// IsActive reports whether a driver is exclusively bound to the delivery.
// A delivery holds its driver exactly while Assigned, PickedUp, or InTransit.
func (s Status) IsActive() bool {
	return s == Assigned || s == PickedUp || s == InTransit
}

// ValidateCanHaveDriver validates the consistency between delivery status and
// driver binding: a driver is bound iff the delivery is in an active state.
//
// Parameters:
//   - driver: whether the delivery has a driver bound
//
// Returns a validation error if status and driver binding are inconsistent.
func (s Status) ValidateCanHaveDriver(driver bool) error {
	if driver && !s.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a driver", s.String()),
		)
	}

	if !driver && s.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no driver", s.String()),
		)
	}

	return nil
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Pending -> Assigned (driver bound)
//
// Any other source status produces ErrDeliveryNotPending: a delivery is bound
// to at most one driver, and terminal deliveries cannot be revived.
//
// Returns:
//   - (Assigned, nil) on valid transition
//   - (0, ErrDeliveryNotPending) otherwise
func (s Status) Assign() (Status, error) {
	if s != Pending {
		return 0, ErrDeliveryNotPending
	}
	return Assigned, nil
}

// Next transitions the status one step forward along the transport chain.
// It is a deterministic next-status function with no branching input.
//
// Valid transitions:
//   - Assigned  -> PickedUp
//   - PickedUp  -> InTransit
//   - InTransit -> Delivered
//
// Invalid transitions:
//   - Pending (fails with ErrRequiresAssignment: no driver is bound yet)
//   - Delivered, Failed (terminal, fail with InvalidTransitionError)
//   - Unknown (invalid initial state)
//
// Returns:
//   - (next status, nil) on valid transition
//   - (0, error) if no next status is defined from the current one
func (s Status) Next() (Status, error) {
	switch s {
	case Pending:
		return 0, ErrRequiresAssignment
	case Assigned:
		return PickedUp, nil
	case PickedUp:
		return InTransit, nil
	case InTransit:
		return Delivered, nil
	default:
		return 0, errs.NewInvalidTransitionError("delivery", s.String(), "the next status")
	}
}

// Fail transitions the status to Failed.
//
// Valid transitions:
//   - Assigned  -> Failed
//   - PickedUp  -> Failed
//   - InTransit -> Failed
//
// Invalid transitions:
//   - Pending (stays queued instead of failing)
//   - Delivered, Failed (terminal)
//
// Returns:
//   - (Failed, nil) on valid transition
//   - (0, error) if the delivery cannot fail from the current status
func (s Status) Fail() (Status, error) {
	if !s.IsActive() {
		return 0, errs.NewInvalidTransitionError("delivery", s.String(), Failed.String())
	}
	return Failed, nil
}
