package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> Ready ──> Completed
//	   │
//	   └──> Cancelled
//
// Cancellation is only permitted while Pending, representing merchant
// rejection before acceptance. Completed and Cancelled are terminal.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// Orders in this status are waiting for merchant acceptance.
	Pending

	// Confirmed indicates the merchant accepted the order.
	Confirmed

	// Preparing indicates the kitchen is working on the order.
	Preparing

	// Ready indicates the order is ready for pickup or handoff to a driver.
	Ready

	// Completed indicates the order has been fulfilled.
	// This is a terminal state with no further transitions allowed.
	Completed

	// Cancelled indicates the merchant rejected the order while it was
	// still Pending. This is a terminal state.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Confirmed: "Confirmed",
		Preparing: "Preparing",
		Ready:     "Ready",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Confirmed: "Confirmed",
		Preparing: "Preparing",
		Ready:     "Ready",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Confirmed, Preparing, Ready, Completed,
// Cancelled. Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
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
	return s == Completed || s == Cancelled
}

// Accept transitions the status to Confirmed.
//
// Valid transitions:
//   - Pending -> Confirmed (merchant accepted)
//
// Any other source status produces an InvalidTransitionError: acceptance is
// only meaningful before the merchant has made a decision.
//
// Returns:
//   - (Confirmed, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidTransitionError("order", s.String(), Confirmed.String())
	}
	return Confirmed, nil
}

// Reject transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled (merchant rejected before acceptance)
//
// Rejection after acceptance is not permitted; the order must run its course
// once the merchant has confirmed it.
//
// Returns:
//   - (Cancelled, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidTransitionError("order", s.String(), Cancelled.String())
	}
	return Cancelled, nil
}

// Next transitions the status one step forward along the preparation chain.
// It is a deterministic next-status function with no branching input.
//
// Valid transitions:
//   - Confirmed -> Preparing
//   - Preparing -> Ready
//   - Ready     -> Completed
//
// Invalid transitions:
//   - Pending (must be accepted first)
//   - Completed, Cancelled (terminal)
//   - Unknown (invalid initial state)
//
// Returns:
//   - (next status, nil) on valid transition
//   - (0, error) if no next status is defined from the current one
func (s Status) Next() (Status, error) {
	switch s {
	case Confirmed:
		return Preparing, nil
	case Preparing:
		return Ready, nil
	case Ready:
		return Completed, nil
	default:
		return 0, errs.NewInvalidTransitionError("order", s.String(), "the next status")
	}
}
