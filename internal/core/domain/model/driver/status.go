package driver

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status represents the availability state of a driver.
//
// Available and Busy are derived from the driver's load: a driver is Busy
// exactly while carrying at least one active delivery, and returns to
// Available when the load drops to zero. Offline is an explicit operator
// state that is only entered or left while the load is zero; Offline drivers
// are never selectable for assignment.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Available indicates the driver is on shift with no active deliveries.
	Available

	// Busy indicates the driver is carrying at least one active delivery.
	Busy

	// Offline indicates the driver is off shift and never selectable.
	Offline
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Available: "Available",
		Busy:      "Busy",
		Offline:   "Offline",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Available: "Available",
		Busy:      "Busy",
		Offline:   "Offline",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Available, Busy, Offline. Unknown (0) and any other
// values are invalid.
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

// IsSelectable reports whether a driver in this status may receive a new
// assignment. Only Available drivers are selectable: Busy drivers already
// carry a delivery and Offline drivers are off shift.
func (s Status) IsSelectable() bool {
	return s == Available
}
