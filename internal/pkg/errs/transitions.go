package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for lifecycle violations shared by the order and delivery
// state machines. Domain-specific sentinels (driver unavailable, delivery not
// pending, requires assignment) live in their aggregate packages.
var (
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrAlreadyRecorded   = errors.New("timestamp already recorded")
)

// InvalidTransitionError is returned when a state change is attempted that the
// entity's state machine does not permit from its current status. Statuses only
// ever move forward; skipping or reversing a state always produces this error.
type InvalidTransitionError struct {
	EntityKind string
	From       string
	To         string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// entity kind and the offending from/to statuses.
func NewInvalidTransitionError(entityKind, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{EntityKind: entityKind, From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s cannot move from %s to %s",
		ErrInvalidTransition, e.EntityKind, e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// AlreadyRecordedError is returned when a write-once timestamp field, such as a
// delivery's actual pickup time, is stamped a second time.
type AlreadyRecordedError struct {
	FieldName string
}

// NewAlreadyRecordedError creates an AlreadyRecordedError for the given field.
func NewAlreadyRecordedError(fieldName string) *AlreadyRecordedError {
	return &AlreadyRecordedError{FieldName: fieldName}
}

func (e *AlreadyRecordedError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s", ErrAlreadyRecorded, e.FieldName))
}

func (e *AlreadyRecordedError) Unwrap() error {
	return ErrAlreadyRecorded
}
