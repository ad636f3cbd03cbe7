package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// PaymentStatus reflects the state of the payment backing an order.
// Payment processing itself happens in an external service; the engine only
// records the outcome it is told about.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPaid means the payment settled successfully.
	PaymentPaid

	// PaymentPending means the payment has not settled yet.
	PaymentPending

	// PaymentFailed means the payment was declined or errored.
	PaymentFailed
)

// getPaymentStatusStrings returns a map of PaymentStatus values to their
// string representations.
func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown: "Unknown",
		PaymentPaid:    "Paid",
		PaymentPending: "Pending",
		PaymentFailed:  "Failed",
	}
}

// PaymentStatusFromString parses a payment status from its string name,
// case-insensitively. Unknown names produce a validation error.
func PaymentStatusFromString(value string) (PaymentStatus, error) {
	for status, name := range getPaymentStatusStrings() {
		if status != PaymentUnknown && strings.EqualFold(name, value) {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid",
		fmt.Errorf("%q is not a valid payment status", value),
	)
}

// Validate checks if the PaymentStatus value is valid.
// Valid statuses are Paid, Pending, and Failed; PaymentUnknown (0) is invalid.
func (p PaymentStatus) Validate() error {
	if p != PaymentPaid && p != PaymentPending && p != PaymentFailed {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", p),
		)
	}
	return nil
}

// String returns the human-readable name of the payment status.
// It implements the fmt.Stringer interface and is safe to call on any value.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "Unknown"
}

// Payment is a value object bundling how an order is paid and whether the
// payment settled. Deliveries mirror these fields from their order so the
// driver-facing record is self-contained.
type Payment struct {
	method string
	status PaymentStatus
}

// NewPayment creates a Payment value.
// The method must be non-empty (e.g. "card", "cash") and the status must be a
// valid PaymentStatus.
func NewPayment(method string, status PaymentStatus) (Payment, error) {
	if method == "" {
		return Payment{}, errs.NewValueIsRequiredError("payment method")
	}
	if err := status.Validate(); err != nil {
		return Payment{}, err
	}
	return Payment{method: method, status: status}, nil
}

// Method returns the payment method.
func (p Payment) Method() string {
	return p.method
}

// Status returns the payment status.
func (p Payment) Status() PaymentStatus {
	return p.status
}

// Validate ensures the Payment was created through NewPayment.
// The zero value carries an empty method and an Unknown status, both invalid.
func (p Payment) Validate() error {
	if p.method == "" {
		return errs.NewValueIsRequiredError("payment method")
	}
	return p.status.Validate()
}
