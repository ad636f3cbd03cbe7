package delivery

import "fulfillment/internal/pkg/errs"

// Contact is a value object naming one end of a delivery leg: the restaurant
// the order is picked up from, or the customer it is dropped off with.
//
// Name and address are always required; the phone number may be empty for the
// restaurant side, where the drivers call dispatch instead.
type Contact struct {
	name    string
	phone   string
	address string
}

// NewContact creates a validated Contact.
// Name and address must be non-empty; phone is optional.
func NewContact(name, phone, address string) (Contact, error) {
	if name == "" {
		return Contact{}, errs.NewValueIsRequiredError("contact name")
	}
	if address == "" {
		return Contact{}, errs.NewValueIsRequiredError("contact address")
	}
	return Contact{name: name, phone: phone, address: address}, nil
}

// Name returns the contact's name.
func (c Contact) Name() string {
	return c.name
}

// Phone returns the contact's phone number, possibly empty.
func (c Contact) Phone() string {
	return c.phone
}

// Address returns the contact's street address.
func (c Contact) Address() string {
	return c.address
}

// Validate ensures the Contact was created through NewContact.
// The zero value carries empty name and address, both invalid.
func (c Contact) Validate() error {
	if c.name == "" {
		return errs.NewValueIsRequiredError("contact name")
	}
	if c.address == "" {
		return errs.NewValueIsRequiredError("contact address")
	}
	return nil
}
