package services

import (
	"errors"
	"sort"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/driver"
)

// ErrDriverNotFound is returned when no selectable driver exists for a
// pending delivery. This occurs when either no drivers are provided or none
// of them is Available.
var ErrDriverNotFound = errors.New("driver not found")

// DeliveryDispatcher is a domain service coordinating the two sides of a
// driver assignment: the delivery's exclusive driver binding and the driver's
// load accounting. It also owns the selection rule used by automatic
// dispatch.
//
// Business rules:
//   - Only Available drivers are selectable; Busy and Offline are skipped
//   - Selection prefers the highest-rated driver, with the lighter current
//     load breaking ties
//   - Assignment is atomic: either both the delivery and the driver change,
//     or neither does
//   - Releasing happens on terminal transitions: a delivered delivery counts
//     toward the driver's total, a failed one does not
//
// Example usage:
//
//	dispatcher := NewDeliveryDispatcher()
//	assigned, err := dispatcher.Dispatch(pendingDelivery, drivers)
//	if errors.Is(err, ErrDriverNotFound) {
//	    // Nobody is free; the delivery stays queued
//	    return
//	}
type DeliveryDispatcher struct{}

// NewDeliveryDispatcher creates a new DeliveryDispatcher instance.
func NewDeliveryDispatcher() DeliveryDispatcher {
	return DeliveryDispatcher{}
}

// Dispatch selects the best driver for a pending delivery and executes the
// assignment.
//
// Parameters:
//   - dlv: the delivery to dispatch (must be valid and Pending)
//   - drivers: candidate drivers to consider
//
// Returns:
//   - the driver assigned to the delivery
//   - ErrDriverNotFound if nobody is selectable, or validation/assignment
//     errors
func (d DeliveryDispatcher) Dispatch(dlv *delivery.Delivery, drivers []*driver.Driver) (*driver.Driver, error) {
	if err := dlv.Validate(); err != nil {
		return nil, err
	}

	best, err := d.findBestDriver(drivers)
	if err != nil {
		return nil, err
	}

	if err = d.Assign(dlv, best); err != nil {
		return nil, err
	}

	return best, nil
}

// Assign atomically binds a specific driver to a pending delivery.
//
// The delivery side is checked first: a delivery that is not Pending fails
// with delivery.ErrDeliveryNotPending before the driver is touched. The
// driver side then fails with driver.ErrDriverUnavailable if the driver is
// Busy or Offline, leaving the delivery unchanged.
func (d DeliveryDispatcher) Assign(dlv *delivery.Delivery, drv *driver.Driver) error {
	if err := dlv.Validate(); err != nil {
		return err
	}
	if err := drv.Validate(); err != nil {
		return err
	}

	if dlv.Status() != delivery.Pending {
		return delivery.ErrDeliveryNotPending
	}

	if err := drv.TakeDelivery(); err != nil {
		return err
	}

	if err := dlv.AssignDriver(drv.ID()); err != nil {
		// Roll the driver back so a delivery-side failure leaves no
		// phantom load behind.
		_ = drv.ReleaseDelivery(false)
		return err
	}

	return nil
}

// Complete advances a delivery one step and, when the step lands in
// Delivered, releases the bound driver with credit toward its total.
//
// The driver argument must be the delivery's bound driver, or nil when the
// delivery is not in an active state. Passing nil for an active delivery
// advancing into Delivered is a programming error surfaced as
// ErrDriverNotFound.
func (d DeliveryDispatcher) Complete(dlv *delivery.Delivery, drv *driver.Driver) error {
	if err := dlv.Validate(); err != nil {
		return err
	}

	if err := dlv.Advance(); err != nil {
		return err
	}

	if dlv.Status() != delivery.Delivered {
		return nil
	}

	if drv == nil {
		return ErrDriverNotFound
	}
	return drv.ReleaseDelivery(true)
}

// Fail abandons an active delivery and releases the bound driver without
// crediting its total.
//
// The driver argument must be the delivery's bound driver. Passing nil is a
// programming error surfaced as ErrDriverNotFound once the delivery-side
// transition has been validated.
func (d DeliveryDispatcher) Fail(dlv *delivery.Delivery, drv *driver.Driver, reason string) error {
	if err := dlv.Validate(); err != nil {
		return err
	}

	if err := dlv.MarkFailed(reason); err != nil {
		return err
	}

	if drv == nil {
		return ErrDriverNotFound
	}
	return drv.ReleaseDelivery(false)
}

// Rank orders the candidates for assignment: selectable drivers only,
// highest rating first, lighter current load breaking ties. Candidates that
// are Busy or Offline are dropped rather than ranked last, so callers can
// walk the result and stop at the first driver that still accepts.
//
// Returns an empty slice when nobody is selectable.
func (d DeliveryDispatcher) Rank(drivers []*driver.Driver) ([]*driver.Driver, error) {
	ranked := make([]*driver.Driver, 0, len(drivers))
	for _, drv := range drivers {
		if err := drv.Validate(); err != nil {
			return nil, err
		}
		if drv.IsSelectable() {
			ranked = append(ranked, drv)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return betterCandidate(ranked[i], ranked[j])
	})

	return ranked, nil
}

// findBestDriver searches the candidates for the best selectable driver.
//
// Selection criteria:
//   - Validates driver construction
//   - Skips drivers that are not Available
//   - Prefers the highest rating, then the lighter current load
//   - Returns the first candidate in case of a full tie
func (d DeliveryDispatcher) findBestDriver(drivers []*driver.Driver) (*driver.Driver, error) {
	var best *driver.Driver

	for _, drv := range drivers {
		if err := drv.Validate(); err != nil {
			return nil, err
		}

		if !drv.IsSelectable() {
			continue
		}

		if best == nil || betterCandidate(drv, best) {
			best = drv
		}
	}

	if best == nil {
		return nil, ErrDriverNotFound
	}

	return best, nil
}

// betterCandidate reports whether a ranks strictly above b:
// higher rating first, lighter load as the tiebreak.
func betterCandidate(a, b *driver.Driver) bool {
	if a.Rating() != b.Rating() {
		return a.Rating() > b.Rating()
	}
	return a.CurrentDeliveries() < b.CurrentDeliveries()
}
