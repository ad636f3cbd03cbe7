// Package delivery contains the Delivery aggregate root and its supporting
// value objects.
//
// A Delivery is the logistics record cut for a delivery-type order: it carries
// the pick-up and drop-off contacts, a snapshot of the order lines, route
// estimates, and the exclusive binding to a driver. The aggregate enforces the
// forward-only transport lifecycle (Pending, Assigned, PickedUp, InTransit,
// Delivered, with Failed reachable only from active states), stamps pickup and
// drop-off timestamps exactly once, and releases the driver binding whenever
// the delivery reaches a terminal state.
//
// Driver-side bookkeeping (availability, load) lives in the driver package;
// the fulfillment domain service coordinates both sides of an assignment.
package delivery
