// Package driver contains the Driver aggregate root and its supporting
// value objects.
//
// A Driver is the fleet-side record of an assignment: identity, vehicle,
// rating, and load accounting. The aggregate keeps availability and load
// consistent (Busy exactly while at least one active delivery is bound),
// counts completed deliveries, and guards the Offline toggle so a loaded
// driver can never drop off shift.
//
// Delivery-side bookkeeping (status, timestamps, the driverID binding) lives
// in the delivery package; the fulfillment domain service coordinates both
// sides of an assignment.
package driver
