// Package inmem provides an in-memory implementation of the Unit of Work pattern
// backed by lockable records instead of database transactions.
//
// Every stored aggregate lives in a record that carries its own mutex. A unit of
// work acquires a record's lock the first time a repository touches it and holds
// it until Commit or Rollback, so two concurrent business operations can never
// interleave their check-then-mutate sequences on the same entity.
//
// Deadlock discipline: operations acquire locks in the fixed global order
// orders before deliveries before drivers, and touch at most one record per
// entity type. No I/O happens while an entity lock is held.
//
// The adapter is used by tests and by deployments that run without PostgreSQL;
// it implements the same ports.UnitOfWork contract as the postgres adapter.
package inmem

import (
	"sync"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// record is one lockable storage slot. The mutex is the entity lock held
// across a unit of work; value only changes at Commit, under the store mutex.
type record struct {
	mu sync.Mutex

	// value holds the committed aggregate snapshot. It is treated as
	// immutable: repositories hand out clones and Commit swaps in a new
	// snapshot rather than mutating this one.
	value any

	// live is false for records inserted by a transaction that has not
	// committed yet. Rollback removes such records from the map.
	live bool
}

// Store holds all committed aggregates. The store mutex guards the maps and
// committed value swaps; the per-record mutexes guard business operations.
//
// The number indexes enforce the uniqueness of the human-facing order and
// delivery numbers, mirroring the unique columns the postgres adapter relies
// on. A number is claimed at insert time and released again when the
// inserting transaction rolls back.
type Store struct {
	mu         sync.Mutex
	orders     map[kernel.UUID]*record
	deliveries map[kernel.UUID]*record
	drivers    map[kernel.UUID]*record

	orderNumbers    map[string]kernel.UUID
	deliveryNumbers map[string]kernel.UUID
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		orders:          make(map[kernel.UUID]*record),
		deliveries:      make(map[kernel.UUID]*record),
		drivers:         make(map[kernel.UUID]*record),
		orderNumbers:    make(map[string]kernel.UUID),
		deliveryNumbers: make(map[string]kernel.UUID),
	}
}

// cloneOrder deep-copies an order aggregate by restoring it from its own state.
// Clones keep callers from mutating a committed snapshot in place.
func cloneOrder(o *order.Order) (*order.Order, error) {
	return order.RestoreOrder(
		o.ID(),
		o.Number(),
		o.OrderType(),
		o.Status(),
		o.CustomerName(),
		o.Items(),
		o.Charges(),
		o.Payment(),
		o.SpecialInstructions(),
		o.CreatedAt(),
		o.EstimatedReadyTime(),
	)
}

// cloneDelivery deep-copies a delivery aggregate.
func cloneDelivery(d *delivery.Delivery) (*delivery.Delivery, error) {
	return delivery.RestoreDelivery(
		d.ID(),
		d.Number(),
		d.OrderID(),
		d.Status(),
		d.Customer(),
		d.Restaurant(),
		d.Items(),
		d.DriverID(),
		d.DistanceKm(),
		d.EstimatedMinutes(),
		d.ScheduledTime(),
		d.ActualPickupTime(),
		d.ActualDeliveryTime(),
		d.SpecialInstructions(),
		d.FailureReason(),
		d.Payment(),
		d.CreatedAt(),
		d.UpdatedAt(),
	)
}

// cloneDriver deep-copies a driver aggregate.
func cloneDriver(d *driver.Driver) (*driver.Driver, error) {
	return driver.RestoreDriver(
		d.ID(),
		d.Name(),
		d.Phone(),
		d.Status(),
		d.CurrentDeliveries(),
		d.TotalDeliveries(),
		d.Rating(),
		d.Vehicle(),
	)
}
