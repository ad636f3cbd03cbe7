package inmem

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// Adapter errors for the in-memory unit of work.
var (
	// ErrNoActiveTransaction is returned by Commit and Rollback when Begin
	// was never called or the unit of work already finished.
	ErrNoActiveTransaction = errors.New("no active transaction")

	// ErrAlreadyExists is returned by Add when a record with the same
	// identifier is already stored.
	ErrAlreadyExists = errors.New("record already exists")
)

// UnitOfWorkFactory creates UnitOfWork instances sharing one in-memory store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory bound to the given store.
// All unit of work instances created by the factory see the same data.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create produces a new UnitOfWork instance with no locks held.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{
		store:    f.store,
		haveLock: make(map[*record]bool),
		staged:   make(map[*record]any),
	}
}

// UnitOfWork coordinates entity locks and staged writes for one business
// operation. Repositories stage clones of modified aggregates; Commit swaps
// the staged snapshots into the store and releases every held lock, Rollback
// discards them.
type UnitOfWork struct {
	store  *Store
	active bool

	// held lists acquired entity locks in acquisition order.
	held     []*record
	haveLock map[*record]bool

	// staged maps a held record to the snapshot Commit will publish.
	staged map[*record]any

	// created undoes map inserts from this transaction on rollback.
	created []func()
}

// Begin marks the unit of work active. Repository operations before Begin
// apply immediately; operations after it stage until Commit.
// Multiple calls to Begin on the same instance are safe.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	uow.active = true
	return nil
}

// Commit publishes all staged snapshots and releases every entity lock.
// After commit, the unit of work is closed and cannot be reused.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	uow.store.mu.Lock()
	for rec, value := range uow.staged {
		rec.value = value
		rec.live = true
	}
	uow.store.mu.Unlock()

	uow.finish()
	return nil
}

// Rollback discards staged snapshots, removes records inserted by this
// transaction, and releases every entity lock.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	uow.store.mu.Lock()
	for _, undo := range uow.created {
		undo()
	}
	uow.store.mu.Unlock()

	uow.finish()
	return nil
}

// OrderRepository provides access to order persistence within the unit of work.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: uow}
}

// DeliveryRepository provides access to delivery persistence within the unit of work.
func (uow *UnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return &DeliveryRepository{uow: uow}
}

// DriverRepository provides access to driver persistence within the unit of work.
func (uow *UnitOfWork) DriverRepository() ports.DriverRepository {
	return &DriverRepository{uow: uow}
}

// finish releases held locks in reverse acquisition order and resets state.
func (uow *UnitOfWork) finish() {
	for i := len(uow.held) - 1; i >= 0; i-- {
		uow.held[i].mu.Unlock()
	}
	uow.held = nil
	uow.haveLock = make(map[*record]bool)
	uow.staged = make(map[*record]any)
	uow.created = nil
	uow.active = false
}

// lock acquires a record's entity lock unless this unit of work already
// holds it. The lock is released by Commit or Rollback.
func (uow *UnitOfWork) lock(rec *record) {
	if uow.haveLock[rec] {
		return
	}
	rec.mu.Lock()
	uow.held = append(uow.held, rec)
	uow.haveLock[rec] = true
}

// holds reports whether this unit of work currently holds a record's lock.
func (uow *UnitOfWork) holds(rec *record) bool {
	return uow.haveLock[rec]
}

// unlock releases a record's entity lock before the unit of work resolves.
// Used for scan candidates rejected after inspection, so they do not stay
// blocked for the rest of the transaction. Records carrying a staged write
// keep their lock until Commit or Rollback.
func (uow *UnitOfWork) unlock(rec *record) {
	if !uow.haveLock[rec] {
		return
	}
	if _, ok := uow.staged[rec]; ok {
		return
	}

	delete(uow.haveLock, rec)
	for i := len(uow.held) - 1; i >= 0; i-- {
		if uow.held[i] == rec {
			uow.held = append(uow.held[:i], uow.held[i+1:]...)
			break
		}
	}
	rec.mu.Unlock()
}

// find looks a record up under the store mutex.
func (uow *UnitOfWork) find(table map[kernel.UUID]*record, id kernel.UUID) (*record, bool) {
	uow.store.mu.Lock()
	defer uow.store.mu.Unlock()
	rec, ok := table[id]
	return rec, ok
}

// insert creates a record for a new aggregate. Inside a transaction the
// record enters the map immediately, locked and not yet live, so concurrent
// readers block on it until this transaction resolves.
//
// When a number index is given, the aggregate's number is claimed alongside
// the identifier; a rollback releases both.
// Returns false when the identifier or the number is already taken.
func (uow *UnitOfWork) insert(
	table map[kernel.UUID]*record,
	numbers map[string]kernel.UUID,
	number string,
	id kernel.UUID,
	value any,
) bool {
	uow.store.mu.Lock()
	defer uow.store.mu.Unlock()

	if _, ok := table[id]; ok {
		return false
	}
	if numbers != nil {
		if _, taken := numbers[number]; taken {
			return false
		}
		numbers[number] = id
	}

	rec := &record{}
	table[id] = rec

	if uow.active {
		rec.mu.Lock()
		uow.held = append(uow.held, rec)
		uow.haveLock[rec] = true
		uow.staged[rec] = value
		uow.created = append(uow.created, func() {
			delete(table, id)
			if numbers != nil {
				delete(numbers, number)
			}
		})
		return true
	}

	rec.value = value
	rec.live = true
	return true
}

// read resolves the value this unit of work should observe for a held
// record: its own staged snapshot if present, else the committed value.
// Returns false for records whose insert was never committed.
func (uow *UnitOfWork) read(rec *record) (any, bool) {
	if value, ok := uow.staged[rec]; ok {
		return value, true
	}
	if !rec.live {
		return nil, false
	}
	return rec.value, true
}

// write stages a snapshot for a held record, or publishes it immediately
// when no transaction is active.
func (uow *UnitOfWork) write(rec *record, value any) {
	if uow.active {
		uow.staged[rec] = value
		return
	}

	uow.store.mu.Lock()
	rec.value = value
	rec.live = true
	uow.store.mu.Unlock()
}

// access locks a record for this unit of work, or briefly for a single
// operation when no transaction is active. The returned release func is a
// no-op inside a transaction.
func (uow *UnitOfWork) access(rec *record) (release func()) {
	if uow.active {
		uow.lock(rec)
		return func() {}
	}
	rec.mu.Lock()
	return rec.mu.Unlock
}
