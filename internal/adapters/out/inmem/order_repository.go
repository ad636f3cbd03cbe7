package inmem

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository over the in-memory store.
type OrderRepository struct {
	uow *UnitOfWork
}

// Add saves a new order to the store.
func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	snapshot, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}

	if !r.uow.insert(r.uow.store.orders, r.uow.store.orderNumbers, aggregate.Number(), aggregate.ID(), snapshot) {
		return ErrAlreadyExists
	}
	return nil
}

// Update saves an existing order to the store.
func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rec, ok := r.uow.find(r.uow.store.orders, aggregate.ID())
	if !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	release := r.uow.access(rec)
	defer release()

	if _, ok = r.uow.read(rec); !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	snapshot, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}
	r.uow.write(rec, snapshot)
	return nil
}

// Get retrieves an order by ID. The entity lock stays held until the unit of
// work resolves, serializing concurrent operations on the same order.
func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	rec, ok := r.uow.find(r.uow.store.orders, id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	release := r.uow.access(rec)
	defer release()

	value, ok := r.uow.read(rec)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	return cloneOrder(value.(*order.Order))
}
