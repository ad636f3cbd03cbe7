package inmem

import (
	"context"
	"sort"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// DriverRepository implements ports.DriverRepository over the in-memory store.
type DriverRepository struct {
	uow *UnitOfWork
}

// Add saves a new driver to the store.
func (r *DriverRepository) Add(_ context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	snapshot, err := cloneDriver(aggregate)
	if err != nil {
		return err
	}

	if !r.uow.insert(r.uow.store.drivers, nil, "", aggregate.ID(), snapshot) {
		return ErrAlreadyExists
	}
	return nil
}

// Update saves an existing driver to the store.
func (r *DriverRepository) Update(_ context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rec, ok := r.uow.find(r.uow.store.drivers, aggregate.ID())
	if !ok {
		return errs.NewObjectNotFoundError("driver", aggregate.ID().String())
	}

	release := r.uow.access(rec)
	defer release()

	if _, ok = r.uow.read(rec); !ok {
		return errs.NewObjectNotFoundError("driver", aggregate.ID().String())
	}

	snapshot, err := cloneDriver(aggregate)
	if err != nil {
		return err
	}
	r.uow.write(rec, snapshot)
	return nil
}

// Get retrieves a driver by ID. The entity lock stays held until the unit of
// work resolves; two operations racing for the same driver serialize here,
// and the loser observes the winner's committed state.
func (r *DriverRepository) Get(_ context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	rec, ok := r.uow.find(r.uow.store.drivers, id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("driver", id.String())
	}

	release := r.uow.access(rec)
	defer release()

	value, ok := r.uow.read(rec)
	if !ok {
		return nil, errs.NewObjectNotFoundError("driver", id.String())
	}

	return cloneDriver(value.(*driver.Driver))
}

// GetAllAvailable retrieves clones of all drivers currently selectable for
// assignment. The scan takes no entity locks; callers mutate only the driver
// they pick and persist it through Update, which locks that one record.
func (r *DriverRepository) GetAllAvailable(_ context.Context) ([]*driver.Driver, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()

	drivers := make([]*driver.Driver, 0)
	for _, rec := range r.uow.store.drivers {
		value, ok := r.uow.staged[rec]
		if !ok {
			if !rec.live {
				continue
			}
			value = rec.value
		}

		drv := value.(*driver.Driver)
		if !drv.IsSelectable() {
			continue
		}

		clone, err := cloneDriver(drv)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, clone)
	}

	// Map iteration order is random; keep results deterministic.
	sort.Slice(drivers, func(i, j int) bool {
		return drivers[i].ID().String() < drivers[j].ID().String()
	})

	return drivers, nil
}
