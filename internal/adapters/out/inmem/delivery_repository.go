package inmem

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// DeliveryRepository implements ports.DeliveryRepository over the in-memory store.
type DeliveryRepository struct {
	uow *UnitOfWork
}

// Add saves a new delivery to the store.
func (r *DeliveryRepository) Add(_ context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	snapshot, err := cloneDelivery(aggregate)
	if err != nil {
		return err
	}

	if !r.uow.insert(r.uow.store.deliveries, r.uow.store.deliveryNumbers, aggregate.Number(), aggregate.ID(), snapshot) {
		return ErrAlreadyExists
	}
	return nil
}

// Update saves an existing delivery to the store.
func (r *DeliveryRepository) Update(_ context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rec, ok := r.uow.find(r.uow.store.deliveries, aggregate.ID())
	if !ok {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	}

	release := r.uow.access(rec)
	defer release()

	if _, ok = r.uow.read(rec); !ok {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	}

	snapshot, err := cloneDelivery(aggregate)
	if err != nil {
		return err
	}
	r.uow.write(rec, snapshot)
	return nil
}

// Get retrieves a delivery by ID. The entity lock stays held until the unit
// of work resolves, serializing concurrent operations on the same delivery.
func (r *DeliveryRepository) Get(_ context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	rec, ok := r.uow.find(r.uow.store.deliveries, id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery", id.String())
	}

	release := r.uow.access(rec)
	defer release()

	value, ok := r.uow.read(rec)
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery", id.String())
	}

	return cloneDelivery(value.(*delivery.Delivery))
}

// GetFirstInPendingStatus retrieves the oldest delivery still waiting for a
// driver and locks it for this unit of work.
//
// The scan happens without entity locks; the chosen record is then locked and
// re-checked, because another operation may have assigned it between the scan
// and the lock. When the re-check fails the scan restarts, and the rejected
// candidate's lock is given back unless this unit of work held it before the
// scan.
func (r *DeliveryRepository) GetFirstInPendingStatus(_ context.Context) (*delivery.Delivery, error) {
	for {
		rec, ok := r.scanOldestPending()
		if !ok {
			return nil, errs.NewObjectNotFoundError("delivery", "pending")
		}

		alreadyHeld := r.uow.holds(rec)
		release := r.uow.access(rec)

		value, live := r.uow.read(rec)
		if live {
			dlv := value.(*delivery.Delivery)
			if dlv.Status() == delivery.Pending {
				clone, err := cloneDelivery(dlv)
				release()
				return clone, err
			}
		}

		release()
		if !alreadyHeld {
			r.uow.unlock(rec)
		}
	}
}

// scanOldestPending finds the pending delivery with the earliest creation
// time. Reads committed snapshots plus this unit of work's own staged writes.
func (r *DeliveryRepository) scanOldestPending() (*record, bool) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()

	var (
		oldest    *record
		oldestDlv *delivery.Delivery
	)
	for _, rec := range r.uow.store.deliveries {
		value, ok := r.uow.staged[rec]
		if !ok {
			if !rec.live {
				continue
			}
			value = rec.value
		}

		dlv := value.(*delivery.Delivery)
		if dlv.Status() != delivery.Pending {
			continue
		}
		if oldest == nil || dlv.CreatedAt().Before(oldestDlv.CreatedAt()) {
			oldest = rec
			oldestDlv = dlv
		}
	}

	return oldest, oldest != nil
}
