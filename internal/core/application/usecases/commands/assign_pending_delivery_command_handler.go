package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

var (
	ErrNoAvailableDriversFound = errors.New("no available drivers found")
	ErrNoPendingDeliveryFound  = errors.New("no pending delivery found")
)

// AssignPendingDeliveryCommandHandler orchestrates automatic dispatch.
// Finds the oldest pending delivery and matches it with the best available
// driver using the dispatcher's selection rule. Ensures transactional
// consistency when updating both delivery and driver states.
//
// Example:
//
//	handler := NewAssignPendingDeliveryCommandHandler(uowFactory)
//	err := handler.Handle(ctx, NewAssignPendingDeliveryCommand())
//	switch {
//	case errors.Is(err, ErrNoPendingDeliveryFound):
//	    log.Println("Queue is empty")
//	case errors.Is(err, ErrNoAvailableDriversFound):
//	    log.Println("Everyone is busy or off shift")
//	case err != nil:
//	    log.Printf("Dispatch failed: %v", err)
//	}
type AssignPendingDeliveryCommandHandler struct {
	uowFactory FleetUoWFactory
}

// NewAssignPendingDeliveryCommandHandler creates a handler for automatic dispatch.
// Requires a FleetUoWFactory for coordinating transactional updates across repositories.
func NewAssignPendingDeliveryCommandHandler(uowFactory FleetUoWFactory) AssignPendingDeliveryCommandHandler {
	return AssignPendingDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the automatic dispatch command.
// Retrieves the oldest pending delivery, ranks the available drivers, and
// binds the best one that still accepts. Updates both entities within a
// single transaction. Returns specific errors for an empty queue
// (ErrNoPendingDeliveryFound) and an exhausted fleet (ErrNoAvailableDriversFound).
//
// The availability snapshot is taken without holding any driver's lock, so a
// concurrent assignment may take a candidate between the scan and the bind.
// Each candidate is therefore re-loaded through Get, which locks it for this
// unit of work, and re-checked before assignment; candidates taken in the
// meantime are skipped.
func (h AssignPendingDeliveryCommandHandler) Handle(ctx context.Context, command AssignPendingDeliveryCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	driverRepo := uow.DriverRepository()

	dlv, err := deliveryRepo.GetFirstInPendingStatus(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoPendingDeliveryFound
	}
	if err != nil {
		return err
	}

	drivers, err := driverRepo.GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	dispatcher := services.NewDeliveryDispatcher()
	candidates, err := dispatcher.Rank(drivers)
	if err != nil {
		return err
	}

	for _, candidate := range candidates {
		drv, getErr := driverRepo.Get(ctx, candidate.ID())
		if errors.Is(getErr, errs.ErrObjectNotFound) {
			continue
		}
		if getErr != nil {
			return getErr
		}

		// The snapshot copy may be stale; only the locked copy decides.
		if !drv.IsSelectable() {
			continue
		}

		if err = dispatcher.Assign(dlv, drv); err != nil {
			return err
		}

		if err = deliveryRepo.Update(ctx, dlv); err != nil {
			return err
		}

		if err = driverRepo.Update(ctx, drv); err != nil {
			return err
		}

		return uow.Commit(ctx)
	}

	return ErrNoAvailableDriversFound
}
