package commands

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

// AssignDriverCommandHandler binds a specific driver to a pending delivery.
// Both aggregates are loaded, changed through the dispatcher, and persisted
// within one transaction, so the exclusive binding either fully happens or
// not at all.
//
// Example:
//
//	handler := NewAssignDriverCommandHandler(uowFactory)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, delivery.ErrDeliveryNotPending):
//	    // Someone else got there first
//	case errors.Is(err, driver.ErrDriverUnavailable):
//	    // The driver is busy or off shift
//	case err != nil:
//	    log.Printf("Assignment failed: %v", err)
//	}
type AssignDriverCommandHandler struct {
	uowFactory FleetUoWFactory
}

// NewAssignDriverCommandHandler creates a handler for manual driver assignment.
// Requires a FleetUoWFactory for coordinating transactional updates across repositories.
func NewAssignDriverCommandHandler(uowFactory FleetUoWFactory) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the driver assignment command.
// Loads delivery and driver, binds them through the dispatcher, and updates
// both within a single transaction.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
	if err := cmd.Validate(); err != nil {
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

	dlv, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	drv, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	if err = services.NewDeliveryDispatcher().Assign(dlv, drv); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, dlv); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, drv); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
