package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/services"
)

// FailDeliveryCommandHandler abandons active deliveries. Failing releases
// the bound driver without crediting its total, so delivery and driver are
// updated within the same transaction.
type FailDeliveryCommandHandler struct {
	uowFactory FleetUoWFactory
}

// NewFailDeliveryCommandHandler creates a handler for delivery failure.
func NewFailDeliveryCommandHandler(uowFactory FleetUoWFactory) FailDeliveryCommandHandler {
	return FailDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery failure command.
// The bound driver is read before the transition since failing clears the
// binding; a Pending delivery cannot fail and stays queued.
func (h FailDeliveryCommandHandler) Handle(ctx context.Context, cmd FailDeliveryCommand) error {
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

	var drv *driver.Driver
	if boundID := dlv.DriverID(); boundID != nil {
		if drv, err = driverRepo.Get(ctx, *boundID); err != nil {
			return err
		}
	}

	if err = services.NewDeliveryDispatcher().Fail(dlv, drv, cmd.Reason()); err != nil {
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
