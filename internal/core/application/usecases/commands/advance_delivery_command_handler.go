package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/services"
)

// AdvanceDeliveryCommandHandler moves deliveries through the transport
// chain: Assigned -> PickedUp -> InTransit -> Delivered. The final step
// releases the bound driver and credits its completed-delivery total, so
// delivery and driver are updated within the same transaction.
type AdvanceDeliveryCommandHandler struct {
	uowFactory FleetUoWFactory
}

// NewAdvanceDeliveryCommandHandler creates a handler for delivery advancement.
func NewAdvanceDeliveryCommandHandler(uowFactory FleetUoWFactory) AdvanceDeliveryCommandHandler {
	return AdvanceDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery advancement command.
// The bound driver is read before the transition since entering Delivered
// clears the binding; when the step lands in Delivered the driver is
// released with credit and both aggregates are persisted atomically.
func (h AdvanceDeliveryCommandHandler) Handle(ctx context.Context, cmd AdvanceDeliveryCommand) error {
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

	if err = services.NewDeliveryDispatcher().Complete(dlv, drv); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, dlv); err != nil {
		return err
	}

	if dlv.Status() == delivery.Delivered {
		if err = driverRepo.Update(ctx, drv); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
