package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
)

// ErrOrderNotDeliverable is returned when cutting a delivery for an order
// that does not require one (pickup orders).
var ErrOrderNotDeliverable = errors.New("order does not require delivery")

// CreateDeliveryCommandHandler cuts delivery records for delivery-type
// orders, snapshotting the order lines and payment details into the new
// delivery.
type CreateDeliveryCommandHandler struct {
	uowFactory OrderDeliveryUoWFactory
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
// Requires an OrderDeliveryUoWFactory since the order is read and the
// delivery written within one transaction.
func NewCreateDeliveryCommandHandler(uowFactory OrderDeliveryUoWFactory) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery creation command.
// Loads the order, verifies it is a delivery-type order, and creates the
// delivery in Pending status with the order's items and payment mirrored in.
func (h *CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) error {
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

	orderRepo := uow.OrderRepository()
	deliveryRepo := uow.DeliveryRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !aggregate.RequiresDelivery() {
		return ErrOrderNotDeliverable
	}

	dlv, err := delivery.NewDelivery(
		cmd.DeliveryID(),
		cmd.Number(),
		aggregate.ID(),
		cmd.Customer(),
		cmd.Restaurant(),
		aggregate.Items(),
		cmd.DistanceKm(),
		cmd.EstimatedMinutes(),
		cmd.ScheduledTime(),
		cmd.SpecialInstructions(),
		aggregate.Payment(),
	)
	if err != nil {
		return err
	}

	if err = deliveryRepo.Add(ctx, dlv); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
