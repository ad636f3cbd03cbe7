package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/driver"
)

// SetDriverStatusCommandHandler toggles drivers between Available and
// Offline. A driver still carrying active deliveries cannot be toggled.
type SetDriverStatusCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewSetDriverStatusCommandHandler creates a handler for the shift toggle.
func NewSetDriverStatusCommandHandler(uowFactory DriverUoWFactory) SetDriverStatusCommandHandler {
	return SetDriverStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the shift toggle command.
func (h *SetDriverStatusCommandHandler) Handle(ctx context.Context, cmd SetDriverStatusCommand) error {
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

	driverRepo := uow.DriverRepository()
	aggregate, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	if cmd.Status() == driver.Offline {
		err = aggregate.SetOffline()
	} else {
		err = aggregate.SetAvailable()
	}
	if err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
