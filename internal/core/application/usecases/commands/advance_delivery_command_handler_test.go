package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// buildBoundPair returns a delivery bound to a driver, advanced the given
// number of steps along the transport chain.
func buildBoundPair(t *testing.T, steps int) (*delivery.Delivery, *driver.Driver) {
	t.Helper()

	dlv := buildPendingDelivery(t)
	drv := buildDriver(t, "Marco", 4.5)
	require.NoError(t, drv.TakeDelivery())
	require.NoError(t, dlv.AssignDriver(drv.ID()))
	for range steps {
		require.NoError(t, dlv.Advance())
	}
	return dlv, drv
}

func TestAdvanceDeliveryCommandHandler_Handle_IntermediateStep(t *testing.T) {
	ctx := t.Context()

	dlv, drv := buildBoundPair(t, 0) // Assigned
	cmd, err := commands.NewAdvanceDeliveryCommand(dlv.ID())
	require.NoError(t, err)

	deliveryRepo := new(MockDispatchDeliveryRepository)
	driverRepo := new(MockDispatchDriverRepository)
	uow := new(MockFleetUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		deliveryRepo.On("Get", ctx, dlv.ID()).Return(dlv, nil).Once(),
		driverRepo.On("Get", ctx, drv.ID()).Return(drv, nil).Once(),
		deliveryRepo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFleetUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdvanceDeliveryCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.PickedUp, dlv.Status())
	assert.Equal(t, driver.Busy, drv.Status())
	// The driver is not persisted on intermediate steps.
	driverRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	deliveryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAdvanceDeliveryCommandHandler_Handle_FinalStepReleasesDriver(t *testing.T) {
	ctx := t.Context()

	dlv, drv := buildBoundPair(t, 2) // InTransit
	cmd, err := commands.NewAdvanceDeliveryCommand(dlv.ID())
	require.NoError(t, err)

	deliveryRepo := new(MockDispatchDeliveryRepository)
	driverRepo := new(MockDispatchDriverRepository)
	uow := new(MockFleetUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		deliveryRepo.On("Get", ctx, dlv.ID()).Return(dlv, nil).Once(),
		driverRepo.On("Get", ctx, drv.ID()).Return(drv, nil).Once(),
		deliveryRepo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		driverRepo.On("Update", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFleetUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdvanceDeliveryCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.Delivered, dlv.Status())
	assert.Nil(t, dlv.DriverID())
	assert.Equal(t, driver.Available, drv.Status())
	assert.Equal(t, 1, drv.TotalDeliveries())
	deliveryRepo.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAdvanceDeliveryCommandHandler_Handle_PendingDelivery(t *testing.T) {
	ctx := t.Context()

	dlv := buildPendingDelivery(t)
	cmd, err := commands.NewAdvanceDeliveryCommand(dlv.ID())
	require.NoError(t, err)

	deliveryRepo := new(MockDispatchDeliveryRepository)
	driverRepo := new(MockDispatchDriverRepository)
	uow := new(MockFleetUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		deliveryRepo.On("Get", ctx, dlv.ID()).Return(dlv, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFleetUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdvanceDeliveryCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, delivery.ErrRequiresAssignment)
	assert.Equal(t, delivery.Pending, dlv.Status())
}

func TestAdvanceDeliveryCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()

	dlv := buildPendingDelivery(t)
	cmd, err := commands.NewAdvanceDeliveryCommand(dlv.ID())
	require.NoError(t, err)

	deliveryRepo := new(MockDispatchDeliveryRepository)
	driverRepo := new(MockDispatchDriverRepository)
	uow := new(MockFleetUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		deliveryRepo.On("Get", ctx, dlv.ID()).
			Return(nil, errs.NewObjectNotFoundError("deliveryID", dlv.ID())).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFleetUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdvanceDeliveryCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestFailDeliveryCommandHandler_Handle_ReleasesDriverWithoutCredit(t *testing.T) {
	ctx := t.Context()

	dlv, drv := buildBoundPair(t, 1) // PickedUp
	cmd, err := commands.NewFailDeliveryCommand(dlv.ID(), "customer unreachable")
	require.NoError(t, err)

	deliveryRepo := new(MockDispatchDeliveryRepository)
	driverRepo := new(MockDispatchDriverRepository)
	uow := new(MockFleetUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		deliveryRepo.On("Get", ctx, dlv.ID()).Return(dlv, nil).Once(),
		driverRepo.On("Get", ctx, drv.ID()).Return(drv, nil).Once(),
		deliveryRepo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		driverRepo.On("Update", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFleetUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewFailDeliveryCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.Failed, dlv.Status())
	assert.Equal(t, "customer unreachable", dlv.FailureReason())
	assert.Equal(t, driver.Available, drv.Status())
	assert.Equal(t, 0, drv.TotalDeliveries())
}

func TestFailDeliveryCommand_RequiresReason(t *testing.T) {
	dlv := buildPendingDelivery(t)

	_, err := commands.NewFailDeliveryCommand(dlv.ID(), "")

	require.ErrorIs(t, err, commands.ErrFailureReasonIsRequired)
}
