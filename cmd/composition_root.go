package cmd

import (
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(c.orderDeliveryUoWFactory())
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.fleetUoWFactory())
}

func (c *CompositionRoot) CreateAdvanceDeliveryCommandHandler() commands.AdvanceDeliveryCommandHandler {
	return commands.NewAdvanceDeliveryCommandHandler(c.fleetUoWFactory())
}

func (c *CompositionRoot) CreateFailDeliveryCommandHandler() commands.FailDeliveryCommandHandler {
	return commands.NewFailDeliveryCommandHandler(c.fleetUoWFactory())
}

func (c *CompositionRoot) CreateAssignPendingDeliveryCommandHandler() commands.AssignPendingDeliveryCommandHandler {
	return commands.NewAssignPendingDeliveryCommandHandler(c.fleetUoWFactory())
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() commands.CreateDriverCommandHandler {
	return commands.NewCreateDriverCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateSetDriverStatusCommandHandler() commands.SetDriverStatusCommandHandler {
	return commands.NewSetDriverStatusCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveriesQueryHandler() queries.GetDeliveriesQueryHandler {
	return queries.NewGetDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriversQueryHandler() queries.GetDriversQueryHandler {
	return queries.NewGetDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetFleetCountsQueryHandler() queries.GetFleetCountsQueryHandler {
	return queries.NewGetFleetCountsQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the echo-facing server from all handlers.
func (c *CompositionRoot) CreateHTTPServer(logger *slog.Logger) *httpin.Server {
	return httpin.NewServer(
		logger,
		c.CreateCreateOrderCommandHandler(),
		c.CreateAcceptOrderCommandHandler(),
		c.CreateRejectOrderCommandHandler(),
		c.CreateAdvanceOrderCommandHandler(),
		c.CreateCreateDeliveryCommandHandler(),
		c.CreateAssignDriverCommandHandler(),
		c.CreateAdvanceDeliveryCommandHandler(),
		c.CreateFailDeliveryCommandHandler(),
		c.CreateCreateDriverCommandHandler(),
		c.CreateSetDriverStatusCommandHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetDeliveriesQueryHandler(),
		c.CreateGetDriversQueryHandler(),
		c.CreateGetFleetCountsQueryHandler(),
	)
}

// CreateJobManager assembles the background job manager.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateAssignPendingDeliveryCommandHandler(), logger)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) driverUoWFactory() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderDeliveryUoWFactory() commands.OrderDeliveryUoWFactory {
	return FuncOrderDeliveryUoWFactory(func() commands.OrderDeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fleetUoWFactory() commands.FleetUoWFactory {
	return FuncFleetUoWFactory(func() commands.FleetUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncOrderDeliveryUoWFactory func() commands.OrderDeliveryUoW

func (f FuncOrderDeliveryUoWFactory) Create() commands.OrderDeliveryUoW {
	return f()
}

type FuncFleetUoWFactory func() commands.FleetUoW

func (f FuncFleetUoWFactory) Create() commands.FleetUoW {
	return f()
}
