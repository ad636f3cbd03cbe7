// Package http exposes the fulfillment engine over a JSON API built on echo.
// Handlers translate requests into commands and queries, and map domain
// errors onto HTTP status codes: unknown identifiers become 404, invalid
// input 400, and rejected state transitions or unavailable drivers 409.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	logger *slog.Logger

	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	acceptOrderHandler     commands.AcceptOrderCommandHandler
	rejectOrderHandler     commands.RejectOrderCommandHandler
	advanceOrderHandler    commands.AdvanceOrderCommandHandler
	createDeliveryHandler  commands.CreateDeliveryCommandHandler
	assignDriverHandler    commands.AssignDriverCommandHandler
	advanceDeliveryHandler commands.AdvanceDeliveryCommandHandler
	failDeliveryHandler    commands.FailDeliveryCommandHandler
	createDriverHandler    commands.CreateDriverCommandHandler
	setDriverStatusHandler commands.SetDriverStatusCommandHandler

	// Query handlers
	getOrdersHandler      queries.GetOrdersQueryHandler
	getDeliveriesHandler  queries.GetDeliveriesQueryHandler
	getDriversHandler     queries.GetDriversQueryHandler
	getFleetCountsHandler queries.GetFleetCountsQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	logger *slog.Logger,
	createOrderHandler commands.CreateOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	rejectOrderHandler commands.RejectOrderCommandHandler,
	advanceOrderHandler commands.AdvanceOrderCommandHandler,
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	assignDriverHandler commands.AssignDriverCommandHandler,
	advanceDeliveryHandler commands.AdvanceDeliveryCommandHandler,
	failDeliveryHandler commands.FailDeliveryCommandHandler,
	createDriverHandler commands.CreateDriverCommandHandler,
	setDriverStatusHandler commands.SetDriverStatusCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getDeliveriesHandler queries.GetDeliveriesQueryHandler,
	getDriversHandler queries.GetDriversQueryHandler,
	getFleetCountsHandler queries.GetFleetCountsQueryHandler,
) *Server {
	return &Server{
		logger:                 logger,
		createOrderHandler:     createOrderHandler,
		acceptOrderHandler:     acceptOrderHandler,
		rejectOrderHandler:     rejectOrderHandler,
		advanceOrderHandler:    advanceOrderHandler,
		createDeliveryHandler:  createDeliveryHandler,
		assignDriverHandler:    assignDriverHandler,
		advanceDeliveryHandler: advanceDeliveryHandler,
		failDeliveryHandler:    failDeliveryHandler,
		createDriverHandler:    createDriverHandler,
		setDriverStatusHandler: setDriverStatusHandler,
		getOrdersHandler:       getOrdersHandler,
		getDeliveriesHandler:   getDeliveriesHandler,
		getDriversHandler:      getDriversHandler,
		getFleetCountsHandler:  getFleetCountsHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/accept", s.AcceptOrder)
	api.POST("/orders/:id/reject", s.RejectOrder)
	api.POST("/orders/:id/advance", s.AdvanceOrder)
	api.GET("/orders", s.GetOrders)

	api.POST("/deliveries", s.CreateDelivery)
	api.POST("/deliveries/:id/assign", s.AssignDriver)
	api.POST("/deliveries/:id/advance", s.AdvanceDelivery)
	api.POST("/deliveries/:id/fail", s.FailDelivery)
	api.GET("/deliveries", s.GetDeliveries)

	api.POST("/drivers", s.CreateDriver)
	api.PUT("/drivers/:id/status", s.SetDriverStatus)
	api.GET("/drivers", s.GetDrivers)

	api.GET("/fleet/counts", s.GetFleetCounts)

	e.GET("/health", s.Health)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	orderType, err := order.TypeFromString(body.OrderType)
	if err != nil {
		return s.writeError(ctx, err)
	}
	paymentStatus, err := order.PaymentStatusFromString(body.Payment.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}
	payment, err := order.NewPayment(body.Payment.Method, paymentStatus)
	if err != nil {
		return s.writeError(ctx, err)
	}

	items := make([]commands.OrderItemSpec, 0, len(body.Items))
	for _, item := range body.Items {
		unitPrice, priceErr := kernel.NewMoney(item.UnitPriceCents)
		if priceErr != nil {
			return s.writeError(ctx, priceErr)
		}
		items = append(items, commands.OrderItemSpec{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			Options:   item.Options,
			Notes:     item.Notes,
		})
	}

	charges, err := chargesFromBody(body.Charges)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, body.Number, orderType, body.CustomerName,
		items, charges, payment, body.SpecialInstructions,
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: orderID.String()})
}

// AcceptOrder handles POST /api/v1/orders/:id/accept - merchant acceptance.
// The body is optional and may carry an estimated ready time.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	var body AcceptOrder
	if ctx.Request().ContentLength > 0 {
		if err = ctx.Bind(&body); err != nil {
			return s.badRequest(ctx, "Invalid request body")
		}
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, body.EstimatedReadyTime)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectOrder handles POST /api/v1/orders/:id/reject - merchant rejection.
func (s *Server) RejectOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewRejectOrderCommand(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.rejectOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance - moves the order one
// step along the preparation chain.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrders handles GET /api/v1/orders - retrieves the order read model.
// Optional query parameters: status, type, search.
func (s *Server) GetOrders(ctx echo.Context) error {
	var statusFilter *order.Status
	if value := ctx.QueryParam("status"); value != "" {
		status, err := order.StatusFromString(value)
		if err != nil {
			return s.badRequest(ctx, "Invalid status filter")
		}
		statusFilter = &status
	}

	var typeFilter *order.Type
	if value := ctx.QueryParam("type"); value != "" {
		orderType, err := order.TypeFromString(value)
		if err != nil {
			return s.badRequest(ctx, "Invalid type filter")
		}
		typeFilter = &orderType
	}

	query := queries.NewGetOrdersQuery(statusFilter, typeFilter, ctx.QueryParam("search"))
	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.internalError(ctx, "Failed to retrieve orders", err)
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = Order{
			ID:           o.ID.String(),
			Number:       o.Number,
			OrderType:    o.OrderType,
			Status:       o.Status,
			CustomerName: o.CustomerName,
			TotalCents:   o.Total.Cents(),
			CreatedAt:    o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateDelivery handles POST /api/v1/deliveries - cuts a delivery for an
// accepted delivery-type order.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var body NewDelivery
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(body.OrderID)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	customer, err := delivery.NewContact(body.Customer.Name, body.Customer.Phone, body.Customer.Address)
	if err != nil {
		return s.writeError(ctx, err)
	}
	restaurant, err := delivery.NewContact(body.Restaurant.Name, body.Restaurant.Phone, body.Restaurant.Address)
	if err != nil {
		return s.writeError(ctx, err)
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(
		deliveryID, body.Number, orderID, customer, restaurant,
		body.DistanceKm, body.EstimatedMinutes, body.ScheduledTime,
		body.SpecialInstructions,
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: deliveryID.String()})
}

// AssignDriver handles POST /api/v1/deliveries/:id/assign - binds a specific
// driver to a pending delivery.
func (s *Server) AssignDriver(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery id")
	}

	var body AssignDriver
	if err = ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}
	driverID, err := kernel.UUIDFromString(body.DriverID)
	if err != nil {
		return s.badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewAssignDriverCommand(deliveryID, driverID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.assignDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceDelivery handles POST /api/v1/deliveries/:id/advance - moves the
// delivery one step along the transport chain.
func (s *Server) AdvanceDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery id")
	}

	cmd, err := commands.NewAdvanceDeliveryCommand(deliveryID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.advanceDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FailDelivery handles POST /api/v1/deliveries/:id/fail - abandons an active
// delivery with a reason.
func (s *Server) FailDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery id")
	}

	var body FailDelivery
	if err = ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewFailDeliveryCommand(deliveryID, body.Reason)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.failDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDeliveries handles GET /api/v1/deliveries - retrieves the delivery read
// model. Optional query parameters: status, search.
func (s *Server) GetDeliveries(ctx echo.Context) error {
	var statusFilter *delivery.Status
	if value := ctx.QueryParam("status"); value != "" {
		status, err := delivery.StatusFromString(value)
		if err != nil {
			return s.badRequest(ctx, "Invalid status filter")
		}
		statusFilter = &status
	}

	query := queries.NewGetDeliveriesQuery(statusFilter, ctx.QueryParam("search"))
	deliveries, err := s.getDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.internalError(ctx, "Failed to retrieve deliveries", err)
	}

	response := make([]Delivery, len(deliveries))
	for i, d := range deliveries {
		item := Delivery{
			ID:              d.ID.String(),
			Number:          d.Number,
			OrderID:         d.OrderID.String(),
			Status:          d.Status,
			CustomerName:    d.CustomerName,
			CustomerAddress: d.CustomerAddress,
			CreatedAt:       d.CreatedAt,
		}
		if d.DriverID != nil {
			driverID := d.DriverID.String()
			item.DriverID = &driverID
		}
		response[i] = item
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateDriver handles POST /api/v1/drivers - registers a new driver.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var body NewDriver
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	vehicleType, err := driver.VehicleTypeFromString(body.Vehicle.Type)
	if err != nil {
		return s.writeError(ctx, err)
	}
	vehicle, err := driver.NewVehicle(vehicleType, body.Vehicle.Plate)
	if err != nil {
		return s.writeError(ctx, err)
	}

	driverID := kernel.NewUUID()
	cmd, err := commands.NewCreateDriverCommand(driverID, body.Name, body.Phone, body.Rating, vehicle)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.createDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: driverID.String()})
}

// SetDriverStatus handles PUT /api/v1/drivers/:id/status - moves a driver on
// or off shift.
func (s *Server) SetDriverStatus(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid driver id")
	}

	var body DriverStatus
	if err = ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}
	status, err := driver.StatusFromString(body.Status)
	if err != nil {
		return s.badRequest(ctx, "Invalid driver status")
	}

	cmd, err := commands.NewSetDriverStatusCommand(driverID, status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.setDriverStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDrivers handles GET /api/v1/drivers - retrieves the driver read model.
// Optional query parameters: status, search.
func (s *Server) GetDrivers(ctx echo.Context) error {
	var statusFilter *driver.Status
	if value := ctx.QueryParam("status"); value != "" {
		status, err := driver.StatusFromString(value)
		if err != nil {
			return s.badRequest(ctx, "Invalid status filter")
		}
		statusFilter = &status
	}

	query := queries.NewGetDriversQuery(statusFilter, ctx.QueryParam("search"))
	drivers, err := s.getDriversHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.internalError(ctx, "Failed to retrieve drivers", err)
	}

	response := make([]Driver, len(drivers))
	for i, d := range drivers {
		response[i] = Driver{
			ID:                d.ID.String(),
			Name:              d.Name,
			Phone:             d.Phone,
			Status:            d.Status,
			CurrentDeliveries: d.CurrentDeliveries,
			TotalDeliveries:   d.TotalDeliveries,
			Rating:            d.Rating,
			Vehicle: Vehicle{
				Type:  d.VehicleType,
				Plate: d.VehiclePlate,
			},
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetFleetCounts handles GET /api/v1/fleet/counts - the operational snapshot.
func (s *Server) GetFleetCounts(ctx echo.Context) error {
	query := queries.NewGetFleetCountsQuery()
	counts, err := s.getFleetCountsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.internalError(ctx, "Failed to retrieve fleet counts", err)
	}

	return ctx.JSON(http.StatusOK, FleetCounts{
		OrdersByStatus:     counts.OrdersByStatus,
		DeliveriesByStatus: counts.DeliveriesByStatus,
		AvailableDrivers:   counts.AvailableDrivers,
	})
}

// chargesFromBody converts the wire charge breakdown into the domain value.
func chargesFromBody(body Charges) (order.Charges, error) {
	subtotal, err := kernel.NewMoney(body.SubtotalCents)
	if err != nil {
		return order.Charges{}, err
	}
	tax, err := kernel.NewMoney(body.TaxCents)
	if err != nil {
		return order.Charges{}, err
	}
	deliveryFee, err := kernel.NewMoney(body.DeliveryFeeCents)
	if err != nil {
		return order.Charges{}, err
	}
	tip, err := kernel.NewMoney(body.TipCents)
	if err != nil {
		return order.Charges{}, err
	}
	return order.NewCharges(subtotal, tax, deliveryFee, tip), nil
}

// writeError maps a command error onto an HTTP response.
func (s *Server) writeError(ctx echo.Context, err error) error {
	var notFound *errs.ObjectNotFoundError

	switch {
	case errors.As(err, &notFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrAlreadyRecorded),
		errors.Is(err, driver.ErrDriverUnavailable),
		errors.Is(err, delivery.ErrDeliveryNotPending),
		errors.Is(err, delivery.ErrRequiresAssignment):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return s.internalError(ctx, "Request failed", err)
	}
}

// badRequest writes a 400 with a fixed message, used for malformed input
// that never reached the domain.
func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// internalError logs the cause and writes a 500 without leaking it.
func (s *Server) internalError(ctx echo.Context, message string, err error) error {
	s.logger.Error(message,
		"method", ctx.Request().Method,
		"path", ctx.Request().URL.Path,
		"error", err,
	)
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
