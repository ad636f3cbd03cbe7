// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves orders matching an optional filter.
// All filter fields are optional; zero values mean "no constraint".
//
// Example:
//
//	status := order.Pending
//	query := NewGetOrdersQuery(&status, nil, "alice")
//	orders, err := NewGetOrdersQueryHandler(db).Handle(ctx, query)
type GetOrdersQuery struct {
	status    *order.Status
	orderType *order.Type
	search    string

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query to retrieve orders.
//
// Parameters:
//   - status: restrict to one lifecycle status, or nil for all
//   - orderType: restrict to pickup or delivery orders, or nil for all
//   - search: free-text match over order number and customer name, or empty
func NewGetOrdersQuery(status *order.Status, orderType *order.Type, search string) GetOrdersQuery {
	return GetOrdersQuery{
		status:    status,
		orderType: orderType,
		search:    search,
		guard:     guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Status returns the status filter, or nil.
func (q GetOrdersQuery) Status() *order.Status {
	return q.status
}

// OrderType returns the type filter, or nil.
func (q GetOrdersQuery) OrderType() *order.Type {
	return q.orderType
}

// Search returns the free-text filter, possibly empty.
func (q GetOrdersQuery) Search() string {
	return q.search
}

// GetOrdersQueryResponse represents one order in the read model.
type GetOrdersQueryResponse struct {
	ID           kernel.UUID
	Number       string
	OrderType    string
	Status       string
	CustomerName string
	Total        kernel.Money
	CreatedAt    time.Time
}
