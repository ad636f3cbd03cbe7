package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetDeliveriesQueryIsNotConstructed = errors.New(
	"GetDeliveriesQuery must be created via NewGetDeliveriesQuery constructor",
)

// GetDeliveriesQuery retrieves deliveries matching an optional filter.
// All filter fields are optional; zero values mean "no constraint".
type GetDeliveriesQuery struct {
	status *delivery.Status
	search string

	guard guard.ConstructorGuard
}

// NewGetDeliveriesQuery creates a query to retrieve deliveries.
//
// Parameters:
//   - status: restrict to one lifecycle status, or nil for all
//   - search: free-text match over delivery number, customer name, phone,
//     and address, or empty
func NewGetDeliveriesQuery(status *delivery.Status, search string) GetDeliveriesQuery {
	return GetDeliveriesQuery{
		status: status,
		search: search,
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveriesQueryIsNotConstructed)
}

// Status returns the status filter, or nil.
func (q GetDeliveriesQuery) Status() *delivery.Status {
	return q.status
}

// Search returns the free-text filter, possibly empty.
func (q GetDeliveriesQuery) Search() string {
	return q.search
}

// GetDeliveriesQueryResponse represents one delivery in the read model.
type GetDeliveriesQueryResponse struct {
	ID              kernel.UUID
	Number          string
	OrderID         kernel.UUID
	Status          string
	CustomerName    string
	CustomerAddress string
	DriverID        *kernel.UUID
	CreatedAt       time.Time
}
