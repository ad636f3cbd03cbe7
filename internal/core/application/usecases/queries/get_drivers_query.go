package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetDriversQueryIsNotConstructed = errors.New(
	"GetDriversQuery must be created via NewGetDriversQuery constructor",
)

// GetDriversQuery retrieves drivers matching an optional filter.
// All filter fields are optional; zero values mean "no constraint".
type GetDriversQuery struct {
	status *driver.Status
	search string

	guard guard.ConstructorGuard
}

// NewGetDriversQuery creates a query to retrieve drivers.
//
// Parameters:
//   - status: restrict to one availability state, or nil for all
//   - search: free-text match over driver name and phone, or empty
func NewGetDriversQuery(status *driver.Status, search string) GetDriversQuery {
	return GetDriversQuery{
		status: status,
		search: search,
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetDriversQueryIsNotConstructed)
}

// Status returns the status filter, or nil.
func (q GetDriversQuery) Status() *driver.Status {
	return q.status
}

// Search returns the free-text filter, possibly empty.
func (q GetDriversQuery) Search() string {
	return q.search
}

// GetDriversQueryResponse represents one driver in the read model.
type GetDriversQueryResponse struct {
	ID                kernel.UUID
	Name              string
	Phone             string
	Status            string
	CurrentDeliveries int
	TotalDeliveries   int
	Rating            float64
	VehicleType       string
	VehiclePlate      string
}
