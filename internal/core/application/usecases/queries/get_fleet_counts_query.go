package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrGetFleetCountsQueryIsNotConstructed = errors.New(
	"GetFleetCountsQuery must be created via NewGetFleetCountsQuery constructor",
)

// GetFleetCountsQuery retrieves the operational snapshot: how many orders
// and deliveries sit in each status, and how many drivers are free.
// The counts are recomputed per call; nothing is cached.
type GetFleetCountsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetFleetCountsQuery creates a query to retrieve the fleet snapshot.
// This is a parameterless query.
func NewGetFleetCountsQuery() GetFleetCountsQuery {
	return GetFleetCountsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetFleetCountsQuery) Validate() error {
	return q.guard.Validate(ErrGetFleetCountsQueryIsNotConstructed)
}

// GetFleetCountsQueryResponse represents the fleet snapshot in the read model.
// Status maps are keyed by the human-readable status names; statuses with no
// records are absent.
type GetFleetCountsQueryResponse struct {
	OrdersByStatus     map[string]int
	DeliveriesByStatus map[string]int
	AvailableDrivers   int
}
