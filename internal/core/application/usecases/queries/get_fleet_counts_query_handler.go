package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetFleetCountsQueryHandler computes the operational snapshot from the
// database. Uses direct SQL aggregation for optimal read performance in the
// CQRS pattern.
type GetFleetCountsQueryHandler struct {
	db *gorm.DB
}

// NewGetFleetCountsQueryHandler creates a handler for fleet snapshot queries.
// Requires a GORM database connection for query execution.
func NewGetFleetCountsQueryHandler(db *gorm.DB) GetFleetCountsQueryHandler {
	return GetFleetCountsQueryHandler{db: db}
}

// Handle executes the snapshot query.
// Runs three aggregations: orders per status, deliveries per status, and
// the available-driver count.
func (h GetFleetCountsQueryHandler) Handle(
	ctx context.Context,
	query GetFleetCountsQuery,
) (GetFleetCountsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetFleetCountsQueryResponse{}, err
	}

	resp := GetFleetCountsQueryResponse{
		OrdersByStatus:     make(map[string]int),
		DeliveriesByStatus: make(map[string]int),
	}

	orderCounts, err := h.countByStatus(ctx, "orders")
	if err != nil {
		return GetFleetCountsQueryResponse{}, err
	}
	for status, count := range orderCounts {
		resp.OrdersByStatus[order.Status(status).String()] = count
	}

	deliveryCounts, err := h.countByStatus(ctx, "deliveries")
	if err != nil {
		return GetFleetCountsQueryResponse{}, err
	}
	for status, count := range deliveryCounts {
		resp.DeliveriesByStatus[delivery.Status(status).String()] = count
	}

	err = h.db.WithContext(ctx).Raw(
		"SELECT COUNT(*) FROM drivers WHERE status = ?",
		int(driver.Available),
	).Scan(&resp.AvailableDrivers).Error
	if err != nil {
		return GetFleetCountsQueryResponse{}, err
	}

	return resp, nil
}

// countByStatus groups a table's rows by their integer status column.
// The table name comes from a fixed internal set, never from user input.
func (h GetFleetCountsQueryHandler) countByStatus(ctx context.Context, table string) (map[int]int, error) {
	rows, err := h.db.WithContext(ctx).Raw(
		"SELECT status, COUNT(*) FROM " + table + " GROUP BY status",
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var status, count int
		if err = rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
