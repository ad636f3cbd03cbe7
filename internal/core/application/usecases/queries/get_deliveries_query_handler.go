package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveriesQueryHandler retrieves delivery read models from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveriesQueryHandler creates a handler for delivery retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetDeliveriesQueryHandler(db *gorm.DB) GetDeliveriesQueryHandler {
	return GetDeliveriesQueryHandler{db: db}
}

// Handle executes the query to retrieve matching deliveries.
// Returns a slice of delivery read models sorted by creation time, oldest
// first, matching the queue order used by automatic dispatch.
func (h GetDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveriesQuery,
) ([]GetDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			number,
			order_id,
			status,
			customer_name,
			customer_address,
			driver_id,
			created_at
		FROM deliveries
		WHERE 1 = 1
	`
	args := make([]any, 0, 5)

	if status := query.Status(); status != nil {
		sql += " AND status = ?"
		args = append(args, int(*status))
	}
	if search := query.Search(); search != "" {
		sql += ` AND (
			number ILIKE ?
			OR customer_name ILIKE ?
			OR customer_phone ILIKE ?
			OR customer_address ILIKE ?
		)`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}
	sql += " ORDER BY created_at ASC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]GetDeliveriesQueryResponse, 0)
	for rows.Next() {
		var resp GetDeliveriesQueryResponse
		var id, orderID uuid.UUID
		var driverID *uuid.UUID
		var status int
		var createdAt time.Time

		if err = rows.Scan(
			&id,
			&resp.Number,
			&orderID,
			&status,
			&resp.CustomerName,
			&resp.CustomerAddress,
			&driverID,
			&createdAt,
		); err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = deliveryID

		oID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderID = oID

		if driverID != nil {
			dID, idErr := kernel.UUIDFromBytes((*driverID)[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.DriverID = &dID
		}

		resp.Status = delivery.Status(status).String()
		resp.CreatedAt = createdAt
		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
