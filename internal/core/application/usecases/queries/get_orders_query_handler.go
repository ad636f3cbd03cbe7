package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler retrieves order read models from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve matching orders.
// Returns a slice of order read models sorted by creation time, newest
// first. The total is recomputed from the stored charge parts per call.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			number,
			order_type,
			status,
			customer_name,
			subtotal + tax + delivery_fee + tip AS total,
			created_at
		FROM orders
		WHERE 1 = 1
	`
	args := make([]any, 0, 4)

	if status := query.Status(); status != nil {
		sql += " AND status = ?"
		args = append(args, int(*status))
	}
	if orderType := query.OrderType(); orderType != nil {
		sql += " AND order_type = ?"
		args = append(args, int(*orderType))
	}
	if search := query.Search(); search != "" {
		sql += " AND (number ILIKE ? OR customer_name ILIKE ?)"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	sql += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetOrdersQueryResponse
		var id uuid.UUID
		var orderType, status int
		var totalCents int64
		var createdAt time.Time

		if err = rows.Scan(
			&id,
			&resp.Number,
			&orderType,
			&status,
			&resp.CustomerName,
			&totalCents,
			&createdAt,
		); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		total, moneyErr := kernel.NewMoney(totalCents)
		if moneyErr != nil {
			return nil, moneyErr
		}

		resp.ID = orderID
		resp.OrderType = order.Type(orderType).String()
		resp.Status = order.Status(status).String()
		resp.Total = total
		resp.CreatedAt = createdAt
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
