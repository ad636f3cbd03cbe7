package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriversQueryHandler retrieves driver read models from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetDriversQueryHandler struct {
	db *gorm.DB
}

// NewGetDriversQueryHandler creates a handler for driver retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetDriversQueryHandler(db *gorm.DB) GetDriversQueryHandler {
	return GetDriversQueryHandler{db: db}
}

// Handle executes the query to retrieve matching drivers.
// Returns a slice of driver read models sorted by rating, best first.
func (h GetDriversQueryHandler) Handle(
	ctx context.Context,
	query GetDriversQuery,
) ([]GetDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			name,
			phone,
			status,
			current_deliveries,
			total_deliveries,
			rating,
			vehicle_type,
			vehicle_plate
		FROM drivers
		WHERE 1 = 1
	`
	args := make([]any, 0, 3)

	if status := query.Status(); status != nil {
		sql += " AND status = ?"
		args = append(args, int(*status))
	}
	if search := query.Search(); search != "" {
		sql += " AND (name ILIKE ? OR phone ILIKE ?)"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	sql += " ORDER BY rating DESC, name ASC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]GetDriversQueryResponse, 0)
	for rows.Next() {
		var resp GetDriversQueryResponse
		var id uuid.UUID
		var status, vehicleType int

		if err = rows.Scan(
			&id,
			&resp.Name,
			&resp.Phone,
			&status,
			&resp.CurrentDeliveries,
			&resp.TotalDeliveries,
			&resp.Rating,
			&vehicleType,
			&resp.VehiclePlate,
		); err != nil {
			return nil, err
		}

		driverID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		resp.ID = driverID
		resp.Status = driver.Status(status).String()
		resp.VehicleType = driver.VehicleType(vehicleType).String()
		drivers = append(drivers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
