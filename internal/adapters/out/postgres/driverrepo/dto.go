// Package driverrepo provides data transfer objects and mapping functions for driver persistence.
// This package implements the repository pattern for the driver domain aggregate, handling
// the conversion between domain entities and database representations.
package driverrepo

import (
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver aggregates.
// The vehicle value object is flattened into a prefixed column group.
type DriverDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name              string     `gorm:"type:varchar(255);not null"`
	Phone             string     `gorm:"type:varchar(64);not null"`
	Status            int        `gorm:"type:int;not null;index"`
	CurrentDeliveries int        `gorm:"type:int;not null"`
	TotalDeliveries   int        `gorm:"type:int;not null"`
	Rating            float64    `gorm:"type:numeric(3,2);not null"`
	Vehicle           VehicleDTO `gorm:"embedded;embeddedPrefix:vehicle_"`
}

// TableName specifies the database table name for driver entities.
// Overrides GORM's default naming convention to use "drivers" instead of "driver_dtos".
func (DriverDTO) TableName() string {
	return "drivers"
}

// VehicleDTO represents the embedded vehicle within the drivers table.
type VehicleDTO struct {
	Type  int    `gorm:"type:int;not null"`
	Plate string `gorm:"type:varchar(32)"`
}

// fromDomain converts a driver domain aggregate to its database representation.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:                aggregate.ID().Bytes(),
		Name:              aggregate.Name(),
		Phone:             aggregate.Phone(),
		Status:            int(aggregate.Status()),
		CurrentDeliveries: aggregate.CurrentDeliveries(),
		TotalDeliveries:   aggregate.TotalDeliveries(),
		Rating:            aggregate.Rating(),
		Vehicle: VehicleDTO{
			Type:  int(aggregate.Vehicle().Type()),
			Plate: aggregate.Vehicle().Plate(),
		},
	}
}

// toDomain converts a database DTO to a driver domain aggregate.
// Uses RestoreDriver so the status and load consistency invariant is
// re-checked on every load.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vehicle, err := driver.NewVehicle(driver.VehicleType(dto.Vehicle.Type), dto.Vehicle.Plate)
	if err != nil {
		return nil, err
	}

	return driver.RestoreDriver(
		id,
		dto.Name,
		dto.Phone,
		driver.Status(dto.Status),
		dto.CurrentDeliveries,
		dto.TotalDeliveries,
		dto.Rating,
		vehicle,
	)
}
