// Package deliveryrepo provides data transfer objects and mapping functions for delivery persistence.
// This package implements the repository pattern for the delivery domain aggregate, handling
// the conversion between domain entities and database representations.
package deliveryrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
// Both contacts are flattened into prefixed column groups; the driver binding
// is a nullable foreign key that is only populated while the delivery is active.
type DeliveryDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number              string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	OrderID             uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status              int        `gorm:"type:int;not null;index"`
	Customer            ContactDTO `gorm:"embedded;embeddedPrefix:customer_"`
	Restaurant          ContactDTO `gorm:"embedded;embeddedPrefix:restaurant_"`
	DriverID            *uuid.UUID `gorm:"type:uuid;index"`
	DistanceKm          float64    `gorm:"type:numeric(8,2);not null"`
	EstimatedMinutes    int        `gorm:"type:int;not null"`
	ScheduledTime       *time.Time `gorm:""`
	ActualPickupTime    *time.Time `gorm:""`
	ActualDeliveryTime  *time.Time `gorm:""`
	SpecialInstructions string     `gorm:"type:text"`
	FailureReason       string     `gorm:"type:text"`
	PaymentMethod       string     `gorm:"type:varchar(64);not null"`
	PaymentStatus       int        `gorm:"type:int;not null"`
	CreatedAt           time.Time  `gorm:"not null;index"`
	UpdatedAt           time.Time  `gorm:"not null"`
	Items               []ItemDTO  `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for delivery entities.
// Overrides GORM's default naming convention to use "deliveries" instead of "delivery_dtos".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// ContactDTO represents an embedded contact within the deliveries table.
type ContactDTO struct {
	Name    string `gorm:"type:varchar(255);not null"`
	Phone   string `gorm:"type:varchar(64)"`
	Address string `gorm:"type:text;not null"`
}

// ItemDTO represents one snapshotted order line in the database.
// The snapshot is immutable after the delivery is cut.
type ItemDTO struct {
	DeliveryID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"type:int;primaryKey"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Quantity   int       `gorm:"type:int;not null"`
	UnitPrice  int64     `gorm:"type:bigint;not null"`
	Options    []string  `gorm:"serializer:json;type:jsonb"`
	Notes      string    `gorm:"type:text"`
}

// TableName specifies the database table name for delivery line entities.
func (ItemDTO) TableName() string {
	return "delivery_items"
}

// fromDomain converts a delivery domain aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	deliveryID := aggregate.ID().Bytes()
	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))

	for i, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			DeliveryID: deliveryID,
			Position:   i,
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice().Cents(),
			Options:    item.Options(),
			Notes:      item.Notes(),
		})
	}

	var driverID *uuid.UUID
	if aggregate.DriverID() != nil {
		raw := aggregate.DriverID().Bytes()
		driverID = &raw
	}

	return DeliveryDTO{
		ID:                  deliveryID,
		Number:              aggregate.Number(),
		OrderID:             aggregate.OrderID().Bytes(),
		Status:              int(aggregate.Status()),
		Customer:            contactFromDomain(aggregate.Customer()),
		Restaurant:          contactFromDomain(aggregate.Restaurant()),
		DriverID:            driverID,
		DistanceKm:          aggregate.DistanceKm(),
		EstimatedMinutes:    aggregate.EstimatedMinutes(),
		ScheduledTime:       aggregate.ScheduledTime(),
		ActualPickupTime:    aggregate.ActualPickupTime(),
		ActualDeliveryTime:  aggregate.ActualDeliveryTime(),
		SpecialInstructions: aggregate.SpecialInstructions(),
		FailureReason:       aggregate.FailureReason(),
		PaymentMethod:       aggregate.Payment().Method(),
		PaymentStatus:       int(aggregate.Payment().Status()),
		CreatedAt:           aggregate.CreatedAt(),
		UpdatedAt:           aggregate.UpdatedAt(),
		Items:               itemDTOs,
	}
}

// contactFromDomain flattens a contact value object into its column group.
func contactFromDomain(c delivery.Contact) ContactDTO {
	return ContactDTO{
		Name:    c.Name(),
		Phone:   c.Phone(),
		Address: c.Address(),
	}
}

// toDomain converts a database DTO to a delivery domain aggregate.
// Reconstructs the complete aggregate including the line snapshot using RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	customer, err := contactToDomain(dto.Customer)
	if err != nil {
		return nil, err
	}

	restaurant, err := contactToDomain(dto.Restaurant)
	if err != nil {
		return nil, err
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	payment, err := order.NewPayment(dto.PaymentMethod, order.PaymentStatus(dto.PaymentStatus))
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		dto.Number,
		orderID,
		delivery.Status(dto.Status),
		customer,
		restaurant,
		items,
		driverID,
		dto.DistanceKm,
		dto.EstimatedMinutes,
		dto.ScheduledTime,
		dto.ActualPickupTime,
		dto.ActualDeliveryTime,
		dto.SpecialInstructions,
		dto.FailureReason,
		payment,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

// contactToDomain rebuilds a contact value object from its column group.
func contactToDomain(dto ContactDTO) (delivery.Contact, error) {
	return delivery.NewContact(dto.Name, dto.Phone, dto.Address)
}

// itemsToDomain converts line DTOs to domain value objects in stored order.
func itemsToDomain(dtos []ItemDTO) ([]order.Item, error) {
	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		unitPrice, err := kernel.NewMoney(dto.UnitPrice)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(dto.Name, dto.Quantity, unitPrice, dto.Options, dto.Notes)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
