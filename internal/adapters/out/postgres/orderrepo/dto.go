// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Monetary columns store cents; status and type columns store the domain
// enum values as integers.
type OrderDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number              string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	OrderType           int        `gorm:"type:int;not null"`
	Status              int        `gorm:"type:int;not null;index"`
	CustomerName        string     `gorm:"type:varchar(255);not null"`
	Subtotal            int64      `gorm:"type:bigint;not null"`
	Tax                 int64      `gorm:"type:bigint;not null"`
	DeliveryFee         int64      `gorm:"type:bigint;not null"`
	Tip                 int64      `gorm:"type:bigint;not null"`
	PaymentMethod       string     `gorm:"type:varchar(64);not null"`
	PaymentStatus       int        `gorm:"type:int;not null"`
	SpecialInstructions string     `gorm:"type:text"`
	CreatedAt           time.Time  `gorm:"not null"`
	EstimatedReadyTime  *time.Time `gorm:""`
	Items               []ItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders" instead of "order_dtos".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line in the database.
// Lines are value objects keyed by their position within the order.
type ItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"type:int;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Quantity  int       `gorm:"type:int;not null"`
	UnitPrice int64     `gorm:"type:bigint;not null"`
	Options   []string  `gorm:"serializer:json;type:jsonb"`
	Notes     string    `gorm:"type:text"`
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))

	for i, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			OrderID:   orderID,
			Position:  i,
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Cents(),
			Options:   item.Options(),
			Notes:     item.Notes(),
		})
	}

	charges := aggregate.Charges()

	return OrderDTO{
		ID:                  orderID,
		Number:              aggregate.Number(),
		OrderType:           int(aggregate.OrderType()),
		Status:              int(aggregate.Status()),
		CustomerName:        aggregate.CustomerName(),
		Subtotal:            charges.Subtotal().Cents(),
		Tax:                 charges.Tax().Cents(),
		DeliveryFee:         charges.DeliveryFee().Cents(),
		Tip:                 charges.Tip().Cents(),
		PaymentMethod:       aggregate.Payment().Method(),
		PaymentStatus:       int(aggregate.Payment().Status()),
		SpecialInstructions: aggregate.SpecialInstructions(),
		CreatedAt:           aggregate.CreatedAt(),
		EstimatedReadyTime:  aggregate.EstimatedReadyTime(),
		Items:               itemDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including all order lines using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	charges, err := chargesToDomain(dto)
	if err != nil {
		return nil, err
	}

	payment, err := order.NewPayment(dto.PaymentMethod, order.PaymentStatus(dto.PaymentStatus))
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		order.Type(dto.OrderType),
		order.Status(dto.Status),
		dto.CustomerName,
		items,
		charges,
		payment,
		dto.SpecialInstructions,
		dto.CreatedAt,
		dto.EstimatedReadyTime,
	)
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

// chargesToDomain rebuilds the monetary breakdown from the stored cent columns.
func chargesToDomain(dto OrderDTO) (order.Charges, error) {
	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return order.Charges{}, err
	}
	tax, err := kernel.NewMoney(dto.Tax)
	if err != nil {
		return order.Charges{}, err
	}
	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return order.Charges{}, err
	}
	tip, err := kernel.NewMoney(dto.Tip)
	if err != nil {
		return order.Charges{}, err
	}
	return order.NewCharges(subtotal, tax, deliveryFee, tip), nil
}
