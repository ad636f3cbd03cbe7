package delivery_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper functions.
func createCustomerContact(t *testing.T) delivery.Contact {
	t.Helper()
	c, err := delivery.NewContact("Alice Smith", "+15550101", "12 Oak Street")
	require.NoError(t, err)
	return c
}

func createRestaurantContact(t *testing.T) delivery.Contact {
	t.Helper()
	c, err := delivery.NewContact("Luigi's", "", "4 Market Square")
	require.NoError(t, err)
	return c
}

func createDeliveryItems(t *testing.T) []order.Item {
	t.Helper()
	item, err := order.NewItem("Margherita", 2, kernel.MustNewMoney(1250), nil, "")
	require.NoError(t, err)
	return []order.Item{item}
}

func createDeliveryPayment(t *testing.T) order.Payment {
	t.Helper()
	p, err := order.NewPayment("card", order.PaymentPaid)
	require.NoError(t, err)
	return p
}

func createValidDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(),
		"DEL-0001",
		kernel.NewUUID(),
		createCustomerContact(t),
		createRestaurantContact(t),
		createDeliveryItems(t),
		3.2,
		25,
		nil,
		"leave at the door",
		createDeliveryPayment(t),
	)
	require.NoError(t, err)
	require.NotNil(t, d)
	return d
}

// createActiveDelivery returns a delivery assigned to a fresh driver ID.
func createActiveDelivery(t *testing.T) (*delivery.Delivery, kernel.UUID) {
	t.Helper()
	d := createValidDelivery(t)
	driverID := kernel.NewUUID()
	require.NoError(t, d.AssignDriver(driverID))
	return d, driverID
}

func TestNewDelivery(t *testing.T) {
	t.Run("should create delivery with valid parameters", func(t *testing.T) {
		d := createValidDelivery(t)

		require.NoError(t, d.Validate())
		assert.Equal(t, delivery.Pending, d.Status())
		assert.Equal(t, "DEL-0001", d.Number())
		assert.Nil(t, d.DriverID())
		assert.Nil(t, d.ActualPickupTime())
		assert.Nil(t, d.ActualDeliveryTime())
		assert.InDelta(t, 3.2, d.DistanceKm(), 0.0001)
		assert.Equal(t, 25, d.EstimatedMinutes())
		assert.Equal(t, "leave at the door", d.SpecialInstructions())
		assert.Empty(t, d.FailureReason())
		assert.False(t, d.CreatedAt().IsZero())
	})

	t.Run("should reject empty delivery number", func(t *testing.T) {
		_, err := delivery.NewDelivery(
			kernel.NewUUID(), "", kernel.NewUUID(),
			createCustomerContact(t), createRestaurantContact(t),
			createDeliveryItems(t), 1, 10, nil, "", createDeliveryPayment(t),
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject invalid order ID", func(t *testing.T) {
		var zeroID kernel.UUID

		_, err := delivery.NewDelivery(
			kernel.NewUUID(), "DEL-0002", zeroID,
			createCustomerContact(t), createRestaurantContact(t),
			createDeliveryItems(t), 1, 10, nil, "", createDeliveryPayment(t),
		)

		require.Error(t, err)
	})

	t.Run("should reject empty items", func(t *testing.T) {
		_, err := delivery.NewDelivery(
			kernel.NewUUID(), "DEL-0003", kernel.NewUUID(),
			createCustomerContact(t), createRestaurantContact(t),
			nil, 1, 10, nil, "", createDeliveryPayment(t),
		)

		require.Error(t, err)
	})

	t.Run("should reject negative route estimates", func(t *testing.T) {
		_, err := delivery.NewDelivery(
			kernel.NewUUID(), "DEL-0004", kernel.NewUUID(),
			createCustomerContact(t), createRestaurantContact(t),
			createDeliveryItems(t), -1, 10, nil, "", createDeliveryPayment(t),
		)
		require.Error(t, err)

		_, err = delivery.NewDelivery(
			kernel.NewUUID(), "DEL-0005", kernel.NewUUID(),
			createCustomerContact(t), createRestaurantContact(t),
			createDeliveryItems(t), 1, -10, nil, "", createDeliveryPayment(t),
		)
		require.Error(t, err)
	})

	t.Run("should reject contact without address", func(t *testing.T) {
		_, err := delivery.NewDelivery(
			kernel.NewUUID(), "DEL-0006", kernel.NewUUID(),
			delivery.Contact{}, createRestaurantContact(t),
			createDeliveryItems(t), 1, 10, nil, "", createDeliveryPayment(t),
		)

		require.Error(t, err)
	})
}

func TestRestoreDelivery(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should restore active delivery with driver", func(t *testing.T) {
		driverID := kernel.NewUUID()
		pickedUpAt := createdAt.Add(15 * time.Minute)

		d, err := delivery.RestoreDelivery(
			kernel.NewUUID(), "DEL-0010", kernel.NewUUID(), delivery.PickedUp,
			createCustomerContact(t), createRestaurantContact(t), createDeliveryItems(t),
			&driverID, 2.5, 20, nil, &pickedUpAt, nil, "", "", createDeliveryPayment(t),
			createdAt, createdAt.Add(16*time.Minute),
		)

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.Equal(t, delivery.PickedUp, d.Status())
		require.NotNil(t, d.DriverID())
		assert.True(t, driverID.IsEqual(*d.DriverID()))
		require.NotNil(t, d.ActualPickupTime())
		assert.Equal(t, pickedUpAt, *d.ActualPickupTime())
	})

	t.Run("should reject active delivery without driver", func(t *testing.T) {
		_, err := delivery.RestoreDelivery(
			kernel.NewUUID(), "DEL-0011", kernel.NewUUID(), delivery.Assigned,
			createCustomerContact(t), createRestaurantContact(t), createDeliveryItems(t),
			nil, 2.5, 20, nil, nil, nil, "", "", createDeliveryPayment(t),
			createdAt, createdAt,
		)

		require.Error(t, err)
	})

	t.Run("should reject terminal delivery with driver", func(t *testing.T) {
		driverID := kernel.NewUUID()

		_, err := delivery.RestoreDelivery(
			kernel.NewUUID(), "DEL-0012", kernel.NewUUID(), delivery.Delivered,
			createCustomerContact(t), createRestaurantContact(t), createDeliveryItems(t),
			&driverID, 2.5, 20, nil, nil, nil, "", "", createDeliveryPayment(t),
			createdAt, createdAt,
		)

		require.Error(t, err)
	})

	t.Run("should reject invalid persisted status", func(t *testing.T) {
		_, err := delivery.RestoreDelivery(
			kernel.NewUUID(), "DEL-0013", kernel.NewUUID(), delivery.Unknown,
			createCustomerContact(t), createRestaurantContact(t), createDeliveryItems(t),
			nil, 2.5, 20, nil, nil, nil, "", "", createDeliveryPayment(t),
			createdAt, createdAt,
		)

		require.Error(t, err)
	})
}

func TestDelivery_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var d delivery.Delivery

		require.ErrorIs(t, d.Validate(), delivery.ErrDeliveryIsNotConstructed)
	})

	t.Run("nil delivery is invalid", func(t *testing.T) {
		var d *delivery.Delivery

		require.ErrorIs(t, d.Validate(), delivery.ErrDeliveryIsNotConstructed)
	})
}

func TestDelivery_AssignDriver(t *testing.T) {
	t.Run("should bind driver to pending delivery", func(t *testing.T) {
		d := createValidDelivery(t)
		driverID := kernel.NewUUID()

		require.NoError(t, d.AssignDriver(driverID))

		assert.Equal(t, delivery.Assigned, d.Status())
		require.NotNil(t, d.DriverID())
		assert.True(t, driverID.IsEqual(*d.DriverID()))
	})

	t.Run("should reject second assignment and keep first driver", func(t *testing.T) {
		d, firstDriver := createActiveDelivery(t)

		err := d.AssignDriver(kernel.NewUUID())

		require.ErrorIs(t, err, delivery.ErrDeliveryNotPending)
		assert.Equal(t, delivery.Assigned, d.Status())
		assert.True(t, firstDriver.IsEqual(*d.DriverID()))
	})

	t.Run("should reject invalid driver ID", func(t *testing.T) {
		d := createValidDelivery(t)
		var zeroID kernel.UUID

		err := d.AssignDriver(zeroID)

		require.Error(t, err)
		assert.Equal(t, delivery.Pending, d.Status())
		assert.Nil(t, d.DriverID())
	})
}

func TestDelivery_Advance(t *testing.T) {
	t.Run("should fail on pending delivery", func(t *testing.T) {
		d := createValidDelivery(t)

		err := d.Advance()

		require.ErrorIs(t, err, delivery.ErrRequiresAssignment)
		assert.Equal(t, delivery.Pending, d.Status())
	})

	t.Run("should walk the transport chain and stamp timestamps once", func(t *testing.T) {
		d, driverID := createActiveDelivery(t)

		require.NoError(t, d.Advance())
		assert.Equal(t, delivery.PickedUp, d.Status())
		require.NotNil(t, d.ActualPickupTime())
		assert.Nil(t, d.ActualDeliveryTime())
		pickupAt := *d.ActualPickupTime()

		require.NoError(t, d.Advance())
		assert.Equal(t, delivery.InTransit, d.Status())
		assert.Equal(t, pickupAt, *d.ActualPickupTime())
		assert.True(t, driverID.IsEqual(*d.DriverID()))

		require.NoError(t, d.Advance())
		assert.Equal(t, delivery.Delivered, d.Status())
		require.NotNil(t, d.ActualDeliveryTime())
		assert.Equal(t, pickupAt, *d.ActualPickupTime())
	})

	t.Run("should release driver when delivered", func(t *testing.T) {
		d, _ := createActiveDelivery(t)

		require.NoError(t, d.Advance())
		require.NoError(t, d.Advance())
		require.NotNil(t, d.DriverID())

		require.NoError(t, d.Advance())

		assert.Nil(t, d.DriverID())
	})

	t.Run("should fail on delivered delivery and not mutate", func(t *testing.T) {
		d, _ := createActiveDelivery(t)
		for d.Status() != delivery.Delivered {
			require.NoError(t, d.Advance())
		}
		deliveredAt := *d.ActualDeliveryTime()

		err := d.Advance()

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, delivery.Delivered, d.Status())
		assert.Equal(t, deliveredAt, *d.ActualDeliveryTime())
	})

	t.Run("should refuse to restamp a restored pickup time", func(t *testing.T) {
		driverID := kernel.NewUUID()
		createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		pickedUpAt := createdAt.Add(10 * time.Minute)

		// Restored as Assigned but already carrying a pickup stamp, as left by
		// an interrupted write. Advancing must not overwrite the stamp.
		d, err := delivery.RestoreDelivery(
			kernel.NewUUID(), "DEL-0020", kernel.NewUUID(), delivery.Assigned,
			createCustomerContact(t), createRestaurantContact(t), createDeliveryItems(t),
			&driverID, 2.5, 20, nil, &pickedUpAt, nil, "", "", createDeliveryPayment(t),
			createdAt, createdAt,
		)
		require.NoError(t, err)

		err = d.Advance()

		require.ErrorIs(t, err, errs.ErrAlreadyRecorded)
		assert.Equal(t, delivery.Assigned, d.Status())
		assert.Equal(t, pickedUpAt, *d.ActualPickupTime())
	})
}

func TestDelivery_MarkFailed(t *testing.T) {
	t.Run("should fail active delivery and record reason", func(t *testing.T) {
		d, _ := createActiveDelivery(t)
		require.NoError(t, d.Advance())

		require.NoError(t, d.MarkFailed("customer unreachable"))

		assert.Equal(t, delivery.Failed, d.Status())
		assert.Equal(t, "customer unreachable", d.FailureReason())
		assert.Nil(t, d.DriverID())
	})

	t.Run("should require a reason", func(t *testing.T) {
		d, _ := createActiveDelivery(t)

		err := d.MarkFailed("")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, delivery.Assigned, d.Status())
	})

	t.Run("should not fail a pending delivery", func(t *testing.T) {
		d := createValidDelivery(t)

		err := d.MarkFailed("no drivers")

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, delivery.Pending, d.Status())
		assert.Empty(t, d.FailureReason())
	})

	t.Run("should not fail a delivered delivery", func(t *testing.T) {
		d, _ := createActiveDelivery(t)
		for d.Status() != delivery.Delivered {
			require.NoError(t, d.Advance())
		}

		err := d.MarkFailed("too late")

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, delivery.Delivered, d.Status())
	})
}

func TestContact(t *testing.T) {
	t.Run("should create valid contact", func(t *testing.T) {
		c, err := delivery.NewContact("Alice", "+15550101", "12 Oak Street")

		require.NoError(t, err)
		assert.Equal(t, "Alice", c.Name())
		assert.Equal(t, "+15550101", c.Phone())
		assert.Equal(t, "12 Oak Street", c.Address())
	})

	t.Run("phone is optional", func(t *testing.T) {
		_, err := delivery.NewContact("Luigi's", "", "4 Market Square")

		require.NoError(t, err)
	})

	t.Run("should reject empty name or address", func(t *testing.T) {
		_, err := delivery.NewContact("", "", "4 Market Square")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = delivery.NewContact("Luigi's", "", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
