package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper functions.
func createValidItems(t *testing.T) []order.Item {
	t.Helper()
	item, err := order.NewItem("Margherita", 2, kernel.MustNewMoney(1250), []string{"extra cheese"}, "")
	require.NoError(t, err)
	return []order.Item{item}
}

func createValidPayment(t *testing.T) order.Payment {
	t.Helper()
	payment, err := order.NewPayment("card", order.PaymentPaid)
	require.NoError(t, err)
	return payment
}

func createValidCharges() order.Charges {
	return order.NewCharges(
		kernel.MustNewMoney(2500),
		kernel.MustNewMoney(200),
		kernel.MustNewMoney(300),
		kernel.MustNewMoney(400),
	)
}

func createValidOrder(t *testing.T, orderType order.Type) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-0001",
		orderType,
		"Alice Smith",
		createValidItems(t),
		createValidCharges(),
		createValidPayment(t),
		"ring the bell",
	)
	require.NoError(t, err)
	require.NotNil(t, o)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order with valid parameters", func(t *testing.T) {
		o := createValidOrder(t, order.TypeDelivery)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "ORD-0001", o.Number())
		assert.Equal(t, order.TypeDelivery, o.OrderType())
		assert.Equal(t, "Alice Smith", o.CustomerName())
		assert.Len(t, o.Items(), 1)
		assert.Equal(t, int64(3400), o.Charges().Total().Cents())
		assert.Equal(t, "ring the bell", o.SpecialInstructions())
		assert.False(t, o.CreatedAt().IsZero())
		assert.Nil(t, o.EstimatedReadyTime())
	})

	t.Run("should reject invalid ID", func(t *testing.T) {
		var zeroID kernel.UUID

		_, err := order.NewOrder(
			zeroID, "ORD-0002", order.TypePickup, "Bob",
			createValidItems(t), createValidCharges(), createValidPayment(t), "",
		)

		require.Error(t, err)
	})

	t.Run("should reject empty order number", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "", order.TypePickup, "Bob",
			createValidItems(t), createValidCharges(), createValidPayment(t), "",
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject empty customer name", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-0003", order.TypePickup, "",
			createValidItems(t), createValidCharges(), createValidPayment(t), "",
		)

		require.Error(t, err)
	})

	t.Run("should reject empty items", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-0004", order.TypePickup, "Bob",
			nil, createValidCharges(), createValidPayment(t), "",
		)

		require.Error(t, err)
	})

	t.Run("should reject invalid order type", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-0005", order.TypeUnknown, "Bob",
			createValidItems(t), createValidCharges(), createValidPayment(t), "",
		)

		require.Error(t, err)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore order with persisted status", func(t *testing.T) {
		createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		ready := createdAt.Add(20 * time.Minute)

		o, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-0006", order.TypeDelivery, order.Preparing,
			"Carol", createValidItems(t), createValidCharges(), createValidPayment(t),
			"", createdAt, &ready,
		)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Preparing, o.Status())
		assert.Equal(t, createdAt, o.CreatedAt())
		require.NotNil(t, o.EstimatedReadyTime())
		assert.Equal(t, ready, *o.EstimatedReadyTime())
	})

	t.Run("should reject invalid persisted status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-0007", order.TypeDelivery, order.Unknown,
			"Carol", createValidItems(t), createValidCharges(), createValidPayment(t),
			"", time.Now(), nil,
		)

		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil order is invalid", func(t *testing.T) {
		var o *order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Accept(t *testing.T) {
	t.Run("should confirm pending order", func(t *testing.T) {
		o := createValidOrder(t, order.TypeDelivery)

		require.NoError(t, o.Accept())
		assert.Equal(t, order.Confirmed, o.Status())
	})

	t.Run("should fail on already confirmed order and not mutate", func(t *testing.T) {
		o := createValidOrder(t, order.TypeDelivery)
		require.NoError(t, o.Accept())

		err := o.Accept()

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Confirmed, o.Status())
	})
}

func TestOrder_Reject(t *testing.T) {
	t.Run("should cancel pending order", func(t *testing.T) {
		o := createValidOrder(t, order.TypePickup)

		require.NoError(t, o.Reject())
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("should fail after acceptance", func(t *testing.T) {
		o := createValidOrder(t, order.TypePickup)
		require.NoError(t, o.Accept())

		err := o.Reject()

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Confirmed, o.Status())
	})
}

func TestOrder_Advance(t *testing.T) {
	t.Run("should walk the full preparation chain", func(t *testing.T) {
		o := createValidOrder(t, order.TypeDelivery)
		require.NoError(t, o.Accept())

		require.NoError(t, o.Advance())
		assert.Equal(t, order.Preparing, o.Status())

		require.NoError(t, o.Advance())
		assert.Equal(t, order.Ready, o.Status())

		require.NoError(t, o.Advance())
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("should fail on pending order", func(t *testing.T) {
		o := createValidOrder(t, order.TypeDelivery)

		err := o.Advance()

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("terminal advance always fails with the same error and never mutates", func(t *testing.T) {
		o := createValidOrder(t, order.TypeDelivery)
		require.NoError(t, o.Accept())
		for o.Status() != order.Completed {
			require.NoError(t, o.Advance())
		}

		first := o.Advance()
		second := o.Advance()

		require.ErrorIs(t, first, errs.ErrInvalidTransition)
		require.ErrorIs(t, second, errs.ErrInvalidTransition)
		assert.Equal(t, first.Error(), second.Error())
		assert.Equal(t, order.Completed, o.Status())
	})
}

func TestOrder_SetEstimatedReadyTime(t *testing.T) {
	t.Run("should set estimate on open order", func(t *testing.T) {
		o := createValidOrder(t, order.TypePickup)
		ready := time.Now().Add(30 * time.Minute)

		require.NoError(t, o.SetEstimatedReadyTime(ready))
		require.NotNil(t, o.EstimatedReadyTime())
		assert.Equal(t, ready, *o.EstimatedReadyTime())
	})

	t.Run("should reject estimate on terminal order", func(t *testing.T) {
		o := createValidOrder(t, order.TypePickup)
		require.NoError(t, o.Reject())

		err := o.SetEstimatedReadyTime(time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_RequiresDelivery(t *testing.T) {
	assert.True(t, createValidOrder(t, order.TypeDelivery).RequiresDelivery())
	assert.False(t, createValidOrder(t, order.TypePickup).RequiresDelivery())
}

func TestItem(t *testing.T) {
	t.Run("should compute line total", func(t *testing.T) {
		item, err := order.NewItem("Pad Thai", 3, kernel.MustNewMoney(1100), nil, "mild")

		require.NoError(t, err)
		assert.Equal(t, int64(3300), item.LineTotal().Cents())
		assert.Equal(t, "mild", item.Notes())
	})

	t.Run("should reject empty name", func(t *testing.T) {
		_, err := order.NewItem("", 1, kernel.MustNewMoney(100), nil, "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject out-of-range quantity", func(t *testing.T) {
		_, err := order.NewItem("Soup", 0, kernel.MustNewMoney(100), nil, "")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = order.NewItem("Soup", 101, kernel.MustNewMoney(100), nil, "")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("options are copied, not shared", func(t *testing.T) {
		options := []string{"no onions"}
		item, err := order.NewItem("Burger", 1, kernel.MustNewMoney(900), options, "")
		require.NoError(t, err)

		options[0] = "mutated"

		assert.Equal(t, []string{"no onions"}, item.Options())
	})
}

func TestPayment(t *testing.T) {
	t.Run("should create valid payment", func(t *testing.T) {
		p, err := order.NewPayment("cash", order.PaymentPending)

		require.NoError(t, err)
		assert.Equal(t, "cash", p.Method())
		assert.Equal(t, order.PaymentPending, p.Status())
	})

	t.Run("should reject empty method", func(t *testing.T) {
		_, err := order.NewPayment("", order.PaymentPaid)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		_, err := order.NewPayment("card", order.PaymentUnknown)

		require.Error(t, err)
	})
}
