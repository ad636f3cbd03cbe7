package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money from non-negative cents", func(t *testing.T) {
		m, err := kernel.NewMoney(1250)

		require.NoError(t, err)
		assert.Equal(t, int64(1250), m.Cents())
	})

	t.Run("zero is a valid amount", func(t *testing.T) {
		m, err := kernel.NewMoney(0)

		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("should reject negative cents", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "negative")
	})
}

func TestMustNewMoney(t *testing.T) {
	t.Run("should create valid amount", func(t *testing.T) {
		m := kernel.MustNewMoney(100)

		assert.Equal(t, int64(100), m.Cents())
	})

	t.Run("should panic on negative cents", func(t *testing.T) {
		assert.Panics(t, func() {
			kernel.MustNewMoney(-100)
		})
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("should sum amounts", func(t *testing.T) {
		subtotal := kernel.MustNewMoney(1250)
		tax := kernel.MustNewMoney(100)
		tip := kernel.MustNewMoney(200)

		total := subtotal.Add(tax).Add(tip)

		assert.Equal(t, int64(1550), total.Cents())
	})

	t.Run("adding zero changes nothing", func(t *testing.T) {
		m := kernel.MustNewMoney(500)

		assert.True(t, m.IsEqual(m.Add(kernel.MustNewMoney(0))))
	})
}

func TestMoney_String(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{50, "0.50"},
		{1350, "13.50"},
		{100000, "1000.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, kernel.MustNewMoney(tt.cents).String())
	}
}
