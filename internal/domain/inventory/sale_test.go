package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retail/backend/internal/domain/shared"
)

func TestNewSaleRecord(t *testing.T) {
	variantID := uuid.New()

	t.Run("captures total price at sale time", func(t *testing.T) {
		record, err := NewSaleRecord(variantID, 3, SaleClassSound, decimal.NewFromFloat(19.99))
		require.NoError(t, err)
		assert.Equal(t, variantID, record.VariantID)
		assert.Equal(t, 3, record.Quantity)
		assert.False(t, record.Returned)
		assert.True(t, record.TotalPrice.Equal(decimal.NewFromFloat(59.97)))
		assert.False(t, record.OccurredAt.IsZero())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewSaleRecord(uuid.Nil, 1, SaleClassSound, decimal.Zero)
		assert.Error(t, err)
		_, err = NewSaleRecord(variantID, 0, SaleClassSound, decimal.Zero)
		assert.Error(t, err)
		_, err = NewSaleRecord(variantID, -2, SaleClassSound, decimal.Zero)
		assert.Error(t, err)
		_, err = NewSaleRecord(variantID, 1, SaleClass("other"), decimal.Zero)
		assert.Error(t, err)
	})
}

func TestSaleRecordMarkReturned(t *testing.T) {
	record, err := NewSaleRecord(uuid.New(), 2, SaleClassDefective, decimal.NewFromInt(5))
	require.NoError(t, err)

	require.NoError(t, record.MarkReturned())
	assert.True(t, record.IsReturned())

	err = record.MarkReturned()
	assert.ErrorIs(t, err, shared.ErrAlreadyReturned)
}
