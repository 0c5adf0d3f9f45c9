package pricing

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMargin(t *testing.T) {
	t.Run("reference case", func(t *testing.T) {
		got, err := CalculateMargin(MarginRequest{
			CostPrice:         1000,
			Carat:             1,
			TargetMargin:      20,
			CommissionPercent: lo.ToPtr(3.0),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1200), got.SellPrice)
		assert.Equal(t, int64(200), got.Profit)
		assert.Equal(t, int64(36), got.Commission)
		assert.Equal(t, int64(164), got.NetProfit)
		assert.Equal(t, "16.4", got.NetMarginPercent)
		assert.Equal(t, int64(1200), got.PricePerCarat)
		assert.Equal(t, int64(1000), got.CostPerCarat)
	})

	t.Run("commission percent defaults to three", func(t *testing.T) {
		got, err := CalculateMargin(MarginRequest{CostPrice: 1000, Carat: 1, TargetMargin: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(36), got.Commission)
	})

	t.Run("per carat figures divide by weight", func(t *testing.T) {
		got, err := CalculateMargin(MarginRequest{CostPrice: 9000, Carat: 1.5, TargetMargin: 10, CommissionPercent: lo.ToPtr(0.0)})
		require.NoError(t, err)
		assert.Equal(t, int64(9900), got.SellPrice)
		assert.Equal(t, int64(6600), got.PricePerCarat)
		assert.Equal(t, int64(6000), got.CostPerCarat)
		assert.Equal(t, "10.0", got.NetMarginPercent)
	})

	t.Run("currency is rounded to whole units", func(t *testing.T) {
		got, err := CalculateMargin(MarginRequest{CostPrice: 333, Carat: 0.7, TargetMargin: 15, CommissionPercent: lo.ToPtr(2.5)})
		require.NoError(t, err)
		// sell 382.95, commission 9.57375, net 40.37625
		assert.Equal(t, int64(383), got.SellPrice)
		assert.Equal(t, int64(50), got.Profit)
		assert.Equal(t, int64(10), got.Commission)
		assert.Equal(t, int64(40), got.NetProfit)
		assert.Equal(t, "12.1", got.NetMarginPercent)
	})

	t.Run("zero cost is rejected", func(t *testing.T) {
		_, err := CalculateMargin(MarginRequest{CostPrice: 0, Carat: 1, TargetMargin: 20})
		assert.ErrorIs(t, err, ErrInvalidCost)
	})

	t.Run("zero carat is rejected", func(t *testing.T) {
		_, err := CalculateMargin(MarginRequest{CostPrice: 1000, Carat: 0, TargetMargin: 20})
		assert.ErrorIs(t, err, ErrInvalidCarat)
	})
}
