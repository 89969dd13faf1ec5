package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mdevries/portfolio-tracker-backend/internal/model"
	"github.com/mdevries/portfolio-tracker-backend/internal/service"
)

// TestAggregate tests the portfolio-level fold over asset fields.
//
// WHY: The aggregates must equal the fold of the per-asset fields exactly;
// any divergence means a missed or incorrect re-aggregation. The two-asset
// scenario pins the percentage denominators (total cost, implied prior-day
// value) to known values.
func TestAggregate(t *testing.T) {
	t.Run("folds a two-asset portfolio", func(t *testing.T) {
		assets := []model.Asset{
			{
				Quantity:      dec("1"),
				PurchasePrice: dec("90"),
				TotalValue:    dec("100"),
				GainLoss:      dec("10"),
				DailyChange:   dec("2"),
			},
			{
				Quantity:      dec("2"),
				PurchasePrice: dec("110"),
				TotalValue:    dec("200"),
				GainLoss:      dec("-20"),
				DailyChange:   dec("-5"),
			},
		}

		totals := service.Aggregate(assets)

		assert.True(t, dec("300.00").Equal(totals.TotalValue),
			"totalValue = %s, want 300.00", totals.TotalValue)
		assert.True(t, dec("-10.00").Equal(totals.TotalGainLoss),
			"totalGainLoss = %s, want -10.00", totals.TotalGainLoss)
		// totalCost = 1*90 + 2*110 = 310; -10/310*100 = -3.2258 at 4dp.
		assert.True(t, dec("-3.2258").Equal(totals.TotalGainLossPercent),
			"totalGainLossPercent = %s, want -3.2258", totals.TotalGainLossPercent)
		assert.True(t, dec("-3.00").Equal(totals.DailyChange))
		// prior value = 300 - (-3) = 303; -3/303*100 = -0.9901 at 4dp.
		assert.True(t, dec("-0.9901").Equal(totals.DailyChangePercent),
			"dailyChangePercent = %s, want -0.9901", totals.DailyChangePercent)
	})

	t.Run("empty portfolio aggregates to zero", func(t *testing.T) {
		totals := service.Aggregate(nil)

		assert.True(t, totals.TotalValue.IsZero())
		assert.True(t, totals.TotalGainLoss.IsZero())
		assert.True(t, totals.TotalGainLossPercent.IsZero())
		assert.True(t, totals.DailyChange.IsZero())
		assert.True(t, totals.DailyChangePercent.IsZero())
	})

	t.Run("zero total cost yields zero gain loss percentage", func(t *testing.T) {
		assets := []model.Asset{
			{
				Quantity:      dec("5"),
				PurchasePrice: decimal.Zero,
				TotalValue:    dec("50"),
				GainLoss:      dec("50"),
			},
		}

		totals := service.Aggregate(assets)

		assert.True(t, totals.TotalGainLossPercent.IsZero())
		assert.True(t, dec("50.00").Equal(totals.TotalValue))
	})

	t.Run("aggregation is idempotent over unchanged assets", func(t *testing.T) {
		assets := []model.Asset{
			{
				Quantity:      dec("0.5"),
				PurchasePrice: dec("40000"),
				TotalValue:    dec("33921.15"),
				GainLoss:      dec("13921.15"),
				DailyChange:   dec("773.50"),
			},
		}

		first := service.Aggregate(assets)
		second := service.Aggregate(assets)

		assert.Equal(t, first, second)
	})
}
