package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mdevries/portfolio-tracker-backend/internal/model"
	"github.com/mdevries/portfolio-tracker-backend/internal/pricing"
	"github.com/mdevries/portfolio-tracker-backend/internal/service"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// TestValuationEngine_Revalue tests the derived-field computation.
//
// WHY: Every number the user sees flows through this engine. The known-value
// scenario pins the arithmetic down to exact decimal results so a regression
// in rounding or formula order is caught immediately.
func TestValuationEngine_Revalue(t *testing.T) {
	engine := service.NewValuationEngine()

	t.Run("computes derived fields for a known scenario", func(t *testing.T) {
		asset := model.Asset{
			Symbol:        "BTC",
			Quantity:      dec("2"),
			PurchasePrice: dec("30000"),
		}
		quote := pricing.Quote{
			Price:            dec("67842.30"),
			Change24h:        dec("1547.00"),
			ChangePercent24h: dec("2.34"),
		}

		valuation := engine.Revalue(asset, quote)

		assert.True(t, dec("135684.60").Equal(valuation.TotalValue),
			"totalValue = %s, want 135684.60", valuation.TotalValue)
		assert.True(t, dec("75684.60").Equal(valuation.GainLoss),
			"gainLoss = %s, want 75684.60", valuation.GainLoss)
		// (67842.30 - 30000) / 30000 * 100, rounded to 4 decimal places.
		assert.True(t, dec("126.141").Equal(valuation.GainLossPercent),
			"gainLossPercent = %s, want 126.141", valuation.GainLossPercent)
		assert.True(t, dec("1547.00").Equal(valuation.DailyChange))
		assert.True(t, dec("2.34").Equal(valuation.DailyChangePercent))
	})

	t.Run("zero purchase price yields zero percentage", func(t *testing.T) {
		asset := model.Asset{
			Quantity:      dec("10"),
			PurchasePrice: decimal.Zero,
		}
		quote := pricing.Quote{Price: dec("5.00")}

		valuation := engine.Revalue(asset, quote)

		assert.True(t, valuation.GainLossPercent.IsZero(),
			"gainLossPercent = %s, want 0", valuation.GainLossPercent)
		assert.True(t, dec("50.00").Equal(valuation.TotalValue))
		assert.True(t, dec("50.00").Equal(valuation.GainLoss))
	})

	t.Run("zero quantity yields zero total value", func(t *testing.T) {
		asset := model.Asset{
			Quantity:      decimal.Zero,
			PurchasePrice: dec("100"),
		}
		quote := pricing.Quote{Price: dec("150.00")}

		valuation := engine.Revalue(asset, quote)

		assert.True(t, valuation.TotalValue.IsZero())
		assert.True(t, valuation.GainLoss.IsZero())
		assert.True(t, dec("50").Equal(valuation.GainLossPercent))
	})

	t.Run("identical inputs produce identical outputs", func(t *testing.T) {
		asset := model.Asset{
			Quantity:      dec("3.14159265"),
			PurchasePrice: dec("17.23"),
		}
		quote := pricing.Quote{
			Price:            dec("19.87"),
			Change24h:        dec("-0.42"),
			ChangePercent24h: dec("-2.0690"),
		}

		first := engine.Revalue(asset, quote)
		second := engine.Revalue(asset, quote)

		assert.Equal(t, first, second)
	})

	t.Run("Apply writes all derived fields onto the asset", func(t *testing.T) {
		asset := model.Asset{
			Quantity:      dec("2"),
			PurchasePrice: dec("100.00"),
		}
		quote := pricing.Quote{
			Price:            dec("110.00"),
			Change24h:        dec("1.00"),
			ChangePercent24h: dec("0.9174"),
		}

		engine.Revalue(asset, quote).Apply(&asset)

		assert.True(t, dec("110.00").Equal(asset.CurrentPrice))
		assert.True(t, dec("220.00").Equal(asset.TotalValue))
		assert.True(t, dec("20.00").Equal(asset.GainLoss))
		assert.True(t, dec("10").Equal(asset.GainLossPercent))
		assert.True(t, dec("1.00").Equal(asset.DailyChange))
		assert.True(t, dec("0.9174").Equal(asset.DailyChangePercent))
	})
}
