package service

import (
	"github.com/shopspring/decimal"

	"github.com/mdevries/portfolio-tracker-backend/internal/model"
	"github.com/mdevries/portfolio-tracker-backend/internal/money"
	"github.com/mdevries/portfolio-tracker-backend/internal/pricing"
)

// Valuation holds the derived fields produced by revaluing one asset against
// a price quote.
type Valuation struct {
	CurrentPrice       decimal.Decimal
	TotalValue         decimal.Decimal
	GainLoss           decimal.Decimal
	GainLossPercent    decimal.Decimal
	DailyChange        decimal.Decimal
	DailyChangePercent decimal.Decimal
}

// ValuationEngine computes an asset's derived fields from its quantity,
// purchase price and a price quote. It is a pure function over its inputs:
// no side effects, and identical inputs produce identical outputs.
type ValuationEngine struct{}

// NewValuationEngine creates the valuation engine.
func NewValuationEngine() *ValuationEngine {
	return &ValuationEngine{}
}

// Revalue computes the derived fields for an asset at the quoted price.
//
//   - totalValue = quantity * price
//   - gainLoss = quantity * (price - purchasePrice)
//   - gainLossPercent = (price - purchasePrice) / purchasePrice * 100,
//     or zero when purchasePrice is zero
//   - dailyChange / dailyChangePercent pass through from the quote
//
// A zero purchase price yields a zero percentage, never a division by zero.
// A zero quantity is permitted and yields a zero total value. Negative
// prices are rejected at the asset-creation boundary and never reach here.
func (e *ValuationEngine) Revalue(asset model.Asset, quote pricing.Quote) Valuation {
	price := quote.Price

	totalValue := money.Currency(asset.Quantity.Mul(price))
	gainLoss := money.Currency(asset.Quantity.Mul(price.Sub(asset.PurchasePrice)))

	gainLossPercent := decimal.Zero
	if asset.PurchasePrice.IsPositive() {
		gainLossPercent = money.Percent(
			price.Sub(asset.PurchasePrice).
				Div(asset.PurchasePrice).
				Mul(decimal.NewFromInt(100)),
		)
	}

	return Valuation{
		CurrentPrice:       price,
		TotalValue:         totalValue,
		GainLoss:           gainLoss,
		GainLossPercent:    gainLossPercent,
		DailyChange:        money.Currency(quote.Change24h),
		DailyChangePercent: money.Percent(quote.ChangePercent24h),
	}
}

// Apply writes a valuation onto the asset's derived fields.
func (v Valuation) Apply(asset *model.Asset) {
	asset.CurrentPrice = v.CurrentPrice
	asset.TotalValue = v.TotalValue
	asset.GainLoss = v.GainLoss
	asset.GainLossPercent = v.GainLossPercent
	asset.DailyChange = v.DailyChange
	asset.DailyChangePercent = v.DailyChangePercent
}
