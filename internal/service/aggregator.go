package service

import (
	"github.com/shopspring/decimal"

	"github.com/mdevries/portfolio-tracker-backend/internal/model"
	"github.com/mdevries/portfolio-tracker-backend/internal/money"
)

// Aggregate folds all of a portfolio's assets into portfolio-level totals.
// It is pure: the complete fold is computed before the caller persists
// anything, so partial sums can never be written.
//
//   - totalValue = sum(asset.totalValue)
//   - totalGainLoss = sum(asset.gainLoss)
//   - totalGainLossPercent = totalGainLoss / totalCost * 100 where
//     totalCost = sum(quantity * purchasePrice), zero when totalCost is zero
//   - dailyChange = sum(asset.dailyChange)
//   - dailyChangePercent = dailyChange / (totalValue - dailyChange) * 100,
//     zero when the derived prior-day value is not positive
//
// The dailyChangePercent denominator (today's value minus today's absolute
// change) approximates the prior-day value rather than reading a snapshot.
func Aggregate(assets []model.Asset) model.PortfolioTotals {
	totalValue := decimal.Zero
	totalGainLoss := decimal.Zero
	totalCost := decimal.Zero
	dailyChange := decimal.Zero

	for _, a := range assets {
		totalValue = totalValue.Add(a.TotalValue)
		totalGainLoss = totalGainLoss.Add(a.GainLoss)
		totalCost = totalCost.Add(a.Cost())
		dailyChange = dailyChange.Add(a.DailyChange)
	}

	totalGainLossPercent := decimal.Zero
	if totalCost.IsPositive() {
		totalGainLossPercent = money.Percent(
			totalGainLoss.Div(totalCost).Mul(decimal.NewFromInt(100)),
		)
	}

	dailyChangePercent := decimal.Zero
	if prior := totalValue.Sub(dailyChange); prior.IsPositive() {
		dailyChangePercent = money.Percent(
			dailyChange.Div(prior).Mul(decimal.NewFromInt(100)),
		)
	}

	return model.PortfolioTotals{
		TotalValue:           money.Currency(totalValue),
		TotalGainLoss:        money.Currency(totalGainLoss),
		TotalGainLossPercent: totalGainLossPercent,
		DailyChange:          money.Currency(dailyChange),
		DailyChangePercent:   dailyChangePercent,
	}
}
