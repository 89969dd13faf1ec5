package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GuestOwner marks a portfolio that was auto-provisioned for an
// unauthenticated visitor. Authenticated callers carry the identity
// provider's subject here instead.
const GuestOwner = "guest"

// Portfolio represents a named collection of assets with rolled-up
// valuation totals. The totals equal the fold of the contained assets'
// corresponding fields as of the last aggregation; every asset mutation
// path re-aggregates before the request completes.
type Portfolio struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	OwnerID              string          `json:"ownerId"`
	TotalValue           decimal.Decimal `json:"totalValue"`
	TotalGainLoss        decimal.Decimal `json:"totalGainLoss"`
	TotalGainLossPercent decimal.Decimal `json:"totalGainLossPercent"`
	DailyChange          decimal.Decimal `json:"dailyChange"`
	DailyChangePercent   decimal.Decimal `json:"dailyChangePercent"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

// PortfolioTotals is the complete result of one aggregation pass over a
// portfolio's assets. It is computed in full before anything is persisted;
// partial sums are never written.
type PortfolioTotals struct {
	TotalValue           decimal.Decimal
	TotalGainLoss        decimal.Decimal
	TotalGainLossPercent decimal.Decimal
	DailyChange          decimal.Decimal
	DailyChangePercent   decimal.Decimal
}
