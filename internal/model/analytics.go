package model

import "github.com/shopspring/decimal"

// PortfolioAnalytics is the read model for the analytics endpoint: the
// current aggregates plus the best and worst daily performer and the
// allocation breakdown by asset type.
type PortfolioAnalytics struct {
	PortfolioID          string            `json:"portfolioId"`
	TotalValue           decimal.Decimal   `json:"totalValue"`
	TotalGainLoss        decimal.Decimal   `json:"totalGainLoss"`
	TotalGainLossPercent decimal.Decimal   `json:"totalGainLossPercent"`
	DailyChange          decimal.Decimal   `json:"dailyChange"`
	DailyChangePercent   decimal.Decimal   `json:"dailyChangePercent"`
	AssetCount           int               `json:"assetCount"`
	BestPerformer        *AssetPerformance `json:"bestPerformer,omitempty"`
	WorstPerformer       *AssetPerformance `json:"worstPerformer,omitempty"`
	Allocation           []TypeAllocation  `json:"allocation"`
}

// AssetPerformance identifies an asset by its daily movement.
type AssetPerformance struct {
	AssetID            string          `json:"assetId"`
	Symbol             string          `json:"symbol"`
	Name               string          `json:"name"`
	DailyChange        decimal.Decimal `json:"dailyChange"`
	DailyChangePercent decimal.Decimal `json:"dailyChangePercent"`
}

// TypeAllocation describes how much of the portfolio's value sits in one
// asset type.
type TypeAllocation struct {
	AssetType  AssetType       `json:"assetType"`
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"`
	Count      int             `json:"count"`
}
