package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetType enumerates the supported asset classes.
type AssetType string

const (
	AssetTypeCrypto    AssetType = "crypto"
	AssetTypeStock     AssetType = "stock"
	AssetTypeCommodity AssetType = "commodity"
	AssetTypeForex     AssetType = "forex"
	AssetTypeETF       AssetType = "etf"
)

// AssetTypes lists all valid asset types.
var AssetTypes = []AssetType{
	AssetTypeCrypto,
	AssetTypeStock,
	AssetTypeCommodity,
	AssetTypeForex,
	AssetTypeETF,
}

// IsValid reports whether t is a supported asset type.
func (t AssetType) IsValid() bool {
	for _, known := range AssetTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Asset represents a single holding inside a portfolio. The derived fields
// (TotalValue through DailyChangePercent) are recomputed by the valuation
// engine whenever the quantity, purchase price or current price change.
//
// Invariants after a successful revaluation:
//   - TotalValue = Quantity * CurrentPrice
//   - GainLoss = Quantity * (CurrentPrice - PurchasePrice)
//   - GainLossPercent = (CurrentPrice - PurchasePrice) / PurchasePrice * 100,
//     or zero when PurchasePrice is zero
type Asset struct {
	ID                 string            `json:"id"`
	PortfolioID        string            `json:"portfolioId"`
	Symbol             string            `json:"symbol"`
	Name               string            `json:"name"`
	AssetType          AssetType         `json:"assetType"`
	Quantity           decimal.Decimal   `json:"quantity"`
	PurchasePrice      decimal.Decimal   `json:"purchasePrice"`
	CurrentPrice       decimal.Decimal   `json:"currentPrice"`
	TotalValue         decimal.Decimal   `json:"totalValue"`
	GainLoss           decimal.Decimal   `json:"gainLoss"`
	GainLossPercent    decimal.Decimal   `json:"gainLossPercent"`
	DailyChange        decimal.Decimal   `json:"dailyChange"`
	DailyChangePercent decimal.Decimal   `json:"dailyChangePercent"`
	Metadata           map[string]string `json:"metadata,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// Cost returns the asset's cost basis, Quantity * PurchasePrice.
func (a Asset) Cost() decimal.Decimal {
	return a.Quantity.Mul(a.PurchasePrice)
}
