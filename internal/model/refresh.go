package model

// PriceRefreshResponse reports the outcome of a bulk price-refresh pass over
// one portfolio. Individual asset failures do not abort the pass, so the
// response carries both the updated assets and the per-asset errors.
// Success is true if at least one asset was successfully updated.
type PriceRefreshResponse struct {
	Success       bool                `json:"success"`
	PortfolioID   string              `json:"portfolioId"`
	UpdatedAssets []RefreshedAsset    `json:"updatedAssets"`
	Errors        []RefreshAssetError `json:"errors"`
	TotalUpdated  int                 `json:"totalUpdated"`
	TotalErrors   int                 `json:"totalErrors"`
}

// RefreshedAsset identifies an asset whose valuation was updated and the
// price source that produced the quote.
type RefreshedAsset struct {
	AssetID string `json:"assetId"`
	Symbol  string `json:"symbol"`
	Price   string `json:"price"`
	Source  string `json:"source"`
}

// RefreshAssetError identifies an asset whose price lookup failed. The
// asset's prior valuation is retained unchanged.
type RefreshAssetError struct {
	AssetID string `json:"assetId"`
	Symbol  string `json:"symbol"`
	Error   string `json:"error"`
}
