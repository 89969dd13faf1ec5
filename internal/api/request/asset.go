package request

// CreateAssetRequest is the payload for creating an asset. Quantity and
// purchase price arrive as exact decimal strings; they are validated and
// parsed at this boundary, never coerced through floats.
type CreateAssetRequest struct {
	PortfolioID   string            `json:"portfolioId"`
	Symbol        string            `json:"symbol"`
	Name          string            `json:"name"`
	AssetType     string            `json:"assetType"`
	Quantity      string            `json:"quantity"`
	PurchasePrice string            `json:"purchasePrice"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// UpdateAssetRequest is the payload for updating an asset. Only provided
// fields are updated; symbol and asset type are immutable after creation.
type UpdateAssetRequest struct {
	Name          *string           `json:"name"`
	Quantity      *string           `json:"quantity"`
	PurchasePrice *string           `json:"purchasePrice"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}
