package request

// CreatePortfolioRequest is the payload for creating a portfolio.
type CreatePortfolioRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdatePortfolioRequest is the payload for updating a portfolio.
// Only provided fields are updated.
type UpdatePortfolioRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
