package validation

import (
	"strings"

	"github.com/mdevries/portfolio-tracker-backend/internal/api/request"
	"github.com/mdevries/portfolio-tracker-backend/internal/model"
	"github.com/mdevries/portfolio-tracker-backend/internal/money"
)

func ValidateCreateAsset(req request.CreateAssetRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.PortfolioID); err != nil {
		errors["portfolioId"] = "portfolioId must be a valid UUID"
	}

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	} else if len(req.Symbol) > 20 {
		errors["symbol"] = "symbol must be 20 characters or less"
	}

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if !model.AssetType(req.AssetType).IsValid() {
		errors["assetType"] = "assetType must be one of crypto, stock, commodity, forex, etf"
	}

	validateQuantity(req.Quantity, errors)
	validatePurchasePrice(req.PurchasePrice, errors)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateAsset(req request.UpdateAssetRequest) error {
	errors := make(map[string]string)

	// Only validate provided fields
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			errors["name"] = "name cannot be empty"
		} else if len(*req.Name) > 100 {
			errors["name"] = "name must be 100 characters or less"
		}
	}

	if req.Quantity != nil {
		validateQuantity(*req.Quantity, errors)
	}
	if req.PurchasePrice != nil {
		validatePurchasePrice(*req.PurchasePrice, errors)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// validateQuantity requires an exact decimal string greater than zero.
func validateQuantity(raw string, errors map[string]string) {
	quantity, err := money.ParseQuantity(raw)
	if err != nil {
		errors["quantity"] = "quantity must be a decimal number"
		return
	}
	if !quantity.IsPositive() {
		errors["quantity"] = "quantity must be greater than zero"
	}
}

// validatePurchasePrice requires an exact decimal string of zero or more.
func validatePurchasePrice(raw string, errors map[string]string) {
	price, err := money.ParseCurrency(raw)
	if err != nil {
		errors["purchasePrice"] = "purchasePrice must be a decimal number"
		return
	}
	if price.IsNegative() {
		errors["purchasePrice"] = "purchasePrice cannot be negative"
	}
}
