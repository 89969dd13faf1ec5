package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdevries/portfolio-tracker-backend/internal/model"
	"github.com/mdevries/portfolio-tracker-backend/internal/money"
)

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	// Simple creation with defaults
//	portfolio := testutil.NewPortfolio().Build(t, db)
//
//	// Customized portfolio
//	portfolio := testutil.NewPortfolio().
//	    WithName("Custom Portfolio").
//	    WithTotals("1000.00", "100.00").
//	    Build(t, db)
type PortfolioBuilder struct {
	ID            string
	Name          string
	Description   string
	OwnerID       string
	TotalValue    decimal.Decimal
	TotalGainLoss decimal.Decimal
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:          MakeID(),
		Name:        "Test Portfolio",
		Description: "Test description",
		OwnerID:     model.GuestOwner,
	}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// WithDescription sets a custom description.
func (b *PortfolioBuilder) WithDescription(desc string) *PortfolioBuilder {
	b.Description = desc
	return b
}

// WithOwner sets a custom owner.
func (b *PortfolioBuilder) WithOwner(ownerID string) *PortfolioBuilder {
	b.OwnerID = ownerID
	return b
}

// WithTotals sets pre-aggregated total value and gain/loss.
func (b *PortfolioBuilder) WithTotals(totalValue, totalGainLoss string) *PortfolioBuilder {
	b.TotalValue = decimal.RequireFromString(totalValue)
	b.TotalGainLoss = decimal.RequireFromString(totalGainLoss)
	return b
}

// Model returns the portfolio as a model value without touching storage.
// Useful for the in-memory repository and pure aggregation tests.
func (b *PortfolioBuilder) Model() model.Portfolio {
	now := time.Now().UTC()
	return model.Portfolio{
		ID:            b.ID,
		Name:          b.Name,
		Description:   b.Description,
		OwnerID:       b.OwnerID,
		TotalValue:    b.TotalValue,
		TotalGainLoss: b.TotalGainLoss,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Build creates the portfolio in the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	portfolio := b.Model()

	query := `
		INSERT INTO portfolio (id, name, description, owner_id, total_value, total_gain_loss, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		portfolio.ID,
		portfolio.Name,
		portfolio.Description,
		portfolio.OwnerID,
		money.FormatCurrency(portfolio.TotalValue),
		money.FormatCurrency(portfolio.TotalGainLoss),
		portfolio.CreatedAt,
		portfolio.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}

	return portfolio
}

// AssetBuilder provides a fluent interface for creating test assets.
//
// Example usage:
//
//	asset := testutil.NewAsset(portfolio.ID).
//	    WithSymbol("BTC", model.AssetTypeCrypto).
//	    WithQuantity("2").
//	    WithPurchasePrice("30000.00").
//	    WithCurrentPrice("67842.30").
//	    Build(t, db)
type AssetBuilder struct {
	ID            string
	PortfolioID   string
	Symbol        string
	Name          string
	AssetType     model.AssetType
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
	CurrentPrice  decimal.Decimal
	DailyChange   decimal.Decimal
	Metadata      map[string]string
}

// NewAsset creates an AssetBuilder with sensible defaults for the given
// portfolio.
func NewAsset(portfolioID string) *AssetBuilder {
	return &AssetBuilder{
		ID:            MakeID(),
		PortfolioID:   portfolioID,
		Symbol:        "BTC",
		Name:          "Bitcoin",
		AssetType:     model.AssetTypeCrypto,
		Quantity:      decimal.NewFromInt(1),
		PurchasePrice: decimal.RequireFromString("100.00"),
		CurrentPrice:  decimal.RequireFromString("100.00"),
	}
}

// WithID sets a custom ID.
func (b *AssetBuilder) WithID(id string) *AssetBuilder {
	b.ID = id
	return b
}

// WithSymbol sets the symbol and asset type.
func (b *AssetBuilder) WithSymbol(symbol string, assetType model.AssetType) *AssetBuilder {
	b.Symbol = symbol
	b.Name = symbol
	b.AssetType = assetType
	return b
}

// WithName sets a custom display name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.Name = name
	return b
}

// WithQuantity sets the held quantity from a decimal string.
func (b *AssetBuilder) WithQuantity(quantity string) *AssetBuilder {
	b.Quantity = decimal.RequireFromString(quantity)
	return b
}

// WithPurchasePrice sets the per-unit purchase price from a decimal string.
func (b *AssetBuilder) WithPurchasePrice(price string) *AssetBuilder {
	b.PurchasePrice = decimal.RequireFromString(price)
	return b
}

// WithCurrentPrice sets the current per-unit price from a decimal string.
func (b *AssetBuilder) WithCurrentPrice(price string) *AssetBuilder {
	b.CurrentPrice = decimal.RequireFromString(price)
	return b
}

// WithDailyChange sets the 24h price change from a decimal string.
func (b *AssetBuilder) WithDailyChange(change string) *AssetBuilder {
	b.DailyChange = decimal.RequireFromString(change)
	return b
}

// WithMetadata sets the free-form metadata map.
func (b *AssetBuilder) WithMetadata(metadata map[string]string) *AssetBuilder {
	b.Metadata = metadata
	return b
}

// Model returns the asset as a model value with derived valuation fields
// computed from the builder's prices, without touching storage.
func (b *AssetBuilder) Model() model.Asset {
	now := time.Now().UTC()

	asset := model.Asset{
		ID:            b.ID,
		PortfolioID:   b.PortfolioID,
		Symbol:        b.Symbol,
		Name:          b.Name,
		AssetType:     b.AssetType,
		Quantity:      b.Quantity,
		PurchasePrice: b.PurchasePrice,
		CurrentPrice:  b.CurrentPrice,
		Metadata:      b.Metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	asset.TotalValue = money.Currency(b.Quantity.Mul(b.CurrentPrice))
	asset.GainLoss = money.Currency(b.Quantity.Mul(b.CurrentPrice.Sub(b.PurchasePrice)))
	if b.PurchasePrice.IsPositive() {
		asset.GainLossPercent = money.Percent(
			b.CurrentPrice.Sub(b.PurchasePrice).
				Div(b.PurchasePrice).
				Mul(decimal.NewFromInt(100)),
		)
	}
	// dailyChange passes through from the quote unscaled; the percentage is
	// derived against the implied prior-day price.
	asset.DailyChange = money.Currency(b.DailyChange)
	if prior := b.CurrentPrice.Sub(b.DailyChange); prior.IsPositive() {
		asset.DailyChangePercent = money.Percent(
			b.DailyChange.Div(prior).Mul(decimal.NewFromInt(100)),
		)
	}

	return asset
}

// Build creates the asset in the database and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	asset := b.Model()

	query := `
		INSERT INTO asset (
			id, portfolio_id, symbol, name, asset_type,
			quantity, purchase_price, current_price,
			total_value, gain_loss, gain_loss_percent,
			daily_change, daily_change_percent,
			metadata, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, '', ?, ?)
	`

	_, err := db.Exec(query,
		asset.ID,
		asset.PortfolioID,
		asset.Symbol,
		asset.Name,
		string(asset.AssetType),
		money.FormatQuantity(asset.Quantity),
		money.FormatCurrency(asset.PurchasePrice),
		money.FormatCurrency(asset.CurrentPrice),
		money.FormatCurrency(asset.TotalValue),
		money.FormatCurrency(asset.GainLoss),
		money.FormatPercent(asset.GainLossPercent),
		money.FormatCurrency(asset.DailyChange),
		money.FormatPercent(asset.DailyChangePercent),
		asset.CreatedAt,
		asset.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}

	return asset
}

// PriceHistoryBuilder provides a fluent interface for creating test OHLCV
// records.
type PriceHistoryBuilder struct {
	ID        string
	Symbol    string
	Timestamp time.Time
	Close     decimal.Decimal
}

// NewPriceHistory creates a PriceHistoryBuilder for the given symbol.
func NewPriceHistory(symbol string) *PriceHistoryBuilder {
	return &PriceHistoryBuilder{
		ID:        MakeID(),
		Symbol:    symbol,
		Timestamp: time.Now().UTC(),
		Close:     decimal.RequireFromString("100.00"),
	}
}

// WithTimestamp sets a custom record timestamp.
func (b *PriceHistoryBuilder) WithTimestamp(ts time.Time) *PriceHistoryBuilder {
	b.Timestamp = ts
	return b
}

// WithClose sets the closing price from a decimal string.
func (b *PriceHistoryBuilder) WithClose(price string) *PriceHistoryBuilder {
	b.Close = decimal.RequireFromString(price)
	return b
}

// Model returns the record as a model value without touching storage. Open,
// high and low are derived from the closing price.
func (b *PriceHistoryBuilder) Model() model.PriceHistory {
	return model.PriceHistory{
		ID:        b.ID,
		Symbol:    b.Symbol,
		Timestamp: b.Timestamp,
		Open:      b.Close,
		High:      b.Close,
		Low:       b.Close,
		Close:     b.Close,
		Volume:    decimal.Zero,
	}
}

// Build creates the record in the database and returns it.
func (b *PriceHistoryBuilder) Build(t *testing.T, db *sql.DB) model.PriceHistory {
	t.Helper()

	record := b.Model()

	query := `
		INSERT INTO price_history (id, symbol, timestamp, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		record.ID,
		record.Symbol,
		record.Timestamp,
		money.FormatCurrency(record.Open),
		money.FormatCurrency(record.High),
		money.FormatCurrency(record.Low),
		money.FormatCurrency(record.Close),
		money.FormatQuantity(record.Volume),
	)
	if err != nil {
		t.Fatalf("Failed to create test price history: %v", err)
	}

	return record
}
