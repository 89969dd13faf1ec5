// Package repository defines the persistence contracts consumed by the
// services. Two interchangeable backends implement them: repository/sqlite
// (durable) and repository/memory. The backend is chosen once at process
// start and constructor-injected; there is no global switch.
//
// All implementations return the apperrors not-found sentinels for missing
// entities rather than driver-specific errors, and batch lookups return
// partial results, skipping missing symbols.
package repository

import (
	"context"
	"time"

	"github.com/mdevries/portfolio-tracker-backend/internal/model"
)

// PortfolioRepository persists portfolios and their aggregated totals.
type PortfolioRepository interface {
	Insert(ctx context.Context, portfolio *model.Portfolio) error
	Get(id string) (model.Portfolio, error)
	List() ([]model.Portfolio, error)
	// FirstByOwner returns the oldest portfolio owned by ownerID, used for
	// auto-provisioning. Missing owner yields apperrors.ErrPortfolioNotFound.
	FirstByOwner(ownerID string) (model.Portfolio, error)
	// UpdateMeta updates name and description only.
	UpdateMeta(ctx context.Context, id, name, description string) error
	// UpdateTotals persists one complete aggregation result. Callers must
	// never pass partial sums.
	UpdateTotals(ctx context.Context, id string, totals model.PortfolioTotals) error
	// Delete removes the portfolio and cascades to its assets.
	Delete(ctx context.Context, id string) error
}

// AssetRepository persists assets and their derived valuation fields.
type AssetRepository interface {
	Insert(ctx context.Context, asset *model.Asset) error
	Get(id string) (model.Asset, error)
	ListByPortfolio(portfolioID string) ([]model.Asset, error)
	// Update persists the full asset row, valuation fields included.
	Update(ctx context.Context, asset *model.Asset) error
	Delete(ctx context.Context, id string) error
}

// PriceHistoryRepository appends and reads OHLCV records. Rows are never
// mutated; charting is the only consumer.
type PriceHistoryRepository interface {
	Insert(ctx context.Context, record model.PriceHistory) error
	// ListBySymbol returns records in ascending timestamp order, optionally
	// bounded by the given range (zero times mean unbounded).
	ListBySymbol(symbol string, start, end time.Time) ([]model.PriceHistory, error)
	// LatestBySymbols returns the most recent close per symbol. Symbols with
	// no history are skipped; the result may cover a subset of the input.
	LatestBySymbols(symbols []string) ([]model.LatestPrice, error)
}
