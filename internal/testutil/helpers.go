package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mdevries/portfolio-tracker-backend/internal/pricing"
	"github.com/mdevries/portfolio-tracker-backend/internal/repository/sqlite"
	"github.com/mdevries/portfolio-tracker-backend/internal/service"
)

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	portfolioRepo := sqlite.NewPortfolioRepository(db)
	assetRepo := sqlite.NewAssetRepository(db)

	return service.NewPortfolioService(portfolioRepo, assetRepo)
}

func NewTestAssetService(t *testing.T, db *sql.DB, provider pricing.Provider) *service.AssetService {
	t.Helper()

	assetRepo := sqlite.NewAssetRepository(db)
	portfolioService := NewTestPortfolioService(t, db)

	return service.NewAssetService(
		assetRepo,
		portfolioService,
		provider,
		service.NewValuationEngine(),
	)
}

// NewTestRefreshService wires a RefreshService without lookup throttling so
// tests run at full speed.
func NewTestRefreshService(t *testing.T, db *sql.DB, provider pricing.Provider) *service.RefreshService {
	t.Helper()

	assetRepo := sqlite.NewAssetRepository(db)
	historyRepo := sqlite.NewPriceHistoryRepository(db)
	portfolioService := NewTestPortfolioService(t, db)

	return service.NewRefreshService(
		assetRepo,
		historyRepo,
		portfolioService,
		provider,
		service.NewValuationEngine(),
		0,
	)
}

func NewTestAnalyticsService(t *testing.T, db *sql.DB) *service.AnalyticsService {
	t.Helper()

	portfolioRepo := sqlite.NewPortfolioRepository(db)
	assetRepo := sqlite.NewAssetRepository(db)

	return service.NewAnalyticsService(portfolioRepo, assetRepo)
}

func NewTestPriceService(t *testing.T, db *sql.DB) *service.PriceService {
	t.Helper()

	return service.NewPriceService(sqlite.NewPriceHistoryRepository(db))
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// Date builds a UTC timestamp at midnight for the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
