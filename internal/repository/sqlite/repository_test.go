package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdevries/portfolio-tracker-backend/internal/apperrors"
	"github.com/mdevries/portfolio-tracker-backend/internal/model"
	"github.com/mdevries/portfolio-tracker-backend/internal/repository/sqlite"
	"github.com/mdevries/portfolio-tracker-backend/internal/testutil"
)

// TestPortfolioRepository tests portfolio persistence round-trips.
//
// WHY: Decimal fields cross this boundary as strings; a bad format or scan
// would silently corrupt every total in the application.
func TestPortfolioRepository(t *testing.T) {
	t.Run("insert and get round-trips decimal totals", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := sqlite.NewPortfolioRepository(db)

		now := time.Now().UTC()
		portfolio := &model.Portfolio{
			ID:                   testutil.MakeID(),
			Name:                 "Round Trip",
			OwnerID:              model.GuestOwner,
			TotalValue:           decimal.RequireFromString("135684.60"),
			TotalGainLoss:        decimal.RequireFromString("75684.60"),
			TotalGainLossPercent: decimal.RequireFromString("126.1410"),
			DailyChange:          decimal.RequireFromString("3094.00"),
			DailyChangePercent:   decimal.RequireFromString("2.3335"),
			CreatedAt:            now,
			UpdatedAt:            now,
		}

		// Execute
		if err := repo.Insert(context.Background(), portfolio); err != nil {
			t.Fatalf("Insert() returned unexpected error: %v", err)
		}

		// Assert
		stored, err := repo.Get(portfolio.ID)
		if err != nil {
			t.Fatalf("Get() returned unexpected error: %v", err)
		}

		if !stored.TotalValue.Equal(portfolio.TotalValue) {
			t.Errorf("Expected totalValue %s, got %s", portfolio.TotalValue, stored.TotalValue)
		}
		if !stored.TotalGainLossPercent.Equal(portfolio.TotalGainLossPercent) {
			t.Errorf("Expected totalGainLossPercent %s, got %s",
				portfolio.TotalGainLossPercent, stored.TotalGainLossPercent)
		}
	})

	t.Run("get returns sentinel for unknown id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := sqlite.NewPortfolioRepository(db)

		_, err := repo.Get(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
		}
	})

	t.Run("first by owner returns the oldest portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := sqlite.NewPortfolioRepository(db)

		older := testutil.NewPortfolio().WithName("Older").Model()
		older.CreatedAt = time.Now().UTC().Add(-time.Hour)
		if err := repo.Insert(context.Background(), &older); err != nil {
			t.Fatalf("Insert() returned unexpected error: %v", err)
		}
		newer := testutil.NewPortfolio().WithName("Newer").Model()
		if err := repo.Insert(context.Background(), &newer); err != nil {
			t.Fatalf("Insert() returned unexpected error: %v", err)
		}

		first, err := repo.FirstByOwner(model.GuestOwner)
		if err != nil {
			t.Fatalf("FirstByOwner() returned unexpected error: %v", err)
		}
		if first.ID != older.ID {
			t.Errorf("Expected oldest portfolio %s, got %s", older.ID, first.ID)
		}
	})

	t.Run("update totals persists a complete aggregation result", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := sqlite.NewPortfolioRepository(db)

		portfolio := testutil.NewPortfolio().Build(t, db)

		totals := model.PortfolioTotals{
			TotalValue:           decimal.RequireFromString("300.00"),
			TotalGainLoss:        decimal.RequireFromString("-10.00"),
			TotalGainLossPercent: decimal.RequireFromString("-3.2258"),
			DailyChange:          decimal.RequireFromString("-3.00"),
			DailyChangePercent:   decimal.RequireFromString("-0.9901"),
		}

		if err := repo.UpdateTotals(context.Background(), portfolio.ID, totals); err != nil {
			t.Fatalf("UpdateTotals() returned unexpected error: %v", err)
		}

		stored, err := repo.Get(portfolio.ID)
		if err != nil {
			t.Fatalf("Get() returned unexpected error: %v", err)
		}
		if !stored.TotalGainLoss.Equal(totals.TotalGainLoss) {
			t.Errorf("Expected totalGainLoss %s, got %s", totals.TotalGainLoss, stored.TotalGainLoss)
		}
		if !stored.DailyChangePercent.Equal(totals.DailyChangePercent) {
			t.Errorf("Expected dailyChangePercent %s, got %s",
				totals.DailyChangePercent, stored.DailyChangePercent)
		}
	})

	t.Run("update totals for unknown portfolio returns sentinel", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := sqlite.NewPortfolioRepository(db)

		err := repo.UpdateTotals(context.Background(), testutil.MakeID(), model.PortfolioTotals{})
		if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
		}
	})
}

// TestAssetRepository tests asset persistence, metadata included.
func TestAssetRepository(t *testing.T) {
	t.Run("insert and get round-trips all fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := sqlite.NewAssetRepository(db)

		portfolio := testutil.NewPortfolio().Build(t, db)

		now := time.Now().UTC()
		asset := &model.Asset{
			ID:            testutil.MakeID(),
			PortfolioID:   portfolio.ID,
			Symbol:        "BTC",
			Name:          "Bitcoin",
			AssetType:     model.AssetTypeCrypto,
			Quantity:      decimal.RequireFromString("0.12345678"),
			PurchasePrice: decimal.RequireFromString("30000.00"),
			CurrentPrice:  decimal.RequireFromString("67842.30"),
			Metadata:      map[string]string{"exchange": "kraken"},
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := repo.Insert(context.Background(), asset); err != nil {
			t.Fatalf("Insert() returned unexpected error: %v", err)
		}

		stored, err := repo.Get(asset.ID)
		if err != nil {
			t.Fatalf("Get() returned unexpected error: %v", err)
		}

		if !stored.Quantity.Equal(asset.Quantity) {
			t.Errorf("Expected quantity %s, got %s", asset.Quantity, stored.Quantity)
		}
		if stored.AssetType != model.AssetTypeCrypto {
			t.Errorf("Expected assetType crypto, got %s", stored.AssetType)
		}
		if stored.Metadata["exchange"] != "kraken" {
			t.Errorf("Expected metadata round-trip, got %v", stored.Metadata)
		}
	})

	t.Run("list by portfolio excludes other portfolios", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := sqlite.NewAssetRepository(db)

		mine := testutil.NewPortfolio().Build(t, db)
		other := testutil.NewPortfolio().Build(t, db)
		testutil.NewAsset(mine.ID).WithSymbol("BTC", model.AssetTypeCrypto).Build(t, db)
		testutil.NewAsset(mine.ID).WithSymbol("ETH", model.AssetTypeCrypto).Build(t, db)
		testutil.NewAsset(other.ID).WithSymbol("SOL", model.AssetTypeCrypto).Build(t, db)

		assets, err := repo.ListByPortfolio(mine.ID)
		if err != nil {
			t.Fatalf("ListByPortfolio() returned unexpected error: %v", err)
		}
		if len(assets) != 2 {
			t.Errorf("Expected 2 assets, got %d", len(assets))
		}
	})

	t.Run("update and delete report missing assets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := sqlite.NewAssetRepository(db)

		missing := &model.Asset{ID: testutil.MakeID()}
		if err := repo.Update(context.Background(), missing); !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound from Update, got %v", err)
		}
		if err := repo.Delete(context.Background(), missing.ID); !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound from Delete, got %v", err)
		}
	})
}

// TestPriceHistoryRepository tests the append-only OHLCV store.
func TestPriceHistoryRepository(t *testing.T) {
	t.Run("list by symbol respects the date range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := sqlite.NewPriceHistoryRepository(db)

		testutil.NewPriceHistory("BTC").
			WithTimestamp(testutil.Date(2026, time.January, 1)).
			WithClose("60000.00").
			Build(t, db)
		testutil.NewPriceHistory("BTC").
			WithTimestamp(testutil.Date(2026, time.February, 1)).
			WithClose("65000.00").
			Build(t, db)
		testutil.NewPriceHistory("BTC").
			WithTimestamp(testutil.Date(2026, time.March, 1)).
			WithClose("67842.30").
			Build(t, db)

		records, err := repo.ListBySymbol("BTC",
			testutil.Date(2026, time.January, 15),
			testutil.Date(2026, time.February, 15),
		)
		if err != nil {
			t.Fatalf("ListBySymbol() returned unexpected error: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("Expected 1 record in range, got %d", len(records))
		}
		if !records[0].Close.Equal(decimal.RequireFromString("65000.00")) {
			t.Errorf("Expected close 65000.00, got %s", records[0].Close)
		}
	})

	t.Run("zero times leave the range unbounded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := sqlite.NewPriceHistoryRepository(db)

		testutil.NewPriceHistory("ETH").
			WithTimestamp(testutil.Date(2026, time.January, 1)).
			Build(t, db)
		testutil.NewPriceHistory("ETH").
			WithTimestamp(testutil.Date(2026, time.June, 1)).
			Build(t, db)

		records, err := repo.ListBySymbol("ETH", time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("ListBySymbol() returned unexpected error: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("Expected 2 records, got %d", len(records))
		}
	})

	t.Run("latest by symbols skips symbols without history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := sqlite.NewPriceHistoryRepository(db)

		testutil.NewPriceHistory("BTC").
			WithTimestamp(testutil.Date(2026, time.January, 1)).
			WithClose("60000.00").
			Build(t, db)
		testutil.NewPriceHistory("BTC").
			WithTimestamp(testutil.Date(2026, time.March, 1)).
			WithClose("67842.30").
			Build(t, db)

		prices, err := repo.LatestBySymbols([]string{"BTC", "MISSING"})
		if err != nil {
			t.Fatalf("LatestBySymbols() returned unexpected error: %v", err)
		}
		if len(prices) != 1 {
			t.Fatalf("Expected 1 price, got %d", len(prices))
		}
		if prices[0].Symbol != "BTC" {
			t.Errorf("Expected BTC, got %s", prices[0].Symbol)
		}
		if !prices[0].Price.Equal(decimal.RequireFromString("67842.30")) {
			t.Errorf("Expected latest close 67842.30, got %s", prices[0].Price)
		}
	})

	t.Run("empty symbol list yields empty result", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := sqlite.NewPriceHistoryRepository(db)

		prices, err := repo.LatestBySymbols(nil)
		if err != nil {
			t.Fatalf("LatestBySymbols() returned unexpected error: %v", err)
		}
		if len(prices) != 0 {
			t.Errorf("Expected empty result, got %d", len(prices))
		}
	})
}
