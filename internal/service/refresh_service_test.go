package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/mdevries/portfolio-tracker-backend/internal/model"
	"github.com/mdevries/portfolio-tracker-backend/internal/testutil"
)

// TestRefreshService_RefreshPortfolioPrices tests the bulk refresh pass.
//
// WHY: The pass must visit every asset, tolerate per-asset lookup failures
// without aborting, and aggregate the portfolio exactly once at the end. The
// three-asset scenario with a failing middle lookup pins all of that down.
func TestRefreshService_RefreshPortfolioPrices(t *testing.T) {
	t.Run("failing lookup leaves that asset unchanged", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		provider := testutil.NewStubPriceProvider().
			WithQuote("BTC", "67842.30", "1547.00", "2.34").
			WithQuote("SOL", "150.00", "3.00", "2.04")
		svc := testutil.NewTestRefreshService(t, db, provider)
		assetSvc := testutil.NewTestAssetService(t, db, provider)
		portfolioSvc := testutil.NewTestPortfolioService(t, db)

		portfolio := testutil.NewPortfolio().Build(t, db)
		first := testutil.NewAsset(portfolio.ID).
			WithSymbol("BTC", model.AssetTypeCrypto).
			WithQuantity("2").
			WithPurchasePrice("30000.00").
			WithCurrentPrice("30000.00").
			Build(t, db)
		second := testutil.NewAsset(portfolio.ID).
			WithSymbol("DOGE", model.AssetTypeCrypto). // not in the stub table
			WithQuantity("1000").
			WithPurchasePrice("0.10").
			WithCurrentPrice("0.12").
			Build(t, db)
		third := testutil.NewAsset(portfolio.ID).
			WithSymbol("SOL", model.AssetTypeCrypto).
			WithQuantity("10").
			WithPurchasePrice("100.00").
			WithCurrentPrice("100.00").
			Build(t, db)

		// Execute
		response, err := svc.RefreshPortfolioPrices(context.Background(), portfolio.ID)

		// Assert
		if err != nil {
			t.Fatalf("RefreshPortfolioPrices() returned unexpected error: %v", err)
		}

		if response.TotalUpdated != 2 {
			t.Errorf("Expected 2 updated assets, got %d", response.TotalUpdated)
		}
		if response.TotalErrors != 1 {
			t.Errorf("Expected 1 error, got %d", response.TotalErrors)
		}
		if !response.Success {
			t.Error("Expected success with partial failures")
		}
		if len(response.Errors) == 1 && response.Errors[0].Symbol != "DOGE" {
			t.Errorf("Expected DOGE to fail, got %q", response.Errors[0].Symbol)
		}

		updatedFirst, err := assetSvc.GetAsset(first.ID)
		if err != nil {
			t.Fatalf("GetAsset() returned unexpected error: %v", err)
		}
		if !updatedFirst.CurrentPrice.Equal(dec("67842.30")) {
			t.Errorf("Expected BTC price 67842.30, got %s", updatedFirst.CurrentPrice)
		}
		if !updatedFirst.TotalValue.Equal(dec("135684.60")) {
			t.Errorf("Expected BTC totalValue 135684.60, got %s", updatedFirst.TotalValue)
		}

		unchanged, err := assetSvc.GetAsset(second.ID)
		if err != nil {
			t.Fatalf("GetAsset() returned unexpected error: %v", err)
		}
		if !unchanged.CurrentPrice.Equal(dec("0.12")) {
			t.Errorf("Expected DOGE price unchanged at 0.12, got %s", unchanged.CurrentPrice)
		}
		if !unchanged.TotalValue.Equal(second.TotalValue) {
			t.Errorf("Expected DOGE totalValue unchanged at %s, got %s",
				second.TotalValue, unchanged.TotalValue)
		}

		updatedThird, err := assetSvc.GetAsset(third.ID)
		if err != nil {
			t.Fatalf("GetAsset() returned unexpected error: %v", err)
		}
		if !updatedThird.CurrentPrice.Equal(dec("150.00")) {
			t.Errorf("Expected SOL price 150.00, got %s", updatedThird.CurrentPrice)
		}

		// The final aggregation reflects the two successful updates plus the
		// untouched asset.
		stored, err := portfolioSvc.GetPortfolio(portfolio.ID)
		if err != nil {
			t.Fatalf("GetPortfolio() returned unexpected error: %v", err)
		}
		wantValue := updatedFirst.TotalValue.
			Add(unchanged.TotalValue).
			Add(updatedThird.TotalValue)
		if !stored.TotalValue.Equal(wantValue) {
			t.Errorf("Expected portfolio totalValue %s, got %s", wantValue, stored.TotalValue)
		}
	})

	t.Run("records price history per successful lookup", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewStubPriceProvider().
			WithQuote("BTC", "67842.30", "1547.00", "2.34")
		svc := testutil.NewTestRefreshService(t, db, provider)
		priceSvc := testutil.NewTestPriceService(t, db)

		portfolio := testutil.NewPortfolio().Build(t, db)
		testutil.NewAsset(portfolio.ID).
			WithSymbol("BTC", model.AssetTypeCrypto).
			Build(t, db)

		if _, err := svc.RefreshPortfolioPrices(context.Background(), portfolio.ID); err != nil {
			t.Fatalf("RefreshPortfolioPrices() returned unexpected error: %v", err)
		}

		history, err := priceSvc.GetHistory("BTC", time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("GetHistory() returned unexpected error: %v", err)
		}
		if len(history) != 1 {
			t.Fatalf("Expected 1 history record, got %d", len(history))
		}

		record := history[0]
		if !record.Close.Equal(dec("67842.30")) {
			t.Errorf("Expected close 67842.30, got %s", record.Close)
		}
		// open = price - change24h
		if !record.Open.Equal(dec("66295.30")) {
			t.Errorf("Expected open 66295.30, got %s", record.Open)
		}
	})

	t.Run("empty portfolio refreshes to an empty response", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRefreshService(t, db, testutil.NewStubPriceProvider())

		portfolio := testutil.NewPortfolio().Build(t, db)

		response, err := svc.RefreshPortfolioPrices(context.Background(), portfolio.ID)
		if err != nil {
			t.Fatalf("RefreshPortfolioPrices() returned unexpected error: %v", err)
		}

		if response.TotalUpdated != 0 || response.TotalErrors != 0 {
			t.Errorf("Expected empty result, got %d updated / %d errors",
				response.TotalUpdated, response.TotalErrors)
		}
		if response.Success {
			t.Error("Expected Success=false with nothing updated")
		}
	})
}

// TestRefreshService_RefreshAllPortfolios tests the scheduler sweep.
//
// WHY: The background sweep drives the same per-portfolio pass; it must
// visit every portfolio even when one of them has no assets.
func TestRefreshService_RefreshAllPortfolios(t *testing.T) {
	t.Run("refreshes every portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewStubPriceProvider().
			WithQuote("BTC", "67842.30", "1547.00", "2.34")
		svc := testutil.NewTestRefreshService(t, db, provider)
		assetSvc := testutil.NewTestAssetService(t, db, provider)

		p1 := testutil.NewPortfolio().WithName("First").Build(t, db)
		p2 := testutil.NewPortfolio().WithName("Second").Build(t, db)
		a1 := testutil.NewAsset(p1.ID).
			WithSymbol("BTC", model.AssetTypeCrypto).
			WithQuantity("1").
			WithCurrentPrice("30000.00").
			Build(t, db)
		a2 := testutil.NewAsset(p2.ID).
			WithSymbol("BTC", model.AssetTypeCrypto).
			WithQuantity("2").
			WithCurrentPrice("30000.00").
			Build(t, db)

		if err := svc.RefreshAllPortfolios(context.Background()); err != nil {
			t.Fatalf("RefreshAllPortfolios() returned unexpected error: %v", err)
		}

		for _, id := range []string{a1.ID, a2.ID} {
			asset, err := assetSvc.GetAsset(id)
			if err != nil {
				t.Fatalf("GetAsset() returned unexpected error: %v", err)
			}
			if !asset.CurrentPrice.Equal(dec("67842.30")) {
				t.Errorf("Expected refreshed price 67842.30, got %s", asset.CurrentPrice)
			}
		}
	})
}
