package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mdevries/portfolio-tracker-backend/internal/model"
	"github.com/mdevries/portfolio-tracker-backend/internal/testutil"
)

func TestPriceHandler_UpdatePrices(t *testing.T) {
	t.Run("reports per-asset outcomes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewStubPriceProvider().
			WithQuote("BTC", "67842.30", "1547.00", "2.34")
		handler := NewPriceHandler(
			testutil.NewTestRefreshService(t, db, provider),
			testutil.NewTestPriceService(t, db),
		)

		portfolio := testutil.NewPortfolio().Build(t, db)
		testutil.NewAsset(portfolio.ID).WithSymbol("BTC", model.AssetTypeCrypto).Build(t, db)
		testutil.NewAsset(portfolio.ID).WithSymbol("DOGE", model.AssetTypeCrypto).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodPost,
			"/api/portfolio/"+portfolio.ID+"/update-prices",
			map[string]string{"uuid": portfolio.ID},
		)
		w := httptest.NewRecorder()

		handler.UpdatePrices(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.PriceRefreshResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.TotalUpdated != 1 || response.TotalErrors != 1 {
			t.Errorf("Expected 1 updated / 1 error, got %d / %d",
				response.TotalUpdated, response.TotalErrors)
		}
	})

	t.Run("returns 404 for unknown portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewPriceHandler(
			testutil.NewTestRefreshService(t, db, testutil.NewStubPriceProvider()),
			testutil.NewTestPriceService(t, db),
		)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodPost,
			"/api/portfolio/"+id+"/update-prices",
			map[string]string{"uuid": id},
		)
		w := httptest.NewRecorder()

		handler.UpdatePrices(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPriceHandler_History(t *testing.T) {
	setupHandler := func(t *testing.T) (*PriceHandler, func()) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		handler := NewPriceHandler(
			testutil.NewTestRefreshService(t, db, testutil.NewStubPriceProvider()),
			testutil.NewTestPriceService(t, db),
		)
		seed := func() {
			testutil.NewPriceHistory("BTC").
				WithTimestamp(testutil.Date(2026, time.January, 1)).
				WithClose("60000.00").
				Build(t, db)
			testutil.NewPriceHistory("BTC").
				WithTimestamp(testutil.Date(2026, time.March, 1)).
				WithClose("67842.30").
				Build(t, db)
		}
		return handler, seed
	}

	historyRequest := func(query map[string]string) *http.Request {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/prices/BTC/history", query)
		return testutil.NewRequestWithURLParams(req.Method, req.URL.String(), map[string]string{"symbol": "btc"})
	}

	t.Run("returns records in range", func(t *testing.T) {
		handler, seed := setupHandler(t)
		seed()

		req := historyRequest(map[string]string{"start_date": "2026-02-01"})
		w := httptest.NewRecorder()

		handler.History(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.PriceHistory
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 1 {
			t.Errorf("Expected 1 record, got %d", len(response))
		}
	})

	t.Run("rejects an inverted date range", func(t *testing.T) {
		handler, seed := setupHandler(t)
		seed()

		req := historyRequest(map[string]string{
			"start_date": "2026-03-01",
			"end_date":   "2026-01-01",
		})
		w := httptest.NewRecorder()

		handler.History(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects an unparseable date", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := historyRequest(map[string]string{"start_date": "yesterday"})
		w := httptest.NewRecorder()

		handler.History(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPriceHandler_LatestPrices(t *testing.T) {
	t.Run("returns partial results for known symbols", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewPriceHandler(
			testutil.NewTestRefreshService(t, db, testutil.NewStubPriceProvider()),
			testutil.NewTestPriceService(t, db),
		)

		testutil.NewPriceHistory("BTC").WithClose("67842.30").Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/prices/latest",
			map[string]string{"symbols": "btc, MISSING"},
		)
		w := httptest.NewRecorder()

		handler.LatestPrices(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.LatestPrice
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 1 {
			t.Errorf("Expected 1 price, got %d", len(response))
		}
		if len(response) == 1 && response[0].Symbol != "BTC" {
			t.Errorf("Expected BTC, got %s", response[0].Symbol)
		}
	})

	t.Run("requires the symbols parameter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewPriceHandler(
			testutil.NewTestRefreshService(t, db, testutil.NewStubPriceProvider()),
			testutil.NewTestPriceService(t, db),
		)

		req := httptest.NewRequest(http.MethodGet, "/api/prices/latest", nil)
		w := httptest.NewRecorder()

		handler.LatestPrices(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
