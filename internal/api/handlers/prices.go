package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mdevries/portfolio-tracker-backend/internal/service"
)

// PriceHandler handles price refresh and price history HTTP requests
type PriceHandler struct {
	refreshService *service.RefreshService
	priceService   *service.PriceService
}

// NewPriceHandler creates a new PriceHandler
func NewPriceHandler(refreshService *service.RefreshService, priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		refreshService: refreshService,
		priceService:   priceService,
	}
}

// UpdatePrices refreshes every asset in a portfolio from the price providers.
// Per-asset lookup failures are reported in the response, not as an HTTP error.
func (h *PriceHandler) UpdatePrices(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	response, err := h.refreshService.RefreshPortfolioPrices(r.Context(), portfolioID)
	if err != nil {
		respondServiceError(w, err, "Failed to update portfolio prices")
		return
	}

	respondJSON(w, http.StatusOK, response)
}

// History returns recorded OHLCV records for a symbol, optionally bounded by
// start_date and end_date query parameters.
func (h *PriceHandler) History(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))

	startDate, ok := parseDateParam(w, r, "start_date")
	if !ok {
		return
	}
	endDate, ok := parseDateParam(w, r, "end_date")
	if !ok {
		return
	}

	history, err := h.priceService.GetHistory(symbol, startDate, endDate)
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve price history")
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// LatestPrices returns the most recent recorded price for each requested
// symbol. Symbols without history are omitted from the response.
func (h *PriceHandler) LatestPrices(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("symbols")
	if strings.TrimSpace(raw) == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "symbols query parameter is required",
		})
		return
	}

	symbols := make([]string, 0)
	for _, symbol := range strings.Split(raw, ",") {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol != "" {
			symbols = append(symbols, symbol)
		}
	}

	prices, err := h.priceService.GetLatestPrices(symbols)
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve latest prices")
		return
	}

	respondJSON(w, http.StatusOK, prices)
}

// parseDateParam parses an optional date query parameter, accepting either
// a plain date or RFC3339. A missing parameter yields the zero time. On a
// parse failure it writes a 400 response and reports false.
func parseDateParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, true
	}

	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{
				"error":  "Failed to parse " + name,
				"detail": err.Error(),
			})
			return time.Time{}, false
		}
	}

	return parsed, true
}
