package service

import (
	"time"

	"github.com/mdevries/portfolio-tracker-backend/internal/apperrors"
	"github.com/mdevries/portfolio-tracker-backend/internal/model"
	"github.com/mdevries/portfolio-tracker-backend/internal/repository"
)

// PriceService serves recorded price history for charting and batch
// latest-price lookups.
type PriceService struct {
	historyRepo repository.PriceHistoryRepository
}

// NewPriceService creates a new PriceService with the provided repository.
func NewPriceService(historyRepo repository.PriceHistoryRepository) *PriceService {
	return &PriceService{historyRepo: historyRepo}
}

// GetHistory retrieves OHLCV records for a symbol, optionally bounded by a
// date range (zero times mean unbounded).
func (s *PriceService) GetHistory(symbol string, start, end time.Time) ([]model.PriceHistory, error) {
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return nil, apperrors.ErrInvalidDateRange
	}
	return s.historyRepo.ListBySymbol(symbol, start, end)
}

// GetLatestPrices retrieves the most recent recorded price per symbol.
// Symbols without history are skipped; the result is partial, not an error.
func (s *PriceService) GetLatestPrices(symbols []string) ([]model.LatestPrice, error) {
	return s.historyRepo.LatestBySymbols(symbols)
}
