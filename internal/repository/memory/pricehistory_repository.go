package memory

import (
	"context"
	"sort"
	"time"

	"github.com/mdevries/portfolio-tracker-backend/internal/model"
)

// PriceHistoryRepository is the in-memory implementation of
// repository.PriceHistoryRepository. Records are append-only.
type PriceHistoryRepository struct {
	store *Store
}

// NewPriceHistoryRepository creates a price history repository backed by the store.
func NewPriceHistoryRepository(store *Store) *PriceHistoryRepository {
	return &PriceHistoryRepository{store: store}
}

// Insert appends one OHLCV record.
func (r *PriceHistoryRepository) Insert(_ context.Context, record model.PriceHistory) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.history = append(r.store.history, record)
	return nil
}

// ListBySymbol retrieves records for a symbol in ascending timestamp order.
// Zero start/end times leave that side of the range unbounded.
func (r *PriceHistoryRepository) ListBySymbol(symbol string, start, end time.Time) ([]model.PriceHistory, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records := []model.PriceHistory{}
	for _, record := range r.store.history {
		if record.Symbol != symbol {
			continue
		}
		if !start.IsZero() && record.Timestamp.Before(start) {
			continue
		}
		if !end.IsZero() && record.Timestamp.After(end) {
			continue
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records, nil
}

// LatestBySymbols retrieves the most recent close per symbol, skipping
// symbols with no recorded history.
func (r *PriceHistoryRepository) LatestBySymbols(symbols []string) ([]model.LatestPrice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	latest := make(map[string]model.PriceHistory)
	wanted := make(map[string]bool, len(symbols))
	for _, symbol := range symbols {
		wanted[symbol] = true
	}

	for _, record := range r.store.history {
		if !wanted[record.Symbol] {
			continue
		}
		current, ok := latest[record.Symbol]
		if !ok || record.Timestamp.After(current.Timestamp) {
			latest[record.Symbol] = record
		}
	}

	prices := []model.LatestPrice{}
	for _, symbol := range symbols {
		record, ok := latest[symbol]
		if !ok {
			continue
		}
		prices = append(prices, model.LatestPrice{
			Symbol:    record.Symbol,
			Price:     record.Close,
			Timestamp: record.Timestamp,
		})
	}
	return prices, nil
}
