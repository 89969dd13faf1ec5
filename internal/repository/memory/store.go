// Package memory implements the repository contracts on in-process maps.
// It mirrors the sqlite backend's semantics, including the asset cascade on
// portfolio delete and last-write-wins under concurrent writers, and exists
// so the whole stack can run without a database file (demos, tests).
package memory

import (
	"sort"
	"sync"

	"github.com/mdevries/portfolio-tracker-backend/internal/model"
)

// Store holds all in-memory state shared by the repository implementations.
// A single mutex guards every table; the workload is request-scoped CRUD and
// does not need anything finer.
type Store struct {
	mu         sync.RWMutex
	portfolios map[string]model.Portfolio
	assets     map[string]model.Asset
	history    []model.PriceHistory
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		portfolios: make(map[string]model.Portfolio),
		assets:     make(map[string]model.Asset),
	}
}

// assetsOfPortfolio returns the portfolio's assets sorted by creation time.
// Callers must hold at least a read lock.
func (s *Store) assetsOfPortfolio(portfolioID string) []model.Asset {
	assets := []model.Asset{}
	for _, a := range s.assets {
		if a.PortfolioID == portfolioID {
			assets = append(assets, a)
		}
	}
	sort.Slice(assets, func(i, j int) bool {
		if assets[i].CreatedAt.Equal(assets[j].CreatedAt) {
			return assets[i].ID < assets[j].ID
		}
		return assets[i].CreatedAt.Before(assets[j].CreatedAt)
	})
	return assets
}

// copyMetadata deep-copies the metadata bag so callers cannot mutate stored
// state through the returned asset.
func copyMetadata(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyAsset(a model.Asset) model.Asset {
	a.Metadata = copyMetadata(a.Metadata)
	return a
}
