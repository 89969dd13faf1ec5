package pricing

import (
	"context"
	"log"
	"time"

	"github.com/mdevries/portfolio-tracker-backend/internal/apperrors"
	"github.com/mdevries/portfolio-tracker-backend/internal/model"
)

// Service is the production Provider: it dispatches by asset type and walks
// the source chain in order, falling through to the static table.
//
// Crypto symbols try CoinGecko, then Binance, then the table. All other
// asset types go straight to the table; plugging in a market-data vendor for
// stocks/commodities/forex/ETFs is a known gap, not a bug.
type Service struct {
	cryptoSources []Source
	fallback      *FallbackTable
}

// NewService creates the default provider chain with the given per-request
// timeout for networked sources.
func NewService(providerTimeout time.Duration) *Service {
	return &Service{
		cryptoSources: []Source{
			NewCoinGeckoClient(providerTimeout),
			NewBinanceClient(providerTimeout),
		},
		fallback: NewFallbackTable(),
	}
}

// NewServiceWithSources creates a provider with explicit crypto sources.
// Used by tests to substitute httptest-backed sources.
func NewServiceWithSources(sources []Source, fallback *FallbackTable) *Service {
	return &Service{cryptoSources: sources, fallback: fallback}
}

// FetchPrice resolves a quote for the symbol. Transient source failures are
// absorbed here: the only returned error is apperrors.ErrPriceUnavailable,
// meaning the whole chain came up empty.
func (s *Service) FetchPrice(ctx context.Context, symbol string, assetType model.AssetType) (Quote, error) {
	if assetType == model.AssetTypeCrypto {
		for _, source := range s.cryptoSources {
			quote, err := source.Quote(ctx, symbol)
			if err == nil {
				return quote, nil
			}
			log.Printf("price source %s failed for %s: %v", source.Name(), symbol, err)
		}
	}

	if quote, ok := s.fallback.Lookup(symbol); ok {
		return quote, nil
	}

	return Quote{}, apperrors.ErrPriceUnavailable
}
