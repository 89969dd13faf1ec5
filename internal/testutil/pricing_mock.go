package testutil

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mdevries/portfolio-tracker-backend/internal/apperrors"
	"github.com/mdevries/portfolio-tracker-backend/internal/model"
	"github.com/mdevries/portfolio-tracker-backend/internal/pricing"
)

// StubPriceProvider is a pricing.Provider backed by a fixed symbol->quote
// table. Symbols missing from the table report ErrPriceUnavailable, exactly
// like the production chain when every source comes up empty.
type StubPriceProvider struct {
	// Quotes maps symbol to the quote to return.
	Quotes map[string]pricing.Quote
	// FetchCount tracks how many lookups were made.
	FetchCount int
}

// NewStubPriceProvider creates a provider with no known symbols. Use
// WithQuote to register quotes.
func NewStubPriceProvider() *StubPriceProvider {
	return &StubPriceProvider{Quotes: map[string]pricing.Quote{}}
}

// WithQuote registers a quote for a symbol from decimal strings.
func (p *StubPriceProvider) WithQuote(symbol, price, change24h, changePercent24h string) *StubPriceProvider {
	p.Quotes[symbol] = pricing.Quote{
		Price:            decimal.RequireFromString(price),
		Change24h:        decimal.RequireFromString(change24h),
		ChangePercent24h: decimal.RequireFromString(changePercent24h),
		Source:           "stub",
	}
	return p
}

// FetchPrice returns the registered quote for the symbol, or
// ErrPriceUnavailable when none is registered.
func (p *StubPriceProvider) FetchPrice(_ context.Context, symbol string, _ model.AssetType) (pricing.Quote, error) {
	p.FetchCount++
	quote, ok := p.Quotes[symbol]
	if !ok {
		return pricing.Quote{}, apperrors.ErrPriceUnavailable
	}
	return quote, nil
}
