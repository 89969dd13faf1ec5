// Package pricing resolves current prices for portfolio assets. Crypto
// symbols are looked up against CoinGecko first, then Binance, then a static
// fallback table; all other asset types go straight to the fallback table
// until a market-data vendor is plugged in.
package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mdevries/portfolio-tracker-backend/internal/model"
)

// Quote is a point-in-time price for a symbol: the current price plus the
// absolute and percentage movement over the last 24 hours.
type Quote struct {
	Price            decimal.Decimal
	Change24h        decimal.Decimal
	ChangePercent24h decimal.Decimal
	Source           string
}

// Provider resolves a quote for a symbol of a given asset type.
//
// Implementations never panic and absorb transient network errors; the only
// error callers need to branch on is apperrors.ErrPriceUnavailable, which
// means no source produced a price and the caller should proceed with a
// no-op price update.
type Provider interface {
	FetchPrice(ctx context.Context, symbol string, assetType model.AssetType) (Quote, error)
}

// Source is one networked price origin in the crypto lookup chain.
type Source interface {
	Name() string
	Quote(ctx context.Context, symbol string) (Quote, error)
}

// changeFromPercent derives the absolute 24h change from the current price
// and the 24h percentage. prior = price / (1 + pct/100), change = price - prior.
// Sources that only report a percentage use this to fill in the absolute move.
func changeFromPercent(price, pct decimal.Decimal) decimal.Decimal {
	denom := decimal.NewFromInt(1).Add(pct.Div(decimal.NewFromInt(100)))
	if denom.IsZero() {
		return decimal.Zero
	}
	prior := price.DivRound(denom, 8)
	return price.Sub(prior)
}
