package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// fallbackEntry is one row of the static price table.
type fallbackEntry struct {
	price            string
	change24h        string
	changePercent24h string
}

// fallbackPrices is the static symbol table consulted when no networked
// source produced a price. Values are constants with no staleness indicator;
// they only cover well-known symbols.
var fallbackPrices = map[string]fallbackEntry{
	// crypto
	"BTC":  {"67842.30", "1547.00", "2.34"},
	"ETH":  {"3456.78", "-45.20", "-1.29"},
	"SOL":  {"152.40", "3.85", "2.59"},
	"ADA":  {"0.46", "0.01", "2.22"},
	"XRP":  {"0.52", "-0.01", "-1.89"},
	"DOGE": {"0.12", "0.00", "0.00"},

	// stocks
	"AAPL":  {"227.52", "1.12", "0.49"},
	"MSFT":  {"415.13", "-2.08", "-0.50"},
	"GOOGL": {"163.24", "0.86", "0.53"},
	"AMZN":  {"178.22", "1.41", "0.80"},
	"TSLA":  {"248.50", "-4.97", "-1.96"},
	"NVDA":  {"117.87", "2.31", "2.00"},

	// ETFs
	"SPY": {"543.01", "1.63", "0.30"},
	"QQQ": {"462.97", "2.78", "0.60"},
	"VTI": {"267.44", "0.80", "0.30"},

	// commodities (USD per ounce / barrel)
	"XAU": {"2496.80", "12.48", "0.50"},
	"XAG": {"28.92", "-0.14", "-0.48"},
	"WTI": {"75.91", "0.53", "0.70"},

	// forex (quote currency per base)
	"EURUSD": {"1.1086", "0.0022", "0.20"},
	"GBPUSD": {"1.3142", "-0.0013", "-0.10"},
	"USDJPY": {"144.37", "0.43", "0.30"},
}

// FallbackTable resolves quotes from the static price table. It is the last
// link of every lookup chain and the only source for non-crypto asset types.
type FallbackTable struct{}

// NewFallbackTable creates the static fallback source.
func NewFallbackTable() *FallbackTable {
	return &FallbackTable{}
}

// Name identifies this source in quotes and refresh reports.
func (f *FallbackTable) Name() string {
	return "fallback"
}

// Lookup returns the static quote for a symbol, or false if the symbol is
// not in the table.
func (f *FallbackTable) Lookup(symbol string) (Quote, bool) {
	entry, ok := fallbackPrices[strings.ToUpper(symbol)]
	if !ok {
		return Quote{}, false
	}

	// Table values are literals; RequireFromString documents that they parse.
	return Quote{
		Price:            decimal.RequireFromString(entry.price),
		Change24h:        decimal.RequireFromString(entry.change24h),
		ChangePercent24h: decimal.RequireFromString(entry.changePercent24h),
		Source:           f.Name(),
	}, true
}
