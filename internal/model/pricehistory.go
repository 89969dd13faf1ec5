package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceHistory is a point-in-time OHLCV record for a symbol. Rows are
// append-only; they feed charting and are never read back for valuation.
// Deleting an asset keeps its history so charts survive re-adding the symbol.
type PriceHistory struct {
	ID        string          `json:"id"`
	Symbol    string          `json:"symbol"`
	Timestamp time.Time       `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
}

// LatestPrice is one entry of a batch latest-price lookup. Symbols without
// any recorded history are skipped, not errored.
type LatestPrice struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}
