package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const binanceBaseURL = "https://api.binance.com"

// BinanceClient queries the public Binance 24hr ticker endpoint. It is the
// secondary source for crypto quotes, consulted when CoinGecko fails.
// No API key is required for ticker data.
type BinanceClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBinanceClient creates a Binance client with the given per-request
// timeout.
func NewBinanceClient(timeout time.Duration) *BinanceClient {
	return &BinanceClient{
		baseURL: binanceBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name identifies this source in quotes and refresh reports.
func (c *BinanceClient) Name() string {
	return "binance"
}

type binanceTicker struct {
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	PriceChange        string `json:"priceChange"`
	PriceChangePercent string `json:"priceChangePercent"`
}

// Quote fetches the 24hr ticker for a crypto symbol against USDT. Binance
// reports prices as decimal strings, which parse losslessly.
func (c *BinanceClient) Quote(ctx context.Context, symbol string) (Quote, error) {
	pair := strings.ToUpper(symbol) + "USDT"
	url := fmt.Sprintf("%s/api/v3/ticker/24hr?symbol=%s", c.baseURL, pair)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Quote{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("binance: unexpected status %d for %s", resp.StatusCode, pair)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Quote{}, err
	}

	var ticker binanceTicker
	if err := json.Unmarshal(data, &ticker); err != nil {
		return Quote{}, fmt.Errorf("binance: failed to parse response: %w", err)
	}

	price, err := decimal.NewFromString(ticker.LastPrice)
	if err != nil {
		return Quote{}, fmt.Errorf("binance: failed to parse lastPrice %q: %w", ticker.LastPrice, err)
	}
	change, err := decimal.NewFromString(ticker.PriceChange)
	if err != nil {
		return Quote{}, fmt.Errorf("binance: failed to parse priceChange %q: %w", ticker.PriceChange, err)
	}
	pct, err := decimal.NewFromString(ticker.PriceChangePercent)
	if err != nil {
		return Quote{}, fmt.Errorf("binance: failed to parse priceChangePercent %q: %w", ticker.PriceChangePercent, err)
	}

	return Quote{
		Price:            price,
		Change24h:        change,
		ChangePercent24h: pct,
		Source:           c.Name(),
	}, nil
}
