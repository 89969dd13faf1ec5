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

const coingeckoBaseURL = "https://api.coingecko.com/api/v3"

// coingeckoSymbolIDs maps ticker symbols to CoinGecko coin identifiers.
// CoinGecko keys its simple-price endpoint by coin ID, not ticker.
var coingeckoSymbolIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"ADA":   "cardano",
	"XRP":   "ripple",
	"DOT":   "polkadot",
	"DOGE":  "dogecoin",
	"AVAX":  "avalanche-2",
	"LINK":  "chainlink",
	"MATIC": "matic-network",
	"LTC":   "litecoin",
	"BNB":   "binancecoin",
}

// CoinGeckoClient queries the CoinGecko simple-price endpoint. It is the
// primary source for crypto quotes.
type CoinGeckoClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCoinGeckoClient creates a CoinGecko client with the given per-request
// timeout.
func NewCoinGeckoClient(timeout time.Duration) *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL: coingeckoBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name identifies this source in quotes and refresh reports.
func (c *CoinGeckoClient) Name() string {
	return "coingecko"
}

type coingeckoSimplePrice struct {
	USD          float64 `json:"usd"`
	USD24hChange float64 `json:"usd_24h_change"`
}

// Quote fetches the current USD price and 24h change for a crypto symbol.
// CoinGecko reports only the percentage change; the absolute change is
// derived from it.
func (c *CoinGeckoClient) Quote(ctx context.Context, symbol string) (Quote, error) {
	coinID, ok := coingeckoSymbolIDs[strings.ToUpper(symbol)]
	if !ok {
		return Quote{}, fmt.Errorf("coingecko: no coin id for symbol %s", symbol)
	}

	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd&include_24hr_change=true", c.baseURL, coinID)

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
		return Quote{}, fmt.Errorf("coingecko: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Quote{}, err
	}

	var response map[string]coingeckoSimplePrice
	if err := json.Unmarshal(data, &response); err != nil {
		return Quote{}, fmt.Errorf("coingecko: failed to parse response: %w", err)
	}

	priceData, exists := response[coinID]
	if !exists {
		return Quote{}, fmt.Errorf("coingecko: no data for symbol %s", symbol)
	}

	price := decimal.NewFromFloat(priceData.USD)
	pct := decimal.NewFromFloat(priceData.USD24hChange)

	return Quote{
		Price:            price,
		Change24h:        changeFromPercent(price, pct),
		ChangePercent24h: pct,
		Source:           c.Name(),
	}, nil
}
