package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	logger "github.com/sirupsen/logrus"
)

const (
	defaultRetryAttempts = 3
	defaultRetryWait     = 500 * time.Millisecond
	defaultRetryMaxWait  = 3 * time.Second
)

// coinIDs maps common tickers to CoinGecko coin ids. Anything not listed
// falls back to the lowercased ticker, which works for most smaller coins.
var coinIDs = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"SOL":  "solana",
	"BNB":  "binancecoin",
	"XRP":  "ripple",
	"ADA":  "cardano",
	"DOGE": "dogecoin",
}

// CoinGeckoClient reads public price data from the CoinGecko REST API.
// No key is required for the endpoints used here.
type CoinGeckoClient struct {
	http *resty.Client
}

func NewCoinGeckoClient(baseURL string, timeout time.Duration) *CoinGeckoClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://api.coingecko.com/api/v3"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(defaultRetryAttempts - 1).
		SetRetryWaitTime(defaultRetryWait).
		SetRetryMaxWaitTime(defaultRetryMaxWait)

	return &CoinGeckoClient{http: httpClient}
}

// SimplePrice fetches the current USD price and 24h change for a ticker.
func (c *CoinGeckoClient) SimplePrice(ctx context.Context, symbol string) (*Snapshot, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	id, ok := coinIDs[symbol]
	if !ok {
		id = strings.ToLower(symbol)
	}

	var decoded map[string]map[string]float64

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":                 id,
			"vs_currencies":       "usd",
			"include_24hr_change": "true",
		}).
		SetResult(&decoded).
		Get("/simple/price")
	if err != nil {
		return nil, fmt.Errorf("coingecko simple price: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("coingecko simple price: unexpected status %d", resp.StatusCode())
	}

	coin, ok := decoded[id]
	if !ok {
		return nil, fmt.Errorf("coingecko simple price: no data for %q", id)
	}

	logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"price":  coin["usd"],
	}).Debug("Fetched spot price from CoinGecko")

	return &Snapshot{
		Symbol:    symbol,
		Price:     coin["usd"],
		Change24h: coin["usd_24h_change"],
	}, nil
}

type trendingResponse struct {
	Coins []struct {
		Item struct {
			Name          string `json:"name"`
			Symbol        string `json:"symbol"`
			MarketCapRank int    `json:"market_cap_rank"`
		} `json:"item"`
	} `json:"coins"`
}

// Trending fetches the currently trending coins list.
func (c *CoinGeckoClient) Trending(ctx context.Context) ([]TrendingCoin, error) {
	var decoded trendingResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&decoded).
		Get("/search/trending")
	if err != nil {
		return nil, fmt.Errorf("coingecko trending: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("coingecko trending: unexpected status %d", resp.StatusCode())
	}

	coins := make([]TrendingCoin, 0, len(decoded.Coins))
	for _, c := range decoded.Coins {
		coins = append(coins, TrendingCoin{
			Name:   c.Item.Name,
			Symbol: strings.ToUpper(c.Item.Symbol),
			Rank:   c.Item.MarketCapRank,
		})
	}
	return coins, nil
}
