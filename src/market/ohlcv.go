package market

import (
	"net/http"
	"time"

	"github.com/nntaoli-project/goex"
	"github.com/nntaoli-project/goex/binance"
	logger "github.com/sirupsen/logrus"
)

// KlineProvider snapshots recent hourly candles from the Binance public
// API. It is a one-shot read per request, there is no streaming or
// polling behind it.
type KlineProvider struct {
	exchange goex.API
	quote    string
	limit    int
}

func NewBinanceKlineProvider(quote string, limit int) *KlineProvider {
	apiConfig := &goex.APIConfig{
		HttpClient: http.DefaultClient,
		Endpoint:   binance.GLOBAL_API_BASE_URL,
	}
	if limit <= 0 {
		limit = 96
	}
	if quote == "" {
		quote = "USDT"
	}
	return &KlineProvider{
		exchange: binance.NewWithConfig(apiConfig),
		quote:    quote,
		limit:    limit,
	}
}

// RecentCandles returns up to limit hourly candles for symbol, oldest
// first.
func (p *KlineProvider) RecentCandles(symbol string) ([]Candle, error) {
	targetSymbol := goex.NewCurrencyPair(
		goex.Currency{Symbol: symbol},
		goex.Currency{Symbol: p.quote},
	)

	klines, err := p.exchange.GetKlineRecords(targetSymbol, goex.KLINE_PERIOD_1H, p.limit)
	if err != nil {
		return nil, err
	}

	candles := make([]Candle, 0, len(klines))
	for i := range klines {
		k := klines[i]
		candles = append(candles, Candle{
			Time:   time.Unix(k.Timestamp, 0).UTC(),
			Open:   k.Open,
			High:   k.High,
			Low:    k.Low,
			Close:  k.Close,
			Volume: k.Vol,
		})
	}

	// Binance returns oldest first already; guard against a reversed feed.
	if len(candles) > 1 && candles[0].Time.After(candles[len(candles)-1].Time) {
		for i, j := 0, len(candles)-1; i < j; i, j = i+1, j-1 {
			candles[i], candles[j] = candles[j], candles[i]
		}
	}

	logger.WithFields(map[string]interface{}{
		"symbol":  symbol,
		"candles": len(candles),
	}).Debug("Fetched kline snapshot")

	return candles, nil
}
