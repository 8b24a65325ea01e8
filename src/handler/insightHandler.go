package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/cache"
	"tradejournal/src/insight"
	"tradejournal/src/market"
	"tradejournal/src/model"
	"tradejournal/src/repository"
)

const predictionTTL = 5 * time.Minute

type priceProvider interface {
	SimplePrice(ctx context.Context, symbol string) (*market.Snapshot, error)
	Trending(ctx context.Context) ([]market.TrendingCoin, error)
}

type candleProvider interface {
	RecentCandles(symbol string) ([]market.Candle, error)
}

type predictionStore interface {
	Create(ctx context.Context, prediction *model.MarketPrediction) error
	FindLatest(ctx context.Context, limit int) ([]model.MarketPrediction, error)
}

// MarketPredictionHandler serves the AI-dashboard sentiment readout.
// Live CoinGecko data is preferred; when the upstream fails the handler
// falls back to mock data and flags the response, the page still renders.
// Each generated prediction is appended to the history table.
func MarketPredictionHandler(
	prices priceProvider,
	store predictionStore,
	gen *insight.Generator,
	caches *cache.TTLCache,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := querySymbol(r, "BTC")

		key := "prediction:" + symbol
		if cached, ok := caches.Get(key); ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}

		snapshot, err := prices.SimplePrice(r.Context(), symbol)
		if err != nil {
			logger.WithError(err).WithField("symbol", symbol).
				Warn("Price lookup failed, serving mock snapshot")
			snapshot = market.MockSnapshot(symbol)
		}

		topCoins, err := prices.Trending(r.Context())
		if err != nil || len(topCoins) == 0 {
			topCoins = market.MockTrending()
		}

		prediction := gen.GeneratePrediction(snapshot, topCoins, time.Now())

		if err := store.Create(r.Context(), prediction.ToModel()); err != nil {
			Capture(r.Context(), DefaultExceptionWriter(), "handler", "MarketPredictionHandler", "warning", err, map[string]interface{}{
				"symbol": symbol,
			})
		}

		caches.SetWithTTL(key, prediction, predictionTTL)

		writeJSON(w, http.StatusOK, prediction)
	}
}

// PredictionHistoryHandler lists the most recent stored predictions,
// newest first. limit defaults to 10 and is capped at 100.
func PredictionHistoryHandler(store predictionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 10
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				writeError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = parsed
		}
		if limit > 100 {
			limit = 100
		}

		history, err := store.FindLatest(r.Context(), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load prediction history")
			return
		}
		if history == nil {
			history = []model.MarketPrediction{}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"history": history,
			"count":   len(history),
		})
	}
}

// BreakoutHandler serves the breakout-strategy demo: a recent hourly
// candle series with a support/resistance band and the signal the last
// close implies. Falls back to a mock series when the exchange API is
// unreachable.
func BreakoutHandler(klines candleProvider, limit int, caches *cache.TTLCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := querySymbol(r, "BTC")

		key := "breakout:" + symbol
		if cached, ok := caches.Get(key); ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}

		now := time.Now()
		mock := false

		candles, err := klines.RecentCandles(symbol)
		if err != nil || len(candles) == 0 {
			if err != nil {
				logger.WithError(err).WithField("symbol", symbol).
					Warn("Kline snapshot failed, serving mock candles")
			}
			candles = market.MockCandles(symbol, limit, now)
			mock = true
		}

		report := insight.AnalyzeBreakout(symbol, candles, mock, now)

		caches.Set(key, report)

		writeJSON(w, http.StatusOK, report)
	}
}

func querySymbol(r *http.Request, fallback string) string {
	symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))
	if symbol == "" {
		return fallback
	}
	return symbol
}

// DefaultMarketPredictionHandler wires the CoinGecko client, production
// repository, and a time-seeded generator.
func DefaultMarketPredictionHandler(caches *cache.TTLCache) http.HandlerFunc {
	config := market.GetConfig()
	return MarketPredictionHandler(
		market.NewCoinGeckoClient(config.CoinGeckoBaseURL, config.RequestTimeout),
		repository.NewPredictionRepository(),
		insight.NewGenerator(time.Now().UnixNano()),
		caches,
	)
}

// DefaultPredictionHistoryHandler wires the production repository.
func DefaultPredictionHistoryHandler() http.HandlerFunc {
	return PredictionHistoryHandler(repository.NewPredictionRepository())
}

// DefaultBreakoutHandler wires the Binance kline snapshot provider.
func DefaultBreakoutHandler(caches *cache.TTLCache) http.HandlerFunc {
	config := market.GetConfig()
	return BreakoutHandler(
		market.NewBinanceKlineProvider(config.Quote, config.KlineLimit),
		config.KlineLimit,
		caches,
	)
}
