package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/cache"
	"tradejournal/src/model"
	"tradejournal/src/repository"
	"tradejournal/src/stats"
)

type tradeSearcher interface {
	Search(ctx context.Context, options repository.TradeSearchOptions) ([]model.Trade, error)
}

// StatsHandler computes the journal summary for one scope. Scope is
// symbol ("All" or empty means every symbol) plus all_time ("true" for
// the full history, anything else for today only). Responses are served
// through the TTL cache; write handlers clear it, so the only staleness
// a client can observe is bounded by the TTL.
func StatsHandler(repo tradeSearcher, caches *cache.TTLCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := r.URL.Query().Get("symbol")
		if symbol == "" {
			symbol = "All"
		}
		allTime := r.URL.Query().Get("all_time") == "true"

		key := fmt.Sprintf("stats:%s:%t", symbol, allTime)
		if cached, ok := caches.Get(key); ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}

		trades, err := repo.Search(r.Context(), repository.TradeSearchOptions{Symbol: &symbol})
		if err != nil {
			Capture(r.Context(), DefaultExceptionWriter(), "handler", "StatsHandler", "error", err, map[string]interface{}{
				"symbol":   symbol,
				"all_time": allTime,
			})
			writeError(w, http.StatusInternalServerError, "failed to load trades")
			return
		}

		now := time.Now()
		if !allTime {
			trades = stats.FilterToday(trades, now)
		}
		summary := stats.Compute(trades, now)

		caches.Set(key, summary)

		logger.WithFields(map[string]interface{}{
			"handler":  "StatsHandler",
			"symbol":   symbol,
			"all_time": allTime,
			"trades":   summary.TotalTrades,
		}).Debug("Stats computed")

		writeJSON(w, http.StatusOK, summary)
	}
}

// CacheStatsHandler exposes the cache counters for debugging.
func CacheStatsHandler(caches *cache.TTLCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, caches.Stats())
	}
}

// DefaultStatsHandler wires the production repository.
func DefaultStatsHandler(caches *cache.TTLCache) http.HandlerFunc {
	return StatsHandler(repository.NewTradeRepository(), caches)
}
