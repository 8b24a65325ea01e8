package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tradejournal/src/cache"
	"tradejournal/src/model"
	"tradejournal/src/repository"
	"tradejournal/src/stats"
)

type mockTradeSearcher struct {
	trades      []model.Trade
	err         error
	symbol      *string
	calledCount int
}

func (m *mockTradeSearcher) Search(ctx context.Context, options repository.TradeSearchOptions) ([]model.Trade, error) {
	m.calledCount++
	m.symbol = options.Symbol
	return m.trades, m.err
}

func newTestCache() *cache.TTLCache {
	return cache.New(100, time.Minute)
}

func TestStatsHandler_AllTime(t *testing.T) {
	old := time.Now().AddDate(0, 0, -5)
	mockRepo := &mockTradeSearcher{trades: []model.Trade{
		{ID: 1, Symbol: "BTC", PositionType: model.PositionTypeLong, Pnl: 100, TradeResult: model.TradeResultWin, Date: old},
		{ID: 2, Symbol: "BTC", PositionType: model.PositionTypeLong, Pnl: -40, TradeResult: model.TradeResultLoss, Date: time.Now()},
	}}
	handler := StatsHandler(mockRepo, newTestCache())

	req := httptest.NewRequest(http.MethodGet, "/api/stats?all_time=true", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var got stats.Stats
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if got.TotalTrades != 2 {
		t.Fatalf("all_time must include every trade, got %d", got.TotalTrades)
	}
	if got.TotalPnl != 60 {
		t.Fatalf("expected total pnl 60, got %v", got.TotalPnl)
	}
	if got.TodayPnl != -40 {
		t.Fatalf("expected today pnl -40, got %v", got.TodayPnl)
	}

	if mockRepo.symbol == nil || *mockRepo.symbol != "All" {
		t.Fatalf("missing symbol must default to All, got %v", mockRepo.symbol)
	}
}

func TestStatsHandler_TodayScope(t *testing.T) {
	old := time.Now().AddDate(0, 0, -5)
	mockRepo := &mockTradeSearcher{trades: []model.Trade{
		{ID: 1, Pnl: 100, PositionType: model.PositionTypeLong, TradeResult: model.TradeResultWin, Date: old},
		{ID: 2, Pnl: -40, PositionType: model.PositionTypeLong, TradeResult: model.TradeResultLoss, Date: time.Now()},
	}}
	handler := StatsHandler(mockRepo, newTestCache())

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	var got stats.Stats
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if got.TotalTrades != 1 {
		t.Fatalf("default scope must only include today's trades, got %d", got.TotalTrades)
	}
	if got.TotalPnl != -40 {
		t.Fatalf("expected total pnl -40 for today, got %v", got.TotalPnl)
	}
}

func TestStatsHandler_SymbolForwarded(t *testing.T) {
	mockRepo := &mockTradeSearcher{}
	handler := StatsHandler(mockRepo, newTestCache())

	req := httptest.NewRequest(http.MethodGet, "/api/stats?symbol=ETH&all_time=true", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if mockRepo.symbol == nil || *mockRepo.symbol != "ETH" {
		t.Fatalf("expected symbol ETH forwarded to the repository, got %v", mockRepo.symbol)
	}
}

func TestStatsHandler_ServesFromCache(t *testing.T) {
	mockRepo := &mockTradeSearcher{trades: []model.Trade{
		{ID: 1, Pnl: 10, PositionType: model.PositionTypeLong, TradeResult: model.TradeResultWin, Date: time.Now()},
	}}
	caches := newTestCache()
	handler := StatsHandler(mockRepo, caches)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/stats?all_time=true", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}
	}

	if mockRepo.calledCount != 1 {
		t.Fatalf("repeated reads must be served from cache, repo called %d times", mockRepo.calledCount)
	}

	// Different scope, different cache key.
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if mockRepo.calledCount != 2 {
		t.Fatalf("a new scope must miss the cache, repo called %d times", mockRepo.calledCount)
	}
}

func TestStatsHandler_RepoError(t *testing.T) {
	handler := StatsHandler(&mockTradeSearcher{err: assert.AnError}, newTestCache())

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
}

func TestCacheStatsHandler(t *testing.T) {
	caches := newTestCache()
	caches.Set("k", 1)
	caches.Get("k")
	caches.Get("missing")

	handler := CacheStatsHandler(caches)

	req := httptest.NewRequest(http.MethodGet, "/api/cache-stats", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var got cache.Counters
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Hits != 1 || got.Misses != 1 {
		t.Fatalf("unexpected counters: %+v", got)
	}
}
