package market

import (
	"hash/fnv"
	"math/rand"
	"time"
)

// Mock fallbacks keep the demo pages rendering when the upstream APIs are
// unreachable. Values are seeded per symbol so repeated calls stay
// visually stable within a session, and every result is flagged Mock.

var mockBasePrices = map[string]float64{
	"BTC": 65000,
	"ETH": 3200,
	"SOL": 150,
	"BNB": 580,
}

func mockSeed(symbol string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(symbol))
	return int64(h.Sum64())
}

func mockBasePrice(symbol string) float64 {
	if p, ok := mockBasePrices[symbol]; ok {
		return p
	}
	return 100
}

// MockSnapshot generates a plausible price reading for symbol.
func MockSnapshot(symbol string) *Snapshot {
	rng := rand.New(rand.NewSource(mockSeed(symbol)))
	base := mockBasePrice(symbol)

	return &Snapshot{
		Symbol:    symbol,
		Price:     base * (1 + (rng.Float64()-0.5)*0.04),
		Change24h: (rng.Float64() - 0.5) * 10,
		Mock:      true,
	}
}

// MockCandles generates a random-walk hourly series ending at now,
// oldest first.
func MockCandles(symbol string, limit int, now time.Time) []Candle {
	if limit <= 0 {
		limit = 96
	}

	rng := rand.New(rand.NewSource(mockSeed(symbol)))
	price := mockBasePrice(symbol)
	start := now.Truncate(time.Hour).Add(-time.Duration(limit-1) * time.Hour)

	candles := make([]Candle, 0, limit)
	for i := 0; i < limit; i++ {
		drift := (rng.Float64() - 0.5) * 0.02
		open := price
		close := open * (1 + drift)
		high := open
		if close > high {
			high = close
		}
		high *= 1 + rng.Float64()*0.005
		low := open
		if close < low {
			low = close
		}
		low *= 1 - rng.Float64()*0.005

		candles = append(candles, Candle{
			Time:   start.Add(time.Duration(i) * time.Hour),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: 500 + rng.Float64()*1500,
		})
		price = close
	}
	return candles
}

// MockTrending is the static top-coins list used when CoinGecko is down.
func MockTrending() []TrendingCoin {
	return []TrendingCoin{
		{Name: "Bitcoin", Symbol: "BTC", Rank: 1},
		{Name: "Ethereum", Symbol: "ETH", Rank: 2},
		{Name: "Solana", Symbol: "SOL", Rank: 5},
	}
}
