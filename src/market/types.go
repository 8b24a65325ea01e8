package market

import "time"

// Snapshot is a one-shot price reading for a single symbol. Mock marks
// readings generated locally because the upstream source was unreachable;
// the dashboard renders them with a "mock data" badge, never silently.
type Snapshot struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change_24h"`
	Mock      bool    `json:"mock"`
}

// Candle is one OHLCV bar of the demo chart series.
type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// TrendingCoin is one entry of the "top coins" widget.
type TrendingCoin struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Rank   int    `json:"rank"`
}
