package insight

import (
	"testing"
	"time"

	"tradejournal/src/market"
)

func TestGeneratePrediction_FollowsMomentum(t *testing.T) {
	now := time.Date(2025, time.March, 4, 12, 0, 0, 0, time.UTC)

	up := NewGenerator(1).GeneratePrediction(&market.Snapshot{
		Symbol: "BTC", Price: 65000, Change24h: 8,
	}, nil, now)

	if up.Prediction != PredictionBullish {
		t.Fatalf("strong positive momentum must read bullish, got %s", up.Prediction)
	}

	down := NewGenerator(1).GeneratePrediction(&market.Snapshot{
		Symbol: "BTC", Price: 65000, Change24h: -8,
	}, nil, now)

	if down.Prediction != PredictionBearish {
		t.Fatalf("strong negative momentum must read bearish, got %s", down.Prediction)
	}
}

func TestGeneratePrediction_Shape(t *testing.T) {
	now := time.Now()
	p := NewGenerator(42).GeneratePrediction(&market.Snapshot{
		Symbol: "ETH", Price: 3200, Change24h: 1.5, Mock: true,
	}, market.MockTrending(), now)

	if p.Confidence < 0 || p.Confidence > 1 {
		t.Fatalf("confidence out of range: %v", p.Confidence)
	}
	if p.SentimentScore < -1 || p.SentimentScore > 1 {
		t.Fatalf("sentiment out of range: %v", p.SentimentScore)
	}

	sum := p.PositivePct + p.NegativePct + p.NeutralPct
	if sum < 99.9 || sum > 100.1 {
		t.Fatalf("sentiment percentages must sum to 100, got %v", sum)
	}
	if p.ArticlesAnalyzed <= 0 {
		t.Fatalf("articles analyzed must be positive")
	}
	if !p.Mock {
		t.Fatalf("a prediction built on mock data must stay flagged mock")
	}

	row := p.ToModel()
	if row.Prediction != p.Prediction || row.Confidence != p.Confidence {
		t.Fatalf("history row mismatch: %+v", row)
	}
	if row.TopCoins == "" {
		t.Fatalf("top coins must serialize into the history row")
	}
}

func TestGeneratePrediction_Deterministic(t *testing.T) {
	now := time.Now()
	snap := &market.Snapshot{Symbol: "BTC", Price: 65000, Change24h: 2}

	a := NewGenerator(7).GeneratePrediction(snap, nil, now)
	b := NewGenerator(7).GeneratePrediction(snap, nil, now)

	if a.SentimentScore != b.SentimentScore || a.ArticlesAnalyzed != b.ArticlesAnalyzed {
		t.Fatalf("same seed must yield the same prediction: %+v vs %+v", a, b)
	}
}

func candleSeries(closes ...float64) []market.Candle {
	start := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)
	candles := make([]market.Candle, 0, len(closes))
	for i, c := range closes {
		candles = append(candles, market.Candle{
			Time:  start.Add(time.Duration(i) * time.Hour),
			Open:  c,
			High:  c * 1.01,
			Low:   c * 0.99,
			Close: c,
		})
	}
	return candles
}

func TestAnalyzeBreakout(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		closes []float64
		want   string
	}{
		{"close above band breaks out", []float64{100, 102, 101, 110}, SignalBreakout},
		{"close below band breaks down", []float64{100, 102, 101, 90}, SignalBreakdown},
		{"close inside band is range bound", []float64{100, 102, 104, 101.5}, SignalRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := AnalyzeBreakout("BTC", candleSeries(tt.closes...), false, now)

			if report.Signal != tt.want {
				t.Fatalf("signal mismatch. got=%s want=%s (support=%v resistance=%v close=%v)",
					report.Signal, tt.want, report.Support, report.Resistance, report.LastClose)
			}
			if report.Support <= 0 || report.Resistance < report.Support {
				t.Fatalf("invalid band: support=%v resistance=%v", report.Support, report.Resistance)
			}
		})
	}
}

func TestAnalyzeBreakout_TooFewCandles(t *testing.T) {
	report := AnalyzeBreakout("BTC", nil, true, time.Now())

	if report.Signal != SignalRange {
		t.Fatalf("empty series must be range bound, got %s", report.Signal)
	}
	if !report.Mock {
		t.Fatalf("mock flag must pass through")
	}
}
