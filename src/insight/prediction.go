package insight

import (
	"encoding/json"
	"math"
	"math/rand"
	"time"

	"tradejournal/src/market"
	"tradejournal/src/model"
)

const (
	PredictionBullish = "Bullish"
	PredictionBearish = "Bearish"
	PredictionNeutral = "Neutral"
)

// Prediction is the AI-dashboard payload. There is no model behind it:
// the sentiment numbers are generated from the price snapshot plus noise,
// which is exactly what the demo page needs to render.
type Prediction struct {
	Prediction       string                `json:"prediction"`
	Confidence       float64               `json:"confidence"`
	SentimentScore   float64               `json:"sentiment_score"`
	Summary          string                `json:"summary"`
	ArticlesAnalyzed int                   `json:"articles_analyzed"`
	PositivePct      float64               `json:"positive_pct"`
	NegativePct      float64               `json:"negative_pct"`
	NeutralPct       float64               `json:"neutral_pct"`
	CurrentPrice     float64               `json:"current_price"`
	PriceChange24h   float64               `json:"price_change_24h"`
	TopCoins         []market.TrendingCoin `json:"top_coins"`
	Mock             bool                  `json:"mock"`
	LastUpdated      time.Time             `json:"last_updated"`
}

// Generator produces demo predictions. Seed it with a fixed value in
// tests for reproducible output.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// GeneratePrediction builds a sentiment readout around the given price
// snapshot: direction follows the 24h change, everything else is noise.
func (g *Generator) GeneratePrediction(snapshot *market.Snapshot, topCoins []market.TrendingCoin, now time.Time) Prediction {
	sentiment := clamp(snapshot.Change24h/10+(g.rng.Float64()-0.5)*0.4, -1, 1)

	direction := PredictionNeutral
	summary := "Mixed signals across crypto news coverage, momentum is flat."
	switch {
	case sentiment > 0.15:
		direction = PredictionBullish
		summary = "News coverage leans positive and momentum is up over the last 24h."
	case sentiment < -0.15:
		direction = PredictionBearish
		summary = "News coverage leans negative and momentum is down over the last 24h."
	}

	positive := clamp(50+sentiment*40+(g.rng.Float64()-0.5)*10, 0, 100)
	negative := clamp(100-positive-20+(g.rng.Float64()-0.5)*10, 0, 100-positive)
	neutral := 100 - positive - negative

	return Prediction{
		Prediction:       direction,
		Confidence:       round2(0.5 + math.Abs(sentiment)*0.4),
		SentimentScore:   round2(sentiment),
		Summary:          summary,
		ArticlesAnalyzed: 20 + g.rng.Intn(30),
		PositivePct:      round2(positive),
		NegativePct:      round2(negative),
		NeutralPct:       round2(neutral),
		CurrentPrice:     snapshot.Price,
		PriceChange24h:   round2(snapshot.Change24h),
		TopCoins:         topCoins,
		Mock:             snapshot.Mock,
		LastUpdated:      now.UTC(),
	}
}

// ToModel converts a generated prediction into its history row.
func (p Prediction) ToModel() *model.MarketPrediction {
	topCoins := ""
	if b, err := json.Marshal(p.TopCoins); err == nil {
		topCoins = string(b)
	}

	return &model.MarketPrediction{
		Prediction:       p.Prediction,
		Confidence:       p.Confidence,
		SentimentScore:   p.SentimentScore,
		Summary:          p.Summary,
		ArticlesAnalyzed: p.ArticlesAnalyzed,
		PositivePct:      p.PositivePct,
		NegativePct:      p.NegativePct,
		NeutralPct:       p.NeutralPct,
		TopCoins:         topCoins,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
