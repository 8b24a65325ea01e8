package model

import "time"

// MarketPrediction is one row of the AI-dashboard sentiment history.
// The generator behind it is presentational only, there is no model
// inference anywhere in this service.
type MarketPrediction struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	Prediction       string  `gorm:"size:20;not null" json:"prediction"`
	Confidence       float64 `gorm:"not null" json:"confidence"`
	SentimentScore   float64 `gorm:"not null" json:"sentiment_score"`
	Summary          string  `gorm:"type:text;not null" json:"summary"`
	ArticlesAnalyzed int     `gorm:"not null" json:"articles_analyzed"`
	PositivePct      float64 `json:"positive_pct"`
	NegativePct      float64 `json:"negative_pct"`
	NeutralPct       float64 `json:"neutral_pct"`

	// TopCoins is stored as a JSON array string.
	TopCoins string `gorm:"type:text" json:"top_coins,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (MarketPrediction) TableName() string {
	return "market_predictions"
}
