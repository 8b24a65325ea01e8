package model

import "time"

const (
	PositionTypeLong  = "Long"
	PositionTypeShort = "Short"

	TradeResultWin  = "Win"
	TradeResultLoss = "Loss"
)

// Trade represents one manually closed position logged in the journal.
// Derived fields (Pnl, Roi, Rr, CryptoQuantity, TradeResult) are computed
// once at write time and stored; they are never recomputed on read.
type Trade struct {
	ID             uint     `gorm:"primaryKey" json:"id"`
	Symbol         string   `gorm:"size:20;index;not null" json:"symbol"`
	PositionType   string   `gorm:"size:10;not null" json:"positionType"`
	EntryPrice     float64  `gorm:"not null" json:"entryPrice"`
	ExitPrice      float64  `gorm:"not null" json:"exitPrice"`
	PositionSize   float64  `gorm:"not null" json:"positionSize"`
	Leverage       float64  `gorm:"not null;default:1" json:"leverage"`
	Fees           float64  `json:"fees"`
	StopLoss       *float64 `json:"stopLoss,omitempty"`
	TakeProfit     *float64 `json:"takeProfit,omitempty"`
	Pnl            float64  `json:"pnl"`
	Roi            float64  `json:"roi"`
	Rr             *float64 `json:"rr,omitempty"`
	CryptoQuantity float64  `json:"cryptoQuantity"`
	TradeResult    string   `gorm:"size:10" json:"tradeResult"`

	// Date is the creation timestamp used for all time-based filtering.
	// It is immutable: edits never touch it.
	Date time.Time `gorm:"index" json:"date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName controls the exact table name for trades.
func (Trade) TableName() string {
	return "trades"
}

// IsWin reports whether the stored result marks this trade as a win.
func (t *Trade) IsWin() bool {
	return t.TradeResult == TradeResultWin
}

// HasDate reports whether the trade carries a usable creation timestamp.
// Legacy imports may leave it zero; such trades never match the Today scope
// but are still included under AllTime.
func (t *Trade) HasDate() bool {
	return !t.Date.IsZero()
}
