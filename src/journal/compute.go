package journal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"tradejournal/src/model"
)

const (
	moneyPlaces    = 2
	quantityPlaces = 8
)

// Input carries the raw user-entered fields of a closed trade.
// Everything derived from them goes through ComputeDerived, which is the
// single formula implementation shared by the create and edit paths.
type Input struct {
	Symbol       string
	PositionType string
	EntryPrice   float64
	ExitPrice    float64
	PositionSize float64 // quote-currency notional, e.g. USDT
	Leverage     float64
	StopLoss     *float64
	TakeProfit   *float64
}

// Derived holds every stored field that is computed rather than entered.
type Derived struct {
	CryptoQuantity float64
	Fees           float64
	Pnl            float64
	Roi            float64
	Rr             *float64
	TradeResult    string
}

// ValidationError reports a rejected input field before any computation runs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate rejects missing or non-positive required fields. The returned
// error is always a *ValidationError so handlers can surface it per field.
func Validate(in Input) error {
	if strings.TrimSpace(in.Symbol) == "" {
		return &ValidationError{Field: "symbol", Message: "symbol is required"}
	}
	if in.PositionType != model.PositionTypeLong && in.PositionType != model.PositionTypeShort {
		return &ValidationError{Field: "positionType", Message: "positionType must be Long or Short"}
	}
	if in.EntryPrice <= 0 {
		return &ValidationError{Field: "entryPrice", Message: "entryPrice must be positive"}
	}
	if in.ExitPrice <= 0 {
		return &ValidationError{Field: "exitPrice", Message: "exitPrice must be positive"}
	}
	if in.PositionSize <= 0 {
		return &ValidationError{Field: "positionSize", Message: "positionSize must be positive"}
	}
	if in.Leverage != 0 && in.Leverage < 1 {
		return &ValidationError{Field: "leverage", Message: "leverage must be >= 1"}
	}
	if in.StopLoss != nil && *in.StopLoss <= 0 {
		return &ValidationError{Field: "stopLoss", Message: "stopLoss must be positive"}
	}
	if in.TakeProfit != nil && *in.TakeProfit <= 0 {
		return &ValidationError{Field: "takeProfit", Message: "takeProfit must be positive"}
	}
	return nil
}

// ComputeDerived computes every derived trade field from the raw input.
//
//	cryptoQuantity = positionSize / entryPrice            (8 dp)
//	fees           = feeRate*size + feeRate*(exit*qty)    (2 dp)
//	pnl            = rawPnL * qty * leverage - fees       (2 dp)
//	roi            = pnl / positionSize * 100             (2 dp)
//	rr             = reward / risk, direction adjusted    (2 dp)
//
// rawPnL is exit-entry for Long, entry-exit for Short. The rr ratio is
// computed pre-fee and pre-leverage, matching common charting-tool
// conventions, and only when both stopLoss and takeProfit are present.
func ComputeDerived(in Input, feeRate float64) Derived {
	entry := decimal.NewFromFloat(in.EntryPrice)
	exit := decimal.NewFromFloat(in.ExitPrice)
	size := decimal.NewFromFloat(in.PositionSize)
	rate := decimal.NewFromFloat(feeRate)

	leverage := decimal.NewFromFloat(in.Leverage)
	if leverage.LessThan(decimal.NewFromInt(1)) {
		leverage = decimal.NewFromInt(1)
	}

	qty := size.Div(entry).Round(quantityPlaces)

	var rawPnl decimal.Decimal
	if in.PositionType == model.PositionTypeShort {
		rawPnl = entry.Sub(exit)
	} else {
		rawPnl = exit.Sub(entry)
	}

	// Fee charged on entry notional and exit notional independently.
	fees := rate.Mul(size).Add(rate.Mul(exit.Mul(qty))).Round(moneyPlaces)

	pnl := rawPnl.Mul(qty).Mul(leverage).Sub(fees).Round(moneyPlaces)
	roi := pnl.Div(size).Mul(decimal.NewFromInt(100)).Round(moneyPlaces)

	d := Derived{
		CryptoQuantity: qty.InexactFloat64(),
		Fees:           fees.InexactFloat64(),
		Pnl:            pnl.InexactFloat64(),
		Roi:            roi.InexactFloat64(),
	}

	if in.StopLoss != nil && in.TakeProfit != nil {
		rr := rewardRisk(in.PositionType, entry,
			decimal.NewFromFloat(*in.StopLoss),
			decimal.NewFromFloat(*in.TakeProfit))
		d.Rr = &rr
	}

	if pnl.IsNegative() {
		d.TradeResult = model.TradeResultLoss
	} else {
		d.TradeResult = model.TradeResultWin
	}

	return d
}

// Apply recomputes the derived fields of a trade in place. Both the add
// and update handlers go through here so the two paths can never drift.
func Apply(t *model.Trade, feeRate float64) {
	t.Symbol = strings.ToUpper(strings.TrimSpace(t.Symbol))
	if t.Leverage < 1 {
		t.Leverage = 1
	}

	d := ComputeDerived(Input{
		Symbol:       t.Symbol,
		PositionType: t.PositionType,
		EntryPrice:   t.EntryPrice,
		ExitPrice:    t.ExitPrice,
		PositionSize: t.PositionSize,
		Leverage:     t.Leverage,
		StopLoss:     t.StopLoss,
		TakeProfit:   t.TakeProfit,
	}, feeRate)

	t.CryptoQuantity = d.CryptoQuantity
	t.Fees = d.Fees
	t.Pnl = d.Pnl
	t.Roi = d.Roi
	t.Rr = d.Rr
	t.TradeResult = d.TradeResult
}

// rewardRisk returns the realized reward-to-risk ratio, sign adjusted per
// direction. A non-positive risk yields 0, never a division error.
func rewardRisk(positionType string, entry, stopLoss, takeProfit decimal.Decimal) float64 {
	var risk, reward decimal.Decimal
	if positionType == model.PositionTypeShort {
		risk = stopLoss.Sub(entry)
		reward = entry.Sub(takeProfit)
	} else {
		risk = entry.Sub(stopLoss)
		reward = takeProfit.Sub(entry)
	}

	if risk.LessThanOrEqual(decimal.Zero) {
		return 0
	}

	rr := reward.Div(risk).Round(moneyPlaces)
	if rr.IsNegative() {
		return 0
	}
	return rr.InexactFloat64()
}
