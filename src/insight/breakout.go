package insight

import (
	"time"

	"tradejournal/src/market"
)

const (
	SignalBreakout  = "breakout_up"
	SignalBreakdown = "breakout_down"
	SignalRange     = "range_bound"

	// breakoutTolerance widens the band edges slightly so a close sitting
	// on the line already counts as a break.
	breakoutTolerance = 0.002
)

// BreakoutReport is the breakout-strategy demo payload: a candle series
// with a support/resistance band and the signal the last close implies.
type BreakoutReport struct {
	Symbol     string          `json:"symbol"`
	Support    float64         `json:"support"`
	Resistance float64         `json:"resistance"`
	LastClose  float64         `json:"last_close"`
	Signal     string          `json:"signal"`
	Candles    []market.Candle `json:"candles"`
	Mock       bool            `json:"mock"`
	Generated  time.Time       `json:"generated"`
}

// AnalyzeBreakout derives the support/resistance band from every candle
// except the last and classifies the last close against it.
func AnalyzeBreakout(symbol string, candles []market.Candle, mock bool, now time.Time) BreakoutReport {
	report := BreakoutReport{
		Symbol:    symbol,
		Signal:    SignalRange,
		Candles:   candles,
		Mock:      mock,
		Generated: now.UTC(),
	}
	if len(candles) < 2 {
		return report
	}

	band := candles[:len(candles)-1]
	report.Support = band[0].Low
	report.Resistance = band[0].High
	for _, c := range band[1:] {
		if c.Low < report.Support {
			report.Support = c.Low
		}
		if c.High > report.Resistance {
			report.Resistance = c.High
		}
	}

	report.LastClose = candles[len(candles)-1].Close
	switch {
	case report.LastClose >= report.Resistance*(1-breakoutTolerance):
		report.Signal = SignalBreakout
	case report.LastClose <= report.Support*(1+breakoutTolerance):
		report.Signal = SignalBreakdown
	}

	return report
}
