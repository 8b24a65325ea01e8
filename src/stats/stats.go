package stats

import (
	"math"
	"time"

	"tradejournal/src/model"
)

// Stats is the fixed-shape summary computed on every query. It is never
// persisted; staleness only ever comes from the response cache in front
// of it.
type Stats struct {
	TotalPnl      float64       `json:"total_pnl"`
	TodayPnl      float64       `json:"today_pnl"`
	TotalTrades   int           `json:"total_trades"`
	Wins          int           `json:"wins"`
	Losses        int           `json:"losses"`
	WinRate       float64       `json:"win_rate"`
	LoseRate      float64       `json:"lose_rate"`
	WinRateLong   float64       `json:"win_rate_long"`
	LoseRateLong  float64       `json:"lose_rate_long"`
	WinRateShort  float64       `json:"win_rate_short"`
	LoseRateShort float64       `json:"lose_rate_short"`
	HighestStreak int           `json:"highest_streak"`
	CurrentStreak int           `json:"current_streak"`
	Trades        []model.Trade `json:"trades"`
}

// FilterToday returns the sub-sequence of trades whose date falls on the
// current calendar day in local time, preserving input order. Trades
// without a usable date never match; there is no stored reset timestamp,
// yesterday's trades simply stop matching once the date advances.
func FilterToday(trades []model.Trade, now time.Time) []model.Trade {
	selected := make([]model.Trade, 0, len(trades))
	y, m, d := now.Date()
	for _, t := range trades {
		if !t.HasDate() {
			continue
		}
		ty, tm, td := t.Date.In(now.Location()).Date()
		if ty == y && tm == m && td == d {
			selected = append(selected, t)
		}
	}
	return selected
}

// Compute aggregates the selected trade sequence into a Stats record.
// The input order is the contract: trades must arrive oldest first
// (insertion order), because the streak counters walk them chronologically.
func Compute(trades []model.Trade, now time.Time) Stats {
	s := Stats{
		TotalTrades: len(trades),
		Trades:      trades,
	}
	if s.Trades == nil {
		s.Trades = []model.Trade{}
	}

	var longWins, longTotal, shortWins, shortTotal int
	var running int

	y, m, d := now.Date()

	for _, t := range trades {
		s.TotalPnl += t.Pnl

		if t.HasDate() {
			ty, tm, td := t.Date.In(now.Location()).Date()
			if ty == y && tm == m && td == d {
				s.TodayPnl += t.Pnl
			}
		}

		win := t.IsWin()
		if win {
			s.Wins++
			running++
		} else {
			s.Losses++
			running = 0
		}
		if running > s.HighestStreak {
			s.HighestStreak = running
		}

		switch t.PositionType {
		case model.PositionTypeLong:
			longTotal++
			if win {
				longWins++
			}
		case model.PositionTypeShort:
			shortTotal++
			if win {
				shortWins++
			}
		}
	}

	s.CurrentStreak = running

	s.WinRate = rate(s.Wins, s.Wins+s.Losses)
	s.LoseRate = rate(s.Losses, s.Wins+s.Losses)
	s.WinRateLong = rate(longWins, longTotal)
	s.LoseRateLong = rate(longTotal-longWins, longTotal)
	s.WinRateShort = rate(shortWins, shortTotal)
	s.LoseRateShort = rate(shortTotal-shortWins, shortTotal)

	s.TotalPnl = round2(s.TotalPnl)
	s.TodayPnl = round2(s.TodayPnl)

	return s
}

// rate returns count/total as a percentage, or 0 when the denominator is
// 0. Never NaN.
func rate(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(count) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
