package journal

import (
	"testing"

	"tradejournal/src/model"
)

func ptrFloat(v float64) *float64 { return &v }

func TestComputeDerived_LongExample(t *testing.T) {
	// Long, entry=100, exit=110, size=1000, leverage=1, feeRate=0.002:
	// qty=10, fees = 0.002*1000 + 0.002*1100 = 4.2, pnl = 10*10 - 4.2 = 95.8
	d := ComputeDerived(Input{
		Symbol:       "BTC",
		PositionType: model.PositionTypeLong,
		EntryPrice:   100,
		ExitPrice:    110,
		PositionSize: 1000,
		Leverage:     1,
	}, 0.002)

	if d.CryptoQuantity != 10 {
		t.Fatalf("cryptoQuantity mismatch. got=%v want=10", d.CryptoQuantity)
	}
	if d.Fees != 4.2 {
		t.Fatalf("fees mismatch. got=%v want=4.2", d.Fees)
	}
	if d.Pnl != 95.8 {
		t.Fatalf("pnl mismatch. got=%v want=95.8", d.Pnl)
	}
	if d.Roi != 9.58 {
		t.Fatalf("roi mismatch. got=%v want=9.58", d.Roi)
	}
	if d.TradeResult != model.TradeResultWin {
		t.Fatalf("tradeResult mismatch. got=%s want=Win", d.TradeResult)
	}
	if d.Rr != nil {
		t.Fatalf("expected no rr without stopLoss/takeProfit, got %v", *d.Rr)
	}
}

func TestComputeDerived_ShortAndLeverage(t *testing.T) {
	// Short profits when price falls. Leverage multiplies the raw pnl but
	// not the fees.
	d := ComputeDerived(Input{
		Symbol:       "ETH",
		PositionType: model.PositionTypeShort,
		EntryPrice:   100,
		ExitPrice:    90,
		PositionSize: 1000,
		Leverage:     5,
	}, 0.002)

	// qty=10, rawPnl=10, fees = 2 + 0.002*900 = 3.8, pnl = 10*10*5 - 3.8
	if d.Pnl != 496.2 {
		t.Fatalf("pnl mismatch. got=%v want=496.2", d.Pnl)
	}
	if d.Roi != 49.62 {
		t.Fatalf("roi mismatch. got=%v want=49.62", d.Roi)
	}
}

func TestComputeDerived_ZeroLeverageDefaultsToOne(t *testing.T) {
	d := ComputeDerived(Input{
		Symbol:       "BTC",
		PositionType: model.PositionTypeLong,
		EntryPrice:   100,
		ExitPrice:    110,
		PositionSize: 1000,
		Leverage:     0,
	}, 0.002)

	if d.Pnl != 95.8 {
		t.Fatalf("expected leverage 0 to behave as 1, pnl got=%v want=95.8", d.Pnl)
	}
}

func TestComputeDerived_RewardRisk(t *testing.T) {
	tests := []struct {
		name         string
		positionType string
		entry        float64
		stopLoss     float64
		takeProfit   float64
		want         float64
	}{
		{
			name:         "long example, risk 5 reward 15",
			positionType: model.PositionTypeLong,
			entry:        100, stopLoss: 95, takeProfit: 115,
			want: 3,
		},
		{
			name:         "short, risk 10 reward 20",
			positionType: model.PositionTypeShort,
			entry:        100, stopLoss: 110, takeProfit: 80,
			want: 2,
		},
		{
			name:         "long with stop above entry has no risk",
			positionType: model.PositionTypeLong,
			entry:        100, stopLoss: 105, takeProfit: 115,
			want: 0,
		},
		{
			name:         "long with target below entry clamps to zero",
			positionType: model.PositionTypeLong,
			entry:        100, stopLoss: 95, takeProfit: 98,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ComputeDerived(Input{
				Symbol:       "BTC",
				PositionType: tt.positionType,
				EntryPrice:   tt.entry,
				ExitPrice:    tt.entry,
				PositionSize: 1000,
				Leverage:     1,
				StopLoss:     ptrFloat(tt.stopLoss),
				TakeProfit:   ptrFloat(tt.takeProfit),
			}, 0.002)

			if d.Rr == nil {
				t.Fatalf("expected rr to be set")
			}
			if *d.Rr != tt.want {
				t.Fatalf("rr mismatch. got=%v want=%v", *d.Rr, tt.want)
			}
		})
	}
}

func TestComputeDerived_BreakEvenIsWin(t *testing.T) {
	// A zero pnl counts as a win: tradeResult is Win iff pnl >= 0.
	d := ComputeDerived(Input{
		Symbol:       "BTC",
		PositionType: model.PositionTypeLong,
		EntryPrice:   100,
		ExitPrice:    100,
		PositionSize: 1000,
		Leverage:     1,
	}, 0)

	if d.Pnl != 0 {
		t.Fatalf("pnl mismatch. got=%v want=0", d.Pnl)
	}
	if d.TradeResult != model.TradeResultWin {
		t.Fatalf("tradeResult mismatch. got=%s want=Win", d.TradeResult)
	}
}

func TestApply_RecomputesAndNormalizes(t *testing.T) {
	trade := &model.Trade{
		Symbol:       " btc ",
		PositionType: model.PositionTypeLong,
		EntryPrice:   100,
		ExitPrice:    110,
		PositionSize: 1000,
		// stale derived values from a previous edit
		Pnl: -1, Roi: -1, TradeResult: model.TradeResultLoss,
	}

	Apply(trade, 0.002)

	if trade.Symbol != "BTC" {
		t.Fatalf("symbol not uppercased: %q", trade.Symbol)
	}
	if trade.Leverage != 1 {
		t.Fatalf("leverage not defaulted: %v", trade.Leverage)
	}
	if trade.Pnl != 95.8 || trade.Roi != 9.58 {
		t.Fatalf("derived fields not recomputed: pnl=%v roi=%v", trade.Pnl, trade.Roi)
	}
	if trade.TradeResult != model.TradeResultWin {
		t.Fatalf("tradeResult not recomputed: %s", trade.TradeResult)
	}
}

func TestValidate(t *testing.T) {
	valid := Input{
		Symbol:       "BTC",
		PositionType: model.PositionTypeLong,
		EntryPrice:   100,
		ExitPrice:    110,
		PositionSize: 1000,
		Leverage:     1,
	}

	if err := Validate(valid); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	tests := []struct {
		name      string
		mutate    func(*Input)
		wantField string
	}{
		{"missing symbol", func(in *Input) { in.Symbol = "  " }, "symbol"},
		{"bad position type", func(in *Input) { in.PositionType = "long" }, "positionType"},
		{"zero entry", func(in *Input) { in.EntryPrice = 0 }, "entryPrice"},
		{"negative exit", func(in *Input) { in.ExitPrice = -1 }, "exitPrice"},
		{"zero size", func(in *Input) { in.PositionSize = 0 }, "positionSize"},
		{"fractional leverage", func(in *Input) { in.Leverage = 0.5 }, "leverage"},
		{"zero stop loss", func(in *Input) { in.StopLoss = ptrFloat(0) }, "stopLoss"},
		{"negative take profit", func(in *Input) { in.TakeProfit = ptrFloat(-5) }, "takeProfit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			err := Validate(in)
			if err == nil {
				t.Fatalf("expected validation error for %s", tt.wantField)
			}

			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Field != tt.wantField {
				t.Fatalf("field mismatch. got=%s want=%s", verr.Field, tt.wantField)
			}
		})
	}
}
