package migrations

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/model"
)

// legacyTrade mirrors the pre-database JSON export format. Derived values
// (pnl, roi, rr) are imported as stored, never recomputed: the journal
// contract is that derivation happens once at write time.
type legacyTrade struct {
	Symbol         string   `json:"symbol"`
	PositionType   string   `json:"positionType"`
	EntryPrice     float64  `json:"entryPrice"`
	ExitPrice      float64  `json:"exitPrice"`
	PositionSize   float64  `json:"positionSize"`
	Leverage       float64  `json:"leverage"`
	Fees           float64  `json:"fees"`
	StopLoss       *float64 `json:"stopLoss"`
	TakeProfit     *float64 `json:"takeProfit"`
	Pnl            float64  `json:"pnl"`
	Roi            float64  `json:"roi"`
	Rr             *float64 `json:"rr"`
	CryptoQuantity float64  `json:"cryptoQuantity"`
	TradeResult    string   `json:"tradeResult"`
	Date           string   `json:"date"`
}

// importLegacyJSONMigration imports a data.json export into the trades
// table and renames the file to <path>.backup so the import never runs
// against the same file twice. A missing file is not an error.
func importLegacyJSONMigration(path string) func(*gorm.DB) error {
	return func(db *gorm.DB) error {
		if path == "" {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				logger.WithField("path", path).Debug("no legacy JSON file, skipping import")
				return nil
			}
			return fmt.Errorf("read legacy json %s: %w", path, err)
		}

		var legacy []legacyTrade
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return fmt.Errorf("parse legacy json %s: %w", path, err)
		}

		for i := range legacy {
			trade := legacy[i].toModel()
			if err := db.Create(&trade).Error; err != nil {
				return fmt.Errorf("import legacy trade %d: %w", i, err)
			}
		}

		backup := path + ".backup"
		if err := os.Rename(path, backup); err != nil {
			return fmt.Errorf("rename %s to %s: %w", path, backup, err)
		}

		logger.WithFields(map[string]interface{}{
			"path":     path,
			"imported": len(legacy),
			"backup":   backup,
		}).Info("legacy JSON trades imported")

		return nil
	}
}

// ImportLegacyJSON runs the legacy import directly, outside the
// run-once migration bookkeeping. Used by the importer command.
func ImportLegacyJSON(db *gorm.DB, path string) error {
	return importLegacyJSONMigration(path)(db)
}

func (lt legacyTrade) toModel() model.Trade {
	leverage := lt.Leverage
	if leverage < 1 {
		leverage = 1
	}

	result := lt.TradeResult
	if result == "" {
		if lt.Pnl >= 0 {
			result = model.TradeResultWin
		} else {
			result = model.TradeResultLoss
		}
	}

	return model.Trade{
		Symbol:         lt.Symbol,
		PositionType:   lt.PositionType,
		EntryPrice:     lt.EntryPrice,
		ExitPrice:      lt.ExitPrice,
		PositionSize:   lt.PositionSize,
		Leverage:       leverage,
		Fees:           lt.Fees,
		StopLoss:       lt.StopLoss,
		TakeProfit:     lt.TakeProfit,
		Pnl:            lt.Pnl,
		Roi:            lt.Roi,
		Rr:             lt.Rr,
		CryptoQuantity: lt.CryptoQuantity,
		TradeResult:    result,
		Date:           parseLegacyDate(lt.Date),
	}
}

// parseLegacyDate tolerates both timestamp and date-only exports. An
// unparsable date yields the zero time: such trades are excluded from the
// Today scope but still counted under AllTime.
func parseLegacyDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t
	}
	logger.WithField("date", s).Warn("unparsable legacy trade date, importing without timestamp")
	return time.Time{}
}
