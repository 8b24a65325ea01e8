package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/database"
	"tradejournal/src/model"
)

// TradeSearchOptions narrows the trade listing. A nil Symbol (or the
// literal "All") means no symbol restriction. Time scoping is applied in
// the stats package, not here, because "today" is a wall-clock predicate.
type TradeSearchOptions struct {
	Symbol *string
}

// TradeRepository handles read/write operations for journal trades.
type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new repository instance using the main read/write database.
func NewTradeRepository() *TradeRepository {
	logger.WithField("component", "TradeRepository").
		Debug("Creating new TradeRepository with MainDB")

	return &TradeRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
// Useful for tests or when using a specific session/transaction.
func (r *TradeRepository) WithDB(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// Create inserts a new trade into the database.
// The given trade will be updated with the generated ID and timestamps.
func (r *TradeRepository) Create(
	ctx context.Context,
	trade *model.Trade,
) error {

	logger.WithFields(map[string]interface{}{
		"repo":   "TradeRepository",
		"op":     "Create",
		"symbol": trade.Symbol,
		"type":   trade.PositionType,
		"pnl":    trade.Pnl,
	}).Debug("Creating new trade")

	err := r.db.WithContext(ctx).Create(trade).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "Create",
		}).WithError(err).Error("Failed to create trade")

		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo":     "TradeRepository",
		"op":       "Create",
		"trade_id": trade.ID,
	}).Info("Trade created successfully")

	return nil
}

// FindByID fetches a single trade by its primary ID.
// Returns (nil, nil) if the trade is not found.
func (r *TradeRepository) FindByID(
	ctx context.Context,
	id uint,
) (*model.Trade, error) {

	logger.WithFields(map[string]interface{}{
		"repo": "TradeRepository",
		"op":   "FindByID",
		"id":   id,
	}).Debug("Fetching trade by ID")

	var trade model.Trade

	err := r.db.WithContext(ctx).First(&trade, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WithFields(map[string]interface{}{
				"repo": "TradeRepository",
				"op":   "FindByID",
				"id":   id,
			}).Info("Trade not found")

			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "FindByID",
			"id":   id,
		}).WithError(err).Error("Failed to fetch trade by ID")

		return nil, err
	}

	return &trade, nil
}

// Update persists the full state of an existing trade.
func (r *TradeRepository) Update(
	ctx context.Context,
	trade *model.Trade,
) error {

	logger.WithFields(map[string]interface{}{
		"repo":     "TradeRepository",
		"op":       "Update",
		"trade_id": trade.ID,
	}).Debug("Updating trade")

	err := r.db.WithContext(ctx).Save(trade).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":     "TradeRepository",
			"op":       "Update",
			"trade_id": trade.ID,
		}).WithError(err).Error("Failed to update trade")

		return err
	}

	return nil
}

// DeleteByID removes a trade by ID, reporting whether a row was deleted.
// An unknown ID leaves the store unchanged.
func (r *TradeRepository) DeleteByID(
	ctx context.Context,
	id uint,
) (bool, error) {

	logger.WithFields(map[string]interface{}{
		"repo": "TradeRepository",
		"op":   "DeleteByID",
		"id":   id,
	}).Debug("Deleting trade")

	result := r.db.WithContext(ctx).Delete(&model.Trade{}, id)
	if result.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "DeleteByID",
			"id":   id,
		}).WithError(result.Error).Error("Failed to delete trade")

		return false, result.Error
	}

	if result.RowsAffected == 0 {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "DeleteByID",
			"id":   id,
		}).Info("Trade not found, nothing deleted")

		return false, nil
	}

	return true, nil
}

// Search lists trades, optionally restricted to one symbol, in insertion
// order (oldest first). The stats aggregation depends on that ordering
// for its streak walk.
func (r *TradeRepository) Search(
	ctx context.Context,
	options TradeSearchOptions,
) ([]model.Trade, error) {

	logger.WithFields(map[string]interface{}{
		"repo": "TradeRepository",
		"op":   "Search",
	}).Debug("Searching trades")

	query := r.db.WithContext(ctx).Model(&model.Trade{})

	if options.Symbol != nil && *options.Symbol != "" && *options.Symbol != "All" {
		query = query.Where("symbol = ?", *options.Symbol)
	}

	var trades []model.Trade
	err := query.Order("id ASC").Find(&trades).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "Search",
		}).WithError(err).Error("Failed to search trades")

		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"repo":        "TradeRepository",
		"op":          "Search",
		"rows_return": len(trades),
	}).Debug("Trades fetched")

	return trades, nil
}
