package repository

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/database"
	"tradejournal/src/model"
)

// PredictionRepository persists the AI-dashboard sentiment history.
type PredictionRepository struct {
	db *gorm.DB
}

// NewPredictionRepository creates a new repository instance using the main read/write database.
func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *PredictionRepository) WithDB(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Create stores one generated prediction row.
func (r *PredictionRepository) Create(
	ctx context.Context,
	prediction *model.MarketPrediction,
) error {

	logger.WithFields(map[string]interface{}{
		"repo":       "PredictionRepository",
		"op":         "Create",
		"prediction": prediction.Prediction,
		"confidence": prediction.Confidence,
	}).Debug("Persisting market prediction")

	err := r.db.WithContext(ctx).Create(prediction).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "PredictionRepository",
			"op":   "Create",
		}).WithError(err).Error("Failed to persist market prediction")

		return err
	}

	return nil
}

// FindLatest returns the most recent predictions, newest first.
func (r *PredictionRepository) FindLatest(
	ctx context.Context,
	limit int,
) ([]model.MarketPrediction, error) {

	if limit <= 0 {
		limit = 10
	}

	var predictions []model.MarketPrediction

	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&predictions).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":  "PredictionRepository",
			"op":    "FindLatest",
			"limit": limit,
		}).WithError(err).Error("Failed to fetch prediction history")

		return nil, err
	}

	return predictions, nil
}
