package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/cache"
	"tradejournal/src/journal"
	"tradejournal/src/model"
	"tradejournal/src/repository"
)

type tradeCreator interface {
	Create(ctx context.Context, trade *model.Trade) error
}

type tradeUpdater interface {
	FindByID(ctx context.Context, id uint) (*model.Trade, error)
	Update(ctx context.Context, trade *model.Trade) error
}

type tradeDeleter interface {
	DeleteByID(ctx context.Context, id uint) (bool, error)
}

// invalidator is the slice of the cache the write handlers need: any
// successful mutation drops every cached aggregate.
type invalidator interface {
	Clear()
}

// tradeRequest carries the user-entered fields of a trade. Derived
// fields sent by a client are ignored; the journal package recomputes
// them on every write.
type tradeRequest struct {
	Symbol       string   `json:"symbol"`
	PositionType string   `json:"positionType"`
	EntryPrice   float64  `json:"entryPrice"`
	ExitPrice    float64  `json:"exitPrice"`
	PositionSize float64  `json:"positionSize"`
	Leverage     float64  `json:"leverage"`
	StopLoss     *float64 `json:"stopLoss"`
	TakeProfit   *float64 `json:"takeProfit"`
}

func (req tradeRequest) toInput() journal.Input {
	return journal.Input{
		Symbol:       req.Symbol,
		PositionType: req.PositionType,
		EntryPrice:   req.EntryPrice,
		ExitPrice:    req.ExitPrice,
		PositionSize: req.PositionSize,
		Leverage:     req.Leverage,
		StopLoss:     req.StopLoss,
		TakeProfit:   req.TakeProfit,
	}
}

func decodeTradeRequest(w http.ResponseWriter, r *http.Request) (*tradeRequest, bool) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}

	if err := journal.Validate(req.toInput()); err != nil {
		var verr *journal.ValidationError
		if errors.As(err, &verr) {
			writeFieldError(w, verr.Field, verr.Message)
		} else {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return nil, false
	}

	return &req, true
}

// AddTradeHandler records a new trade. Derived fields are computed
// server-side and the full stored trade is returned.
func AddTradeHandler(repo tradeCreator, caches invalidator, feeRate float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeTradeRequest(w, r)
		if !ok {
			return
		}

		trade := &model.Trade{
			Symbol:       req.Symbol,
			PositionType: req.PositionType,
			EntryPrice:   req.EntryPrice,
			ExitPrice:    req.ExitPrice,
			PositionSize: req.PositionSize,
			Leverage:     req.Leverage,
			StopLoss:     req.StopLoss,
			TakeProfit:   req.TakeProfit,
			Date:         time.Now(),
		}
		journal.Apply(trade, feeRate)

		if err := repo.Create(r.Context(), trade); err != nil {
			Capture(r.Context(), DefaultExceptionWriter(), "handler", "AddTradeHandler", "error", err, map[string]interface{}{
				"symbol": trade.Symbol,
			})
			writeError(w, http.StatusInternalServerError, "failed to store trade")
			return
		}

		caches.Clear()

		logger.WithFields(map[string]interface{}{
			"handler":  "AddTradeHandler",
			"trade_id": trade.ID,
			"symbol":   trade.Symbol,
			"pnl":      trade.Pnl,
		}).Info("Trade recorded")

		writeJSON(w, http.StatusCreated, trade)
	}
}

// UpdateTradeHandler replaces the user-entered fields of an existing
// trade and recomputes everything derived. The original Date survives
// the edit so time-scoped stats stay stable.
func UpdateTradeHandler(repo tradeUpdater, caches invalidator, feeRate float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := tradeID(w, r)
		if !ok {
			return
		}

		req, ok := decodeTradeRequest(w, r)
		if !ok {
			return
		}

		trade, err := repo.FindByID(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load trade")
			return
		}
		if trade == nil {
			writeError(w, http.StatusNotFound, "trade not found")
			return
		}

		trade.Symbol = req.Symbol
		trade.PositionType = req.PositionType
		trade.EntryPrice = req.EntryPrice
		trade.ExitPrice = req.ExitPrice
		trade.PositionSize = req.PositionSize
		trade.Leverage = req.Leverage
		trade.StopLoss = req.StopLoss
		trade.TakeProfit = req.TakeProfit
		journal.Apply(trade, feeRate)

		if err := repo.Update(r.Context(), trade); err != nil {
			Capture(r.Context(), DefaultExceptionWriter(), "handler", "UpdateTradeHandler", "error", err, map[string]interface{}{
				"trade_id": id,
			})
			writeError(w, http.StatusInternalServerError, "failed to update trade")
			return
		}

		caches.Clear()

		logger.WithFields(map[string]interface{}{
			"handler":  "UpdateTradeHandler",
			"trade_id": trade.ID,
		}).Info("Trade updated")

		writeJSON(w, http.StatusOK, trade)
	}
}

// DeleteTradeHandler removes a trade by ID. Unknown IDs get a 404 and
// leave the journal untouched.
func DeleteTradeHandler(repo tradeDeleter, caches invalidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := tradeID(w, r)
		if !ok {
			return
		}

		deleted, err := repo.DeleteByID(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to delete trade")
			return
		}
		if !deleted {
			writeError(w, http.StatusNotFound, "trade not found")
			return
		}

		caches.Clear()

		logger.WithFields(map[string]interface{}{
			"handler":  "DeleteTradeHandler",
			"trade_id": id,
		}).Info("Trade deleted")

		writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": id})
	}
}

func tradeID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "invalid trade id")
		return 0, false
	}
	return uint(id), true
}

// DefaultAddTradeHandler wires the production repository and fee config.
func DefaultAddTradeHandler(caches *cache.TTLCache) http.HandlerFunc {
	return AddTradeHandler(repository.NewTradeRepository(), caches, journal.GetConfig().FeeRate)
}

// DefaultUpdateTradeHandler wires the production repository and fee config.
func DefaultUpdateTradeHandler(caches *cache.TTLCache) http.HandlerFunc {
	return UpdateTradeHandler(repository.NewTradeRepository(), caches, journal.GetConfig().FeeRate)
}

// DefaultDeleteTradeHandler wires the production repository.
func DefaultDeleteTradeHandler(caches *cache.TTLCache) http.HandlerFunc {
	return DeleteTradeHandler(repository.NewTradeRepository(), caches)
}
