package handler

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/market"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The demo pages are served from arbitrary local origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type tick struct {
	Symbol string    `json:"symbol"`
	Price  float64   `json:"price"`
	Mock   bool      `json:"mock"`
	Time   time.Time `json:"time"`
}

// TickerHandler streams a simulated price feed over a websocket for the
// breakout demo page. Ticks random-walk around the symbol's mock base
// price; the connection closes when the client goes away.
func TickerHandler(interval time.Duration) http.HandlerFunc {
	if interval <= 0 {
		interval = time.Second
	}

	return func(w http.ResponseWriter, r *http.Request) {
		symbol := querySymbol(r, "BTC")

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.WithError(err).Warn("Websocket upgrade failed")
			return
		}
		defer conn.Close()

		logger.WithFields(map[string]interface{}{
			"handler": "TickerHandler",
			"symbol":  symbol,
			"remote":  r.RemoteAddr,
		}).Debug("Ticker stream opened")

		// Discard inbound frames so close messages are processed.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		price := market.MockSnapshot(symbol).Price

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case now := <-ticker.C:
				price *= 1 + (rng.Float64()-0.5)*0.002

				err := conn.WriteJSON(tick{
					Symbol: symbol,
					Price:  price,
					Mock:   true,
					Time:   now.UTC(),
				})
				if err != nil {
					logger.WithError(err).Debug("Ticker stream closed")
					return
				}
			}
		}
	}
}
