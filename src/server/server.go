package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/cache"
	"tradejournal/src/handler"
)

// StartServer builds the router, starts serving, and blocks until
// SIGINT or SIGTERM triggers a graceful shutdown.
func StartServer(port string) {
	config := GetConfig()
	cacheConfig := cache.GetConfig()

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()

	caches := cache.New(cacheConfig.MaxSize, cacheConfig.TTL)
	caches.StartJanitor(janitorCtx, cacheConfig.JanitorInterval)

	metrics := NewMetrics()

	r := chi.NewRouter()

	// === Global Middleware ===
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(Timing(metrics))
	r.Use(CORS(config.CORSAllowedOrigins))

	// Public routes
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error("\"/healthcheck\" error")
		}
	})

	r.Get("/", serviceInfoHandler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/add_trade", handler.DefaultAddTradeHandler(caches))
		r.Put("/update_trade/{id}", handler.DefaultUpdateTradeHandler(caches))
		r.Delete("/delete_trade/{id}", handler.DefaultDeleteTradeHandler(caches))
		r.Get("/stats", handler.DefaultStatsHandler(caches))
		r.Get("/cache-stats", handler.CacheStatsHandler(caches))
		r.Get("/performance", performanceHandler(metrics))

		r.Get("/market-prediction", handler.DefaultMarketPredictionHandler(caches))
		r.Get("/prediction-history", handler.DefaultPredictionHistoryHandler())
		r.Get("/breakout", handler.DefaultBreakoutHandler(caches))
		r.Get("/ws/ticker", handler.TickerHandler(config.TickerInterval))
	})

	// Server setup
	addr := ":" + port
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	// Shutdown on SIGINT or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}

func serviceInfoHandler() http.HandlerFunc {
	info := map[string]interface{}{
		"message": "Trade Journal API",
		"service": "tradejournal",
		"status":  "running",
		"endpoints": []string{
			"GET /healthcheck",
			"POST /api/add_trade",
			"PUT /api/update_trade/{id}",
			"DELETE /api/delete_trade/{id}",
			"GET /api/stats",
			"GET /api/cache-stats",
			"GET /api/performance",
			"GET /api/market-prediction",
			"GET /api/prediction-history",
			"GET /api/breakout",
			"GET /api/ws/ticker",
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(info); err != nil {
			logger.WithError(err).Error("\"/\" error")
		}
	}
}

func performanceHandler(metrics *Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(metrics.Snapshot()); err != nil {
			logger.WithError(err).Error("failed to encode performance report")
		}
	}
}
