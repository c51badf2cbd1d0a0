package main

import (
	"context"
	"delivery-itinerary-service/internal/adapters/repositories"
	"delivery-itinerary-service/internal/api"
	"delivery-itinerary-service/internal/api/handlers"
	"delivery-itinerary-service/internal/app"
	"delivery-itinerary-service/internal/config"
	"delivery-itinerary-service/internal/platform/db"
	"delivery-itinerary-service/internal/platform/logger"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// main is the application composition root.
// It wires concrete adapters (SQL tables, OSRM, caches) behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	l := logger.Setup("itinerary-api", cfg.App.LogLevel, cfg.App.LogFormat, os.Stdout)
	if envErr != nil {
		l.Info().Msg("no .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = l.WithContext(ctx)

	conn, err := db.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		l.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	// Schema creation is idempotent; seeding is left to cmd/dbtool.
	if err := repositories.InitSchema(ctx, conn); err != nil {
		l.Fatal().Err(err).Msg("init schema")
	}

	matrices, err := app.NewMatrix(ctx, cfg.Matrix, cfg.Redis.URL, conn)
	if err != nil {
		l.Fatal().Err(err).Msg("matrix builders")
	}
	defer matrices.Close()

	aggregator, err := app.NewAggregator(cfg.Itinerary)
	if err != nil {
		l.Fatal().Err(err).Msg("aggregator")
	}

	repo := repositories.NewSQLMasterRepository(conn)
	router := api.NewRouter(l,
		&handlers.MasterHandler{Orders: repo, Vehicles: repo},
		&handlers.ItineraryHandler{
			Orders:          repo,
			Vehicles:        repo,
			Builders:        matrices.Builders,
			DefaultStrategy: matrices.Default,
			Aggregator:      aggregator,
			Router:          matrices.Router,
			DepotCount:      cfg.Itinerary.DepotCount,
			Workers:         cfg.Itinerary.Workers,
		},
	)

	// Write timeout covers a cold road-service table request plus retries.
	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Error().Err(err).Msg("shutdown")
		}
	}()

	l.Info().
		Str("addr", srv.Addr).
		Str("strategy", matrices.Default).
		Str("cache", cfg.Matrix.Cache).
		Str("db_driver", cfg.DB.Driver).
		Msg("server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Fatal().Err(err).Msg("listen")
	}
}
