package main

import (
	"context"
	"database/sql"
	"delivery-itinerary-service/internal/adapters/csvtable"
	"delivery-itinerary-service/internal/adapters/repositories"
	"delivery-itinerary-service/internal/config"
	"delivery-itinerary-service/internal/platform/db"
	"delivery-itinerary-service/internal/platform/logger"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	l := logger.Setup("itinerary-dbtool", cfg.App.LogLevel, cfg.App.LogFormat, os.Stdout)
	if envErr != nil {
		l.Info().Msg("no .env file found (using environment variables)")
	}
	ctx := l.WithContext(context.Background())

	conn, err := db.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		l.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	ordersPath := config.Get("SEED_ORDERS_PATH", "data/seeds/orders.csv")
	vehiclesPath := config.Get("SEED_VEHICLES_PATH", "data/seeds/vehicles.csv")
	if err := initAndSeed(ctx, conn, ordersPath, vehiclesPath); err != nil {
		l.Fatal().Err(err).Msg("dbtool failed")
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, ordersPath, vehiclesPath string) error {
	l := zerolog.Ctx(ctx)

	l.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	l.Info().Msg("schema ready")

	// A bad row aborts seeding so the tables never hold a partial order set.
	tables := csvtable.NewFileRepository(ordersPath, vehiclesPath)
	orders, err := tables.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	vehicles, err := tables.ListVehicles(ctx)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	if err := repositories.SeedOrders(ctx, conn, orders); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	if err := repositories.SeedVehicles(ctx, conn, vehicles); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	l.Info().Int("orders", len(orders)).Int("vehicles", len(vehicles)).Msg("seeding complete")

	return nil
}
