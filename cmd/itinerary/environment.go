package main

import (
	"context"
	"database/sql"
	"delivery-itinerary-service/internal/adapters/csvtable"
	"delivery-itinerary-service/internal/adapters/repositories"
	"delivery-itinerary-service/internal/app"
	"delivery-itinerary-service/internal/config"
	"delivery-itinerary-service/internal/platform/db"
	"delivery-itinerary-service/internal/platform/logger"
	"delivery-itinerary-service/internal/ports"
	"delivery-itinerary-service/internal/services"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

// environment holds what every command shares once configuration is loaded.
type environment struct {
	cfg        *config.Config
	ctx        context.Context
	matrices   *app.Matrix
	aggregator *services.Aggregator
	conn       *sql.DB
}

func (e *environment) setup(c *cli.Context) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	e.cfg = cfg

	// Results go to stdout; logs go to stderr.
	l := logger.Setup("itinerary-cli", cfg.App.LogLevel, cfg.App.LogFormat, c.App.ErrWriter)
	e.ctx = l.WithContext(c.Context)

	if cfg.Matrix.Cache == config.CacheSQL {
		e.conn, err = db.Open(cfg.DB.Driver, cfg.DB.DSN)
		if err != nil {
			return err
		}
		if err := repositories.InitSchema(e.ctx, e.conn); err != nil {
			return err
		}
	}

	e.matrices, err = app.NewMatrix(e.ctx, cfg.Matrix, cfg.Redis.URL, e.conn)
	if err != nil {
		return err
	}

	e.aggregator, err = app.NewAggregator(cfg.Itinerary)
	return err
}

func (e *environment) close(*cli.Context) error {
	var err error
	if e.matrices != nil {
		err = multierr.Append(err, e.matrices.Close())
	}
	if e.conn != nil {
		err = multierr.Append(err, e.conn.Close())
	}
	return err
}

func (e *environment) builder(strategy string) (ports.MatrixBuilder, error) {
	name := strings.ToLower(strings.TrimSpace(strategy))
	if name == "" {
		return e.matrices.DefaultBuilder(), nil
	}
	b, ok := e.matrices.Builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
	return b, nil
}

func (e *environment) pipeline(c *cli.Context) (*services.Pipeline, error) {
	b, err := e.builder(c.String("strategy"))
	if err != nil {
		return nil, err
	}

	depots := e.cfg.Itinerary.DepotCount
	if c.IsSet("depot-count") {
		depots = c.Int("depot-count")
	}

	tables := csvtable.NewFileRepository(c.String("orders"), c.String("vehicles"))
	return &services.Pipeline{
		Orders:     tables,
		Vehicles:   tables,
		Builder:    b,
		Aggregator: e.aggregator,
		DepotCount: &depots,
	}, nil
}
