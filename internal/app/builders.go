// Package app assembles the adapters shared by the binaries.
package app

import (
	"context"
	"database/sql"
	"delivery-itinerary-service/internal/adapters/cache"
	"delivery-itinerary-service/internal/adapters/matrix"
	"delivery-itinerary-service/internal/config"
	"delivery-itinerary-service/internal/ports"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

const osrmInitialBackoff = 500 * time.Millisecond

// Matrix holds the builders available to a process, keyed by strategy name.
// Router is the road-service client used for leg geometry.
type Matrix struct {
	Builders map[string]ports.MatrixBuilder
	Default  string
	Router   *matrix.OSRM

	closers []func() error
}

// DefaultBuilder returns the builder for the configured strategy.
func (m *Matrix) DefaultBuilder() ports.MatrixBuilder {
	return m.Builders[m.Default]
}

func (m *Matrix) Close() error {
	var err error
	for _, c := range m.closers {
		err = multierr.Append(err, c())
	}
	return err
}

// NewMatrix builds both strategies. The road-service builder is wrapped in the
// configured cache and, when enabled, falls back to the geometric builder.
// db is only required for the SQL cache backend.
func NewMatrix(ctx context.Context, cfg config.MatrixConfig, redisURL string, db *sql.DB) (*Matrix, error) {
	m := &Matrix{Builders: map[string]ports.MatrixBuilder{}, Default: cfg.Strategy}

	haversine := matrix.NewHaversine(cfg.AvgSpeed)
	m.Builders[config.StrategyHaversine] = haversine

	osrm, err := matrix.NewOSRM(cfg.OSRMBaseURL,
		matrix.WithTimeout(cfg.OSRMTimeout),
		matrix.WithProfile(cfg.OSRMProfile),
		matrix.WithRetry(cfg.OSRMRetries, osrmInitialBackoff),
	)
	if err != nil {
		return nil, fmt.Errorf("new matrix: %w", err)
	}
	m.Router = osrm

	var road ports.MatrixBuilder = osrm
	switch cfg.Cache {
	case config.CacheSQL:
		if db == nil {
			return nil, errors.New("new matrix: sql cache requires a database")
		}
		road = matrix.NewCached(osrm, cache.NewSQLMatrixCache(db))
	case config.CacheRedis:
		client, err := cache.NewRedisClient(ctx, redisURL)
		if err != nil {
			return nil, fmt.Errorf("new matrix: %w", err)
		}
		m.closers = append(m.closers, client.Close)
		road = matrix.NewCached(osrm, cache.NewRedisMatrixCache(client, cfg.CacheTTL))
	}

	if cfg.Fallback {
		road = matrix.NewFallback(road, haversine)
	}
	m.Builders[config.StrategyOSRM] = road

	if _, ok := m.Builders[m.Default]; !ok {
		_ = m.Close()
		return nil, fmt.Errorf("new matrix: unknown strategy %q", m.Default)
	}

	return m, nil
}
