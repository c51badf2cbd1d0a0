package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Matrix    MatrixConfig
	Itinerary ItineraryConfig
}

// Load reads the process environment; call godotenv.Load first to pick up .env files.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Port      string `envconfig:"PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

type DBConfig struct {
	Driver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"DB_DSN" default:"data/app.db"`
}

type RedisConfig struct {
	URL string `envconfig:"REDIS_URL"`
}

const (
	StrategyHaversine = "haversine"
	StrategyOSRM      = "osrm"

	CacheNone  = "none"
	CacheRedis = "redis"
	CacheSQL   = "sql"
)

type MatrixConfig struct {
	Strategy    string        `envconfig:"MATRIX_STRATEGY" default:"haversine"`
	AvgSpeed    float64       `envconfig:"MATRIX_AVG_SPEED" default:"35"`
	OSRMBaseURL string        `envconfig:"OSRM_BASE_URL" default:"http://router.project-osrm.org"`
	OSRMProfile string        `envconfig:"OSRM_PROFILE" default:"car"`
	OSRMTimeout time.Duration `envconfig:"OSRM_TIMEOUT" default:"10s"`
	OSRMRetries int           `envconfig:"OSRM_MAX_RETRIES" default:"3"`
	Fallback    bool          `envconfig:"MATRIX_FALLBACK" default:"true"`
	Cache       string        `envconfig:"MATRIX_CACHE" default:"none"`
	CacheTTL    time.Duration `envconfig:"MATRIX_CACHE_TTL" default:"24h"`
}

type ItineraryConfig struct {
	ReferenceDate string `envconfig:"ITINERARY_REFERENCE_DATE" default:"2022-04-26"`
	TimeLayout    string `envconfig:"ITINERARY_TIME_LAYOUT" default:"2006-01-02T15:04:05Z"`
	DepotCount    int    `envconfig:"ITINERARY_DEPOT_COUNT" default:"1"`
	Workers       int    `envconfig:"ITINERARY_WORKERS" default:"8"`
}

func (c *Config) validate() error {
	c.Matrix.Strategy = strings.ToLower(strings.TrimSpace(c.Matrix.Strategy))
	c.Matrix.Cache = strings.ToLower(strings.TrimSpace(c.Matrix.Cache))

	switch c.Matrix.Strategy {
	case StrategyHaversine, StrategyOSRM:
	default:
		return fmt.Errorf("config: MATRIX_STRATEGY must be %q or %q, got %q", StrategyHaversine, StrategyOSRM, c.Matrix.Strategy)
	}

	switch c.Matrix.Cache {
	case CacheNone, CacheSQL:
	case CacheRedis:
		if strings.TrimSpace(c.Redis.URL) == "" {
			return fmt.Errorf("config: REDIS_URL is required when MATRIX_CACHE=redis")
		}
	default:
		return fmt.Errorf("config: unknown MATRIX_CACHE %q", c.Matrix.Cache)
	}

	if c.Matrix.AvgSpeed <= 0 {
		return fmt.Errorf("config: MATRIX_AVG_SPEED must be positive, got %v", c.Matrix.AvgSpeed)
	}
	if c.Itinerary.DepotCount < 0 {
		return fmt.Errorf("config: ITINERARY_DEPOT_COUNT must not be negative")
	}
	if c.Itinerary.Workers < 1 {
		c.Itinerary.Workers = 1
	}

	return nil
}

// Get returns the value of the given environment variable or a fallback.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
