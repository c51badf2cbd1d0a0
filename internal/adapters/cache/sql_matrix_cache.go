package cache

import (
	"context"
	"database/sql"
	"delivery-itinerary-service/internal/domain"
	"delivery-itinerary-service/internal/platform/obs"
	"errors"
	"fmt"
	"strings"
)

// SQLMatrixCache is a SQL-backed cache of built matrices keyed by location-set hash.
// The queries use $n placeholders, which both Postgres and SQLite accept.
type SQLMatrixCache struct {
	DB *sql.DB
}

func NewSQLMatrixCache(db *sql.DB) *SQLMatrixCache {
	return &SQLMatrixCache{DB: db}
}

// Fetch cached matrices for one location-set key.
func (s *SQLMatrixCache) Get(ctx context.Context, key string) (_ domain.Matrices, _ bool, err error) {
	defer obs.Time(ctx, "matrix.cache.Get")(&err)

	if s.DB == nil {
		return domain.Matrices{}, false, errors.New("matrix cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return domain.Matrices{}, false, errors.New("get matrix cache: key must not be empty")
	}

	q := `
	SELECT payload
    FROM matrix_cache
    WHERE cache_key = $1;
	`

	var payload string
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Matrices{}, false, nil
	}
	if err != nil {
		return domain.Matrices{}, false, fmt.Errorf("get matrix cache: query matrix_cache table: %w", err)
	}

	m, err := decodeMatrices([]byte(payload))
	if err != nil {
		return domain.Matrices{}, false, fmt.Errorf("get matrix cache key=%q: %w", key, err)
	}

	return m, true, nil
}

// Store the matrices for one location-set key, replacing any previous entry.
func (s *SQLMatrixCache) Put(ctx context.Context, key string, m domain.Matrices) error {
	if s.DB == nil {
		return errors.New("matrix cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert matrix cache: key must not be empty")
	}

	payload, err := encodeMatrices(m)
	if err != nil {
		return fmt.Errorf("insert matrix cache: %w", err)
	}

	q := `
	INSERT INTO matrix_cache (cache_key, size, payload)
    VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET size = EXCLUDED.size,
		payload = EXCLUDED.payload;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, m.Distance.Size(), string(payload)); err != nil {
		return fmt.Errorf("insert matrix cache key=%q: %w", key, err)
	}

	return nil
}
