package matrix

import (
	"context"
	"crypto/sha256"
	"delivery-itinerary-service/internal/domain"
	"delivery-itinerary-service/internal/ports"
	"encoding/hex"
	"strconv"

	"github.com/rs/zerolog"
)

// Cached serves matrices from a persistent cache before delegating.
// Cache failures are logged and never fail a build.
type Cached struct {
	next  ports.NamedMatrixBuilder
	cache ports.MatrixCache
}

func NewCached(next ports.NamedMatrixBuilder, cache ports.MatrixCache) *Cached {
	return &Cached{next: next, cache: cache}
}

func (c *Cached) Name() string { return c.next.Name() }

func (c *Cached) Build(ctx context.Context, locations []domain.Location) (domain.Matrices, error) {
	if c.cache == nil {
		return c.next.Build(ctx, locations)
	}

	logger := zerolog.Ctx(ctx)
	key := CacheKey(c.next.Name(), locations)

	m, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("matrix cache read failed")
	}
	if ok && m.Distance.Size() == len(locations) && m.Time.Size() == len(locations) {
		logger.Debug().Str("key", key).Msg("matrix cache hit")
		return m, nil
	}

	m, err = c.next.Build(ctx, locations)
	if err != nil {
		return domain.Matrices{}, err
	}

	if err := c.cache.Put(ctx, key, m); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("matrix cache write failed")
	}

	return m, nil
}

// CacheKey hashes the strategy name and the ordered coordinate list.
func CacheKey(name string, locations []domain.Location) string {
	h := sha256.New()
	h.Write([]byte(name))
	for _, l := range locations {
		h.Write([]byte{'|'})
		h.Write([]byte(strconv.FormatFloat(l.Coord.Lat, 'f', 6, 64)))
		h.Write([]byte{','})
		h.Write([]byte(strconv.FormatFloat(l.Coord.Lon, 'f', 6, 64)))
	}
	return hex.EncodeToString(h.Sum(nil))
}
