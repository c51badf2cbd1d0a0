package matrix

import (
	"context"
	"delivery-itinerary-service/internal/domain"
	"delivery-itinerary-service/internal/ports"
	"errors"

	"github.com/rs/zerolog"
)

// Fallback uses Secondary when Primary reports domain.ErrServiceUnavailable.
// Other failures, including cancellation, are returned as-is.
type Fallback struct {
	Primary   ports.MatrixBuilder
	Secondary ports.MatrixBuilder
}

func NewFallback(primary, secondary ports.MatrixBuilder) *Fallback {
	return &Fallback{Primary: primary, Secondary: secondary}
}

func (f *Fallback) Build(ctx context.Context, locations []domain.Location) (domain.Matrices, error) {
	m, err := f.Primary.Build(ctx, locations)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, domain.ErrServiceUnavailable) || f.Secondary == nil {
		return domain.Matrices{}, err
	}

	zerolog.Ctx(ctx).Warn().
		Err(err).
		Int("locations", len(locations)).
		Msg("primary matrix builder unavailable, falling back")

	return f.Secondary.Build(ctx, locations)
}
