package ports

import (
	"context"
	"delivery-itinerary-service/internal/domain"
)

// Contract for fetching road geometry between two points.
type LegRouter interface {
	Route(ctx context.Context, from, to domain.Coordinates) (*domain.LegRoute, error)
}
