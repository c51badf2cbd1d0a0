package ports

import (
	"context"
	"delivery-itinerary-service/internal/domain"
)

// Contract for building distance and time matrices over a location set.
// Index i of each matrix refers to locations[i].
type MatrixBuilder interface {
	Build(ctx context.Context, locations []domain.Location) (domain.Matrices, error)
}

// Optional extension implemented by builders that can be cached.
// The name keys the cache so matrices from different strategies never mix.
type NamedMatrixBuilder interface {
	MatrixBuilder
	Name() string
}
