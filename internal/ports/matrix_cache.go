package ports

import (
	"context"
	"delivery-itinerary-service/internal/domain"
)

// Persistent store for previously built matrices.
type MatrixCache interface {
	// Return the cached matrices for key; ok is false on a miss.
	Get(ctx context.Context, key string) (m domain.Matrices, ok bool, err error)
	Put(ctx context.Context, key string, m domain.Matrices) error
}
