package matrix

import (
	"context"
	"delivery-itinerary-service/internal/domain"
	"errors"
	"fmt"
)

// ErrSizeMismatch is returned when fixed matrices do not cover the requested locations.
var ErrSizeMismatch = errors.New("matrix size mismatch")

// Static returns fixed matrices regardless of coordinates.
// It is used when the caller already holds matrices, and in tests.
type Static struct {
	m domain.Matrices
}

func NewStatic(distance, time [][]float64) (*Static, error) {
	d, err := domain.MatrixFromRows(distance)
	if err != nil {
		return nil, fmt.Errorf("static distance: %w", err)
	}
	t, err := domain.MatrixFromRows(time)
	if err != nil {
		return nil, fmt.Errorf("static time: %w", err)
	}
	if d.Size() != t.Size() {
		return nil, fmt.Errorf("static matrices differ in size: distance=%d time=%d", d.Size(), t.Size())
	}
	return &Static{m: domain.Matrices{Distance: d, Time: t}}, nil
}

func (s *Static) Name() string { return "static" }

func (s *Static) Build(ctx context.Context, locations []domain.Location) (domain.Matrices, error) {
	if len(locations) != s.m.Distance.Size() {
		return domain.Matrices{}, fmt.Errorf("static build: %d locations for %dx%d matrices: %w",
			len(locations), s.m.Distance.Size(), s.m.Distance.Size(), ErrSizeMismatch)
	}
	return s.m, nil
}
