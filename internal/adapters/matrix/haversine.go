package matrix

import (
	"context"
	"delivery-itinerary-service/internal/domain"
	"fmt"
	"math"
	"strconv"
)

const (
	// EarthRadiusKm is the sphere radius used for great-circle distances.
	EarthRadiusKm = 6367.0
	// DefaultAvgSpeed converts kilometres to minutes when no speed is configured.
	DefaultAvgSpeed = 35.0
)

// Haversine builds matrices from great-circle geometry.
// The distance matrix is symmetric with a zero diagonal.
type Haversine struct {
	AvgSpeed float64
}

func NewHaversine(avgSpeed float64) *Haversine {
	if avgSpeed <= 0 {
		avgSpeed = DefaultAvgSpeed
	}
	return &Haversine{AvgSpeed: avgSpeed}
}

func (h *Haversine) Name() string {
	return "haversine:" + strconv.FormatFloat(h.AvgSpeed, 'f', -1, 64)
}

func (h *Haversine) Build(ctx context.Context, locations []domain.Location) (domain.Matrices, error) {
	if err := ctx.Err(); err != nil {
		return domain.Matrices{}, err
	}

	if h.AvgSpeed <= 0 {
		return domain.Matrices{}, fmt.Errorf("haversine build: average speed must be positive, got %v", h.AvgSpeed)
	}

	n := len(locations)
	dist := domain.NewMatrix(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := DistanceKm(locations[i].Coord, locations[j].Coord)
			dist.Set(i, j, d)
			dist.Set(j, i, d)
		}
	}

	return domain.Matrices{
		Distance: dist,
		Time:     TimeFromDistance(dist, h.AvgSpeed),
	}, nil
}

// DistanceKm is the haversine great-circle distance between two points.
func DistanceKm(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

// TimeFromDistance derives travel minutes as distance / avgSpeed * 60.
func TimeFromDistance(distance domain.Matrix, avgSpeed float64) domain.Matrix {
	return distance.Map(func(d float64) float64 {
		return d / avgSpeed * 60
	})
}
