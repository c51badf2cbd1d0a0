package dto

import (
	"delivery-itinerary-service/internal/domain"
	"delivery-itinerary-service/internal/services"
)

type MatrixRequest struct {
	Locations []domain.Location `json:"locations"`
	Strategy  string            `json:"strategy"`
}

type MatrixResponse struct {
	Strategy string      `json:"strategy"`
	Distance [][]float64 `json:"distance"`
	Time     [][]float64 `json:"time"`
}

// SummaryRequest carries one optimizer result. When Distance and Time are
// both given they are used as-is instead of building matrices.
type SummaryRequest struct {
	Status       int                `json:"status"`
	Stops        []domain.RouteStop `json:"stops"`
	DepotCount   *int               `json:"depot_count"`
	Strategy     string             `json:"strategy"`
	Distance     [][]float64        `json:"distance"`
	Time         [][]float64        `json:"time"`
	WithGeometry bool               `json:"with_geometry"`
}

type SummaryResponse struct {
	Summary *services.Summary `json:"summary"`
}

type MapRecordsResponse struct {
	RunID   string             `json:"run_id"`
	Records []domain.MapRecord `json:"records"`
}
