package handlers

import (
	"context"
	"delivery-itinerary-service/internal/adapters/matrix"
	"delivery-itinerary-service/internal/api/dto"
	"delivery-itinerary-service/internal/domain"
	"delivery-itinerary-service/internal/ports"
	"delivery-itinerary-service/internal/services"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

const maxLocations = 1000

// ItineraryHandler evaluates optimizer results against the master tables.
// Builders maps a strategy name to the builder serving it.
type ItineraryHandler struct {
	Orders          ports.OrderRepository
	Vehicles        ports.VehicleRepository
	Builders        map[string]ports.MatrixBuilder
	DefaultStrategy string
	Aggregator      *services.Aggregator
	Router          ports.LegRouter
	DepotCount      int
	Workers         int
}

func (h *ItineraryHandler) builder(strategy string) (string, ports.MatrixBuilder, error) {
	name := strings.ToLower(strings.TrimSpace(strategy))
	if name == "" {
		name = h.DefaultStrategy
	}
	b, ok := h.Builders[name]
	if !ok {
		known := make([]string, 0, len(h.Builders))
		for k := range h.Builders {
			known = append(known, k)
		}
		sort.Strings(known)
		return "", nil, fmt.Errorf("%w: unknown strategy %q (known: %s)", errValidation, name, strings.Join(known, ", "))
	}
	return name, b, nil
}

// Matrices builds distance and time matrices for the posted locations.
func (h *ItineraryHandler) Matrices(w http.ResponseWriter, r *http.Request) {
	var req dto.MatrixRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.Locations) == 0 || len(req.Locations) > maxLocations {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("locations must contain between 1 and %d entries", maxLocations))
		return
	}
	for i, l := range req.Locations {
		if l.Index != i {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("locations[%d] has index %d, want %d", i, l.Index, i))
			return
		}
	}

	name, b, err := h.builder(req.Strategy)
	if err != nil {
		writeServiceError(w, r, "build matrices", err)
		return
	}

	m, err := b.Build(r.Context(), req.Locations)
	if err != nil {
		writeServiceError(w, r, "build matrices", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.MatrixResponse{
		Strategy: name,
		Distance: m.Distance.Rows(),
		Time:     m.Time.Rows(),
	})
}

// Summaries aggregates one optimizer result.
func (h *ItineraryHandler) Summaries(w http.ResponseWriter, r *http.Request) {
	var req dto.SummaryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.run(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "summarize", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SummaryResponse{Summary: s})
}

// MapRecords aggregates one optimizer result and flattens it into travel legs,
// optionally with road geometry per leg.
func (h *ItineraryHandler) MapRecords(w http.ResponseWriter, r *http.Request) {
	var req dto.SummaryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.WithGeometry && h.Router == nil {
		writeError(w, r, http.StatusBadRequest, "with_geometry requires a road-routing service")
		return
	}

	s, err := h.run(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "map records", err)
		return
	}

	records := services.Flatten(s.Itineraries)
	if req.WithGeometry {
		records, err = services.AttachLegRoutes(r.Context(), h.Router, records, h.Workers)
		if err != nil {
			writeServiceError(w, r, "map records", err)
			return
		}
	}

	writeJSON(w, r, http.StatusOK, dto.MapRecordsResponse{RunID: s.RunID, Records: records})
}

func (h *ItineraryHandler) run(ctx context.Context, req dto.SummaryRequest) (*services.Summary, error) {
	depots := h.DepotCount
	if req.DepotCount != nil {
		depots = *req.DepotCount
	}
	if depots < 0 {
		return nil, fmt.Errorf("%w: depot_count must be >= 0", errValidation)
	}

	var b ports.MatrixBuilder
	switch {
	case req.Distance != nil || req.Time != nil:
		static, err := matrix.NewStatic(req.Distance, req.Time)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errValidation, err)
		}
		b = static
	default:
		_, named, err := h.builder(req.Strategy)
		if err != nil {
			return nil, err
		}
		b = named
	}

	p := &services.Pipeline{
		Orders:     h.Orders,
		Vehicles:   h.Vehicles,
		Builder:    b,
		Aggregator: h.Aggregator,
		DepotCount: &depots,
	}
	s, err := p.Run(ctx, domain.RouteAssignment{Status: req.Status, Stops: req.Stops})
	if errors.Is(err, matrix.ErrSizeMismatch) {
		return nil, fmt.Errorf("%w: distance and time must match the order table: %v", errValidation, err)
	}
	return s, err
}
