package services

import (
	"context"
	"delivery-itinerary-service/internal/domain"
	"delivery-itinerary-service/internal/ports"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Pipeline loads the master tables, builds matrices and aggregates one solve.
// A nil DepotCount falls back to DefaultDepotCount.
type Pipeline struct {
	Orders     ports.OrderRepository
	Vehicles   ports.VehicleRepository
	Builder    ports.MatrixBuilder
	Aggregator *Aggregator
	DepotCount *int
}

// Tables is everything a solve is evaluated against.
type Tables struct {
	Orders    []domain.Order
	Vehicles  []domain.Vehicle
	Locations []domain.Location
	Matrices  domain.Matrices
}

// LoadTables reads both master tables and builds matrices over the order locations.
// Any failure aborts the run.
func (p *Pipeline) LoadTables(ctx context.Context) (*Tables, error) {
	orders, err := p.Orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tables: list orders: %w", err)
	}

	vehicles, err := p.Vehicles.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tables: list vehicles: %w", err)
	}

	locations, err := LocationsFromOrders(orders)
	if err != nil {
		return nil, fmt.Errorf("load tables: %w", err)
	}

	m, err := p.Builder.Build(ctx, locations)
	if err != nil {
		return nil, fmt.Errorf("load tables: build matrices: %w", err)
	}

	return &Tables{Orders: orders, Vehicles: vehicles, Locations: locations, Matrices: m}, nil
}

// Run evaluates one optimizer assignment end to end under a fresh run id.
func (p *Pipeline) Run(ctx context.Context, assignment domain.RouteAssignment) (*Summary, error) {
	runID := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().Str("run_id", runID).Logger()
	ctx = logger.WithContext(ctx)

	tables, err := p.LoadTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	s, err := p.Aggregator.Aggregate(ctx, AggregateInput{
		Assignment: assignment,
		Orders:     tables.Orders,
		Vehicles:   tables.Vehicles,
		Matrices:   tables.Matrices,
		DepotCount: p.DepotCount,
	})
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	s.RunID = runID

	logger.Info().
		Int("assigned", s.AssignedCount).
		Int("unassigned", s.UnassignedCount).
		Int("vehicles_used", s.VehiclesUsed).
		Int("failures", len(s.Failures)).
		Bool("infeasible", s.Infeasible).
		Msg("itinerary run complete")

	return s, nil
}

// LocationsFromOrders derives the matrix location list from the order table.
// Order locations must be unique and cover 0..n-1.
func LocationsFromOrders(orders []domain.Order) ([]domain.Location, error) {
	sorted := make([]domain.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Location < sorted[j].Location })

	locations := make([]domain.Location, 0, len(sorted))
	for i, o := range sorted {
		if o.Location != i {
			return nil, fmt.Errorf("%w: order locations must be contiguous from 0; order_id=%d has location %d at position %d",
				domain.ErrDataIntegrity, o.OrderID, o.Location, i)
		}
		locations = append(locations, domain.Location{Index: o.Location, Coord: o.Coord})
	}
	return locations, nil
}
