package services

import (
	"context"
	"delivery-itinerary-service/internal/domain"
	"delivery-itinerary-service/internal/platform/obs"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"
)

// DefaultDepotCount is the number of depot locations assumed when none is given.
const DefaultDepotCount = 1

// AggregateInput is the optimizer result plus the tables it was solved against.
// Zero counts default to the length of the corresponding table. A nil
// DepotCount means DefaultDepotCount; point it at 0 for a run without depots.
type AggregateInput struct {
	Assignment   domain.RouteAssignment
	OrderCount   int
	VehicleCount int
	Orders       []domain.Order
	Vehicles     []domain.Vehicle
	Matrices     domain.Matrices
	DepotCount   *int
}

// VehicleFailure reports a vehicle whose itinerary could not be reconstructed.
type VehicleFailure struct {
	VehicleIndex int    `json:"truck_id"`
	Reason       string `json:"reason"`
}

// Summary is the reporting view of one solve.
type Summary struct {
	RunID             string                    `json:"run_id,omitempty"`
	Status            int                       `json:"status"`
	Infeasible        bool                      `json:"infeasible"`
	TotalOrders       int                       `json:"total_orders"`
	DepotCount        int                       `json:"depot_count"`
	AvailableOrders   int                       `json:"available_orders"`
	AssignedCount     int                       `json:"assigned_count"`
	UnassignedCount   int                       `json:"unassigned_count"`
	AssignedOrders    []domain.Order            `json:"assigned_orders"`
	UnassignedOrders  []domain.Order            `json:"unassigned_orders"`
	VehiclesAvailable int                       `json:"vehicles_available"`
	VehiclesUsed      int                       `json:"vehicles_used"`
	Itineraries       map[int]*domain.Itinerary `json:"itineraries"`
	Failures          []VehicleFailure          `json:"failures,omitempty"`
}

type Aggregator struct {
	rec *Reconstructor
}

func NewAggregator(rec *Reconstructor) *Aggregator {
	if rec == nil {
		rec = NewReconstructor(nil, 0)
	}
	return &Aggregator{rec: rec}
}

// Aggregate classifies orders as assigned or unassigned and reconstructs
// itineraries for the vehicles that were used.
//
// An infeasible solve is reported through Summary.Infeasible, not as an error.
// Per-vehicle integrity failures land in Summary.Failures; the returned error
// is reserved for invalid input and cancellation.
func (a *Aggregator) Aggregate(ctx context.Context, in AggregateInput) (_ *Summary, err error) {
	defer obs.Time(ctx, "summary.Aggregate")(&err)

	total := in.OrderCount
	if total == 0 {
		total = len(in.Orders)
	}
	vehicleCount := in.VehicleCount
	if vehicleCount == 0 {
		vehicleCount = len(in.Vehicles)
	}
	depots := depotCountOrDefault(in.DepotCount)
	if depots < 0 || depots > total {
		return nil, fmt.Errorf("aggregate: depot count %d outside [0,%d]", depots, total)
	}

	byLocation := make(map[int]domain.Order, len(in.Orders))
	for _, o := range in.Orders {
		byLocation[o.Location] = o
	}

	s := &Summary{
		Status:            in.Assignment.Status,
		TotalOrders:       total,
		DepotCount:        depots,
		AvailableOrders:   total - depots,
		VehiclesAvailable: vehicleCount,
		Itineraries:       map[int]*domain.Itinerary{},
		AssignedOrders:    []domain.Order{},
		UnassignedOrders:  []domain.Order{},
	}

	if !in.Assignment.Feasible() {
		zerolog.Ctx(ctx).Warn().Int("status", in.Assignment.Status).Msg("optimizer reported an infeasible solve")
		s.Infeasible = true
		s.UnassignedOrders = ordersAt(byLocation, depots, total, nil)
		s.UnassignedCount = total - depots
		return s, nil
	}

	assigned := make(map[int]struct{})
	service := make([]domain.RouteStop, 0, len(in.Assignment.Stops))
	for _, stop := range in.Assignment.Stops {
		if !stop.Type.IsService() {
			continue
		}
		service = append(service, stop)
		if stop.Type.Fulfills() && stop.Location >= depots && stop.Location < total {
			assigned[stop.Location] = struct{}{}
		}
	}

	s.AssignedCount = len(assigned)
	s.UnassignedCount = total - len(assigned) - depots
	s.AssignedOrders = ordersAt(byLocation, depots, total, func(loc int) bool { _, ok := assigned[loc]; return ok })
	s.UnassignedOrders = ordersAt(byLocation, depots, total, func(loc int) bool { _, ok := assigned[loc]; return !ok })

	itineraries, recErr := a.rec.Reconstruct(ctx, ReconstructInput{
		Stops:    service,
		Orders:   in.Orders,
		Vehicles: in.Vehicles,
		Matrices: in.Matrices,
	})
	s.Itineraries = itineraries
	s.VehiclesUsed = len(itineraries)

	for _, e := range multierr.Errors(recErr) {
		var die *domain.DataIntegrityError
		if !errors.As(e, &die) {
			return nil, fmt.Errorf("aggregate: reconstruct itineraries: %w", e)
		}
		zerolog.Ctx(ctx).Warn().Int("truck_id", die.VehicleIndex).Str("reason", die.Reason).Msg("vehicle itinerary skipped")
		s.Failures = append(s.Failures, VehicleFailure{VehicleIndex: die.VehicleIndex, Reason: die.Reason})
	}

	return s, nil
}

func depotCountOrDefault(n *int) int {
	if n == nil {
		return DefaultDepotCount
	}
	return *n
}

// ordersAt returns the orders at locations [from,to) accepted by keep, in location order.
// A nil keep accepts every location.
func ordersAt(byLocation map[int]domain.Order, from, to int, keep func(int) bool) []domain.Order {
	out := make([]domain.Order, 0, to-from)
	for loc := from; loc < to; loc++ {
		if keep != nil && !keep(loc) {
			continue
		}
		if o, ok := byLocation[loc]; ok {
			out = append(out, o)
		}
	}
	return out
}

// VehicleIDs returns the ids of the reconstructed itineraries in ascending order.
func (s *Summary) VehicleIDs() []int {
	ids := make([]int, 0, len(s.Itineraries))
	for id := range s.Itineraries {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Err reports an infeasible solve as domain.ErrInfeasible.
func (s *Summary) Err() error {
	if !s.Infeasible {
		return nil
	}
	return fmt.Errorf("solver status %d: %w", s.Status, domain.ErrInfeasible)
}
