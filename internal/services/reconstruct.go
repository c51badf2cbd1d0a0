package services

import (
	"context"
	"delivery-itinerary-service/internal/domain"
	"delivery-itinerary-service/internal/timeconv"
	"fmt"
	"sort"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/multierr"
)

const defaultWorkers = 8

// ReconstructInput holds the read-only tables one reconstruction works from.
// Orders are addressed by their Location; vehicles by their position in Vehicles.
type ReconstructInput struct {
	Stops    []domain.RouteStop
	Orders   []domain.Order
	Vehicles []domain.Vehicle
	Matrices domain.Matrices
}

// Reconstructor maps optimizer stop sequences onto per-vehicle itineraries.
type Reconstructor struct {
	conv    *timeconv.Converter
	workers int
}

func NewReconstructor(conv *timeconv.Converter, workers int) *Reconstructor {
	if conv == nil {
		conv = timeconv.Default()
	}
	if workers < 1 {
		workers = defaultWorkers
	}
	return &Reconstructor{conv: conv, workers: workers}
}

type vehicleResult struct {
	vehicleIndex int
	itinerary    *domain.Itinerary
	err          error
}

// Reconstruct builds one itinerary per vehicle that has stops, keyed by vehicle id.
//
// A vehicle whose stops reference unknown orders, locations or vehicles,
// whose arrivals decrease, or whose id is shared with another row of the
// vehicle table, is left out of the result and reported as a
// *domain.DataIntegrityError. Those errors are combined with multierr; the
// itineraries of every other vehicle are still returned.
func (r *Reconstructor) Reconstruct(ctx context.Context, in ReconstructInput) (map[int]*domain.Itinerary, error) {
	byLocation := make(map[int]domain.Order, len(in.Orders))
	for _, o := range in.Orders {
		byLocation[o.Location] = o
	}

	rowsByID := make(map[int][]int, len(in.Vehicles))
	for idx, v := range in.Vehicles {
		rowsByID[v.VehicleID] = append(rowsByID[v.VehicleID], idx)
	}

	grouped := groupByVehicle(in.Stops)
	indices := make([]int, 0, len(grouped))
	for idx := range grouped {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	p := pool.NewWithResults[vehicleResult]().WithMaxGoroutines(r.workers)
	for _, idx := range indices {
		idx := idx
		stops := grouped[idx]
		p.Go(func() vehicleResult {
			if err := ctx.Err(); err != nil {
				return vehicleResult{vehicleIndex: idx, err: err}
			}
			it, err := r.vehicleItinerary(idx, stops, byLocation, in.Vehicles, rowsByID, in.Matrices)
			return vehicleResult{vehicleIndex: idx, itinerary: it, err: err}
		})
	}
	results := p.Wait()

	// Pool results come back in completion order.
	sort.Slice(results, func(i, j int) bool { return results[i].vehicleIndex < results[j].vehicleIndex })

	itineraries := make(map[int]*domain.Itinerary, len(results))
	var errs error
	for _, res := range results {
		if res.err != nil {
			errs = multierr.Append(errs, res.err)
			continue
		}
		itineraries[res.itinerary.VehicleID] = res.itinerary
	}

	return itineraries, errs
}

// groupByVehicle splits stops per vehicle, each ordered by stop order.
// The sort is stable so equal stop orders keep their input order.
func groupByVehicle(stops []domain.RouteStop) map[int][]domain.RouteStop {
	grouped := make(map[int][]domain.RouteStop)
	for _, s := range stops {
		grouped[s.VehicleIndex] = append(grouped[s.VehicleIndex], s)
	}
	for _, g := range grouped {
		sort.SliceStable(g, func(i, j int) bool { return g[i].StopOrder < g[j].StopOrder })
	}
	return grouped
}

func (r *Reconstructor) vehicleItinerary(
	idx int,
	stops []domain.RouteStop,
	byLocation map[int]domain.Order,
	vehicles []domain.Vehicle,
	rowsByID map[int][]int,
	m domain.Matrices,
) (*domain.Itinerary, error) {
	integrity := func(format string, args ...any) error {
		return &domain.DataIntegrityError{VehicleIndex: idx, Reason: fmt.Sprintf(format, args...)}
	}

	if idx < 0 || idx >= len(vehicles) {
		return nil, integrity("vehicle index outside vehicle table of %d rows", len(vehicles))
	}
	vehicle := vehicles[idx]
	if rows := rowsByID[vehicle.VehicleID]; len(rows) > 1 {
		return nil, integrity("vehicle id %d is shared by vehicle table rows %v", vehicle.VehicleID, rows)
	}

	jobs := make([]domain.Job, 0, len(stops))
	workTime := 0
	for k, s := range stops {
		if k > 0 && s.ArrivalStamp < stops[k-1].ArrivalStamp {
			return nil, integrity("arrival %.2f at stop %d precedes arrival %.2f at stop %d",
				s.ArrivalStamp, s.StopOrder, stops[k-1].ArrivalStamp, stops[k-1].StopOrder)
		}

		o, ok := byLocation[s.Location]
		if !ok {
			return nil, integrity("location %d at stop %d has no order", s.Location, s.StopOrder)
		}

		workTime += o.ServiceTime
		jobs = append(jobs, domain.Job{
			OrderID:        o.OrderID,
			Type:           o.Type,
			Location:       o.Location,
			DeliveryStart:  o.DeliveryStart,
			DeliveryEnd:    o.DeliveryEnd,
			ActualBegin:    r.conv.Format(s.ArrivalStamp),
			ActualEnd:      r.conv.Format(s.ArrivalStamp + float64(o.ServiceTime)),
			ArrivalMinutes: s.ArrivalStamp,
			ServiceTime:    o.ServiceTime,
			Coord:          o.Coord,
		})
	}

	var distance, travel float64
	for k := 0; k+1 < len(stops); k++ {
		from, to := stops[k].Location, stops[k+1].Location
		d, err := m.Distance.At(from, to)
		if err != nil {
			return nil, integrity("distance lookup: %v", err)
		}
		t, err := m.Time.At(from, to)
		if err != nil {
			return nil, integrity("time lookup: %v", err)
		}
		distance += d
		travel += t
	}

	first, last := stops[0].ArrivalStamp, stops[len(stops)-1].ArrivalStamp
	return &domain.Itinerary{
		VehicleID:          vehicle.VehicleID,
		VehicleIndex:       idx,
		StartLocation:      vehicle.StartLocation,
		EndLocation:        vehicle.EndLocation,
		AvailableMinutes:   vehicle.AvailableMinutes(),
		ActualStart:        r.conv.Format(first),
		ActualEnd:          r.conv.Format(last),
		ActualStartMinutes: first,
		ActualEndMinutes:   last,
		DistanceTraveled:   distance,
		TimeTraveled:       travel,
		WorkTime:           workTime,
		Coord:              vehicle.Coord,
		Jobs:               jobs,
	}, nil
}
