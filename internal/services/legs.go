package services

import (
	"context"
	"delivery-itinerary-service/internal/domain"
	"delivery-itinerary-service/internal/ports"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
)

// AttachLegRoutes returns a copy of records with road geometry fetched for each leg.
// Closing legs are skipped. A leg whose lookup fails keeps no geometry and is logged;
// only cancellation of ctx fails the call.
func AttachLegRoutes(ctx context.Context, router ports.LegRouter, records []domain.MapRecord, workers int) ([]domain.MapRecord, error) {
	if workers < 1 {
		workers = defaultWorkers
	}

	out := make([]domain.MapRecord, len(records))
	copy(out, records)

	p := pool.New().WithMaxGoroutines(workers)
	for i := range out {
		if out[i].Closing {
			continue
		}
		i := i
		p.Go(func() {
			if ctx.Err() != nil {
				return
			}
			route, err := router.Route(ctx, out[i].Origin, out[i].Destination)
			if err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).
					Int("vehicle_id", out[i].VehicleID).
					Int("order_id", out[i].OrderID).
					Msg("leg route unavailable")
				return
			}
			out[i].Route = route
		})
	}
	p.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
