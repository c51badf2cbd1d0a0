package csvtable

import (
	"delivery-itinerary-service/internal/domain"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/twpayne/go-polyline"
	"go.uber.org/multierr"
)

// ReadOrders decodes an order table. Rows that fail to convert are skipped
// and reported together; the remaining orders are still returned.
func ReadOrders(r io.Reader) ([]domain.Order, error) {
	var rows []orderRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("read orders: decode csv: %w", err)
	}

	var errs error
	orders := make([]domain.Order, 0, len(rows))
	for i, row := range rows {
		o, err := row.toDomain()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("read orders: row %d (order_id=%d): %w", i+1, row.OrderID, err))
			continue
		}
		orders = append(orders, o)
	}

	return orders, errs
}

// ReadVehicles decodes a vehicle table with the same row isolation as ReadOrders.
func ReadVehicles(r io.Reader) ([]domain.Vehicle, error) {
	var rows []vehicleRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("read vehicles: decode csv: %w", err)
	}

	var errs error
	vehicles := make([]domain.Vehicle, 0, len(rows))
	seen := make(map[int]int, len(rows))
	for i, row := range rows {
		if first, ok := seen[row.VehicleID]; ok {
			errs = multierr.Append(errs, fmt.Errorf("read vehicles: row %d: %w: vehicle_id=%d already used by row %d",
				i+1, domain.ErrDataIntegrity, row.VehicleID, first))
			continue
		}
		seen[row.VehicleID] = i + 1

		v, err := row.toDomain()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("read vehicles: row %d (vehicle_id=%d): %w", i+1, row.VehicleID, err))
			continue
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, errs
}

// ReadRoutes decodes the optimizer's route table. Any bad row fails the read,
// since a partial route would silently change travel metrics.
func ReadRoutes(r io.Reader) ([]domain.RouteStop, error) {
	var rows []routeRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("read routes: decode csv: %w", err)
	}

	var errs error
	stops := make([]domain.RouteStop, 0, len(rows))
	for i, row := range rows {
		s, err := row.toDomain()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("read routes: row %d: %w", i+1, err))
			continue
		}
		stops = append(stops, s)
	}
	if errs != nil {
		return nil, errs
	}

	return stops, nil
}

// WriteMapRecords encodes records in the column layout used by the map tooling.
// Leg geometry, when present, is written as an encoded polyline.
func WriteMapRecords(w io.Writer, records []domain.MapRecord) error {
	rows := make([]mapRecordRow, 0, len(records))
	for _, rec := range records {
		row := mapRecordRow{
			VehicleID: rec.VehicleID,
			OrderID:   rec.OrderID,
			OrderLat:  rec.Origin.Lat,
			OrderLong: rec.Origin.Lon,
			EndLat:    rec.Destination.Lat,
			EndLong:   rec.Destination.Lon,
		}
		if rec.Route != nil && len(rec.Route.Path) > 0 {
			row.Polyline = string(polyline.EncodeCoords(latLngs(rec.Route.Path)))
		}
		rows = append(rows, row)
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write map records: %w", err)
	}
	return nil
}

// Polyline points are [lat, lon].
func latLngs(path []domain.Coordinates) [][]float64 {
	out := make([][]float64, 0, len(path))
	for _, c := range path {
		out = append(out, []float64{c.Lat, c.Lon})
	}
	return out
}
