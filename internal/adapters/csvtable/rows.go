// Package csvtable reads the optimizer's master and route tables from CSV
// and writes flattened map records back out.
package csvtable

import (
	"delivery-itinerary-service/internal/domain"
	"delivery-itinerary-service/internal/timeconv"
	"fmt"

	"go.uber.org/multierr"
)

type orderRow struct {
	OrderID       int     `csv:"order_id"`
	Location      int     `csv:"location"`
	Lat           float64 `csv:"lat"`
	Lng           float64 `csv:"lng"`
	DeliveryStart string  `csv:"delivery_start"`
	DeliveryEnd   string  `csv:"delivery_end"`
	ServiceTime   int     `csv:"service_time"`
	Weight        float64 `csv:"weight"`
	Type          string  `csv:"type"`
}

func (r orderRow) toDomain() (domain.Order, error) {
	start, errStart := timeconv.MinuteOfDay(r.DeliveryStart)
	end, errEnd := timeconv.MinuteOfDay(r.DeliveryEnd)
	typ, errType := domain.ParseOrderType(r.Type)
	if err := multierr.Combine(errStart, errEnd, errType); err != nil {
		return domain.Order{}, err
	}

	return domain.Order{
		OrderID:       r.OrderID,
		Location:      r.Location,
		DeliveryStart: start,
		DeliveryEnd:   end,
		ServiceTime:   r.ServiceTime,
		Weight:        r.Weight,
		Type:          typ,
		Coord:         domain.Coordinates{Lat: r.Lat, Lon: r.Lng},
	}, nil
}

type vehicleRow struct {
	VehicleID     int     `csv:"vehicle_id"`
	StartLocation int     `csv:"start_location"`
	EndLocation   int     `csv:"end_location"`
	VehicleStart  string  `csv:"vehicle_start"`
	VehicleEnd    string  `csv:"vehicle_end"`
	Capacity      float64 `csv:"capacity"`
	Lat           float64 `csv:"lat"`
	Lng           float64 `csv:"lng"`
}

func (r vehicleRow) toDomain() (domain.Vehicle, error) {
	start, errStart := timeconv.MinuteOfDay(r.VehicleStart)
	end, errEnd := timeconv.MinuteOfDay(r.VehicleEnd)
	if err := multierr.Append(errStart, errEnd); err != nil {
		return domain.Vehicle{}, err
	}
	if end < start {
		return domain.Vehicle{}, fmt.Errorf("vehicle_end %q before vehicle_start %q", r.VehicleEnd, r.VehicleStart)
	}

	return domain.Vehicle{
		VehicleID:     r.VehicleID,
		StartLocation: r.StartLocation,
		EndLocation:   r.EndLocation,
		StartTime:     start,
		EndTime:       end,
		Capacity:      r.Capacity,
		Coord:         domain.Coordinates{Lat: r.Lat, Lon: r.Lng},
	}, nil
}

type routeRow struct {
	TruckID      int     `csv:"truck_id"`
	StopOrder    int     `csv:"stop_order"`
	Location     int     `csv:"location"`
	ArrivalStamp float64 `csv:"arrival_stamp"`
	Type         string  `csv:"type"`
}

func (r routeRow) toDomain() (domain.RouteStop, error) {
	typ, err := domain.ParseStopType(r.Type)
	if err != nil {
		return domain.RouteStop{}, err
	}
	return domain.RouteStop{
		VehicleIndex: r.TruckID,
		StopOrder:    r.StopOrder,
		Location:     r.Location,
		ArrivalStamp: r.ArrivalStamp,
		Type:         typ,
	}, nil
}

type mapRecordRow struct {
	VehicleID int     `csv:"vehicle_id"`
	OrderID   int     `csv:"order_id"`
	OrderLat  float64 `csv:"order_lat"`
	OrderLong float64 `csv:"order_long"`
	EndLat    float64 `csv:"end_lat"`
	EndLong   float64 `csv:"end_long"`
	Polyline  string  `csv:"polyline,omitempty"`
}
