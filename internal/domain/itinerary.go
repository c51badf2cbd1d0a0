package domain

// Job is the per-order detail of one visited stop.
type Job struct {
	OrderID        int         `json:"order_id"`
	Type           OrderType   `json:"type"`
	Location       int         `json:"location"`
	DeliveryStart  int         `json:"delivery_start"`
	DeliveryEnd    int         `json:"delivery_end"`
	ActualBegin    string      `json:"actual_begin_time"`
	ActualEnd      string      `json:"actual_end_time"`
	ArrivalMinutes float64     `json:"arrival_minutes"`
	ServiceTime    int         `json:"service_time"`
	Coord          Coordinates `json:"coord"`
}

// Represents the reconstructed delivery itinerary for a single vehicle.
// Jobs are kept in visiting order; JobByOrderID gives keyed access.
// It is derived data and is never mutated after reconstruction.
type Itinerary struct {
	VehicleID          int         `json:"vehicle_id"`
	VehicleIndex       int         `json:"truck_id"`
	StartLocation      int         `json:"vehicle_start"`
	EndLocation        int         `json:"vehicle_end"`
	AvailableMinutes   int         `json:"available_minutes"`
	ActualStart        string      `json:"actual_start"`
	ActualEnd          string      `json:"actual_end"`
	ActualStartMinutes float64     `json:"actual_start_minutes"`
	ActualEndMinutes   float64     `json:"actual_end_minutes"`
	DistanceTraveled   float64     `json:"distance"`
	TimeTraveled       float64     `json:"time_travelled"`
	WorkTime           int         `json:"work_time"`
	Coord              Coordinates `json:"coord"`
	Jobs               []Job       `json:"jobs"`
}

func (it *Itinerary) JobByOrderID(orderID int) (Job, bool) {
	for _, j := range it.Jobs {
		if j.OrderID == orderID {
			return j, true
		}
	}
	return Job{}, false
}

// MapRecord is one travel leg staged for map rendering.
// Closing marks the zero-length leg that ends a vehicle's sequence.
type MapRecord struct {
	VehicleID   int         `json:"vehicle_id"`
	OrderID     int         `json:"order_id"`
	Origin      Coordinates `json:"origin"`
	Destination Coordinates `json:"destination"`
	Closing     bool        `json:"closing"`
	Route       *LegRoute   `json:"route,omitempty"`
}

// LegRoute is the road geometry between two points as returned by the routing service.
type LegRoute struct {
	Path           []Coordinates `json:"path"`
	Start          Coordinates   `json:"start_point"`
	End            Coordinates   `json:"end_point"`
	DistanceMeters float64       `json:"distance"`
}
