package domain

// Represents one row of the vehicle master table.
// Time windows are minutes of day as produced by timeconv.MinuteOfDay.
type Vehicle struct {
	VehicleID     int         `json:"vehicle_id"`
	StartLocation int         `json:"start_location"`
	EndLocation   int         `json:"end_location"`
	StartTime     int         `json:"start_time"`
	EndTime       int         `json:"end_time"`
	Capacity      float64     `json:"capacity"`
	Coord         Coordinates `json:"coord"`
}

// AvailableMinutes is the length of the vehicle's working window.
func (v Vehicle) AvailableMinutes() int {
	return v.EndTime - v.StartTime
}
