package domain

import (
	"fmt"
	"strings"
)

type StopType string

const (
	StopTypeDepot    StopType = "Depot"
	StopTypePickup   StopType = "Pickup"
	StopTypeDelivery StopType = "Delivery"
	StopTypeBreak    StopType = "Break"
)

func ParseStopType(s string) (StopType, error) {
	for _, t := range []StopType{StopTypeDepot, StopTypePickup, StopTypeDelivery, StopTypeBreak} {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("parse stop type: unknown type %q", s)
}

// UnmarshalText accepts any casing of the known stop types.
func (t *StopType) UnmarshalText(b []byte) error {
	parsed, err := ParseStopType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// IsService reports whether the stop visits a location in the order table.
// Breaks are idle time and carry no location semantics.
func (t StopType) IsService() bool {
	return t == StopTypeDepot || t == StopTypePickup || t == StopTypeDelivery
}

// Fulfills reports whether visiting the stop serves an order.
func (t StopType) Fulfills() bool {
	return t == StopTypePickup || t == StopTypeDelivery
}

// Represents a single stop produced by the optimizer.
// ArrivalStamp is minutes since the start of the planning day.
type RouteStop struct {
	VehicleIndex int      `json:"truck_id" csv:"truck_id"`
	StopOrder    int      `json:"stop_order" csv:"stop_order"`
	Location     int      `json:"location" csv:"location"`
	ArrivalStamp float64  `json:"arrival_stamp" csv:"arrival_stamp"`
	Type         StopType `json:"type" csv:"type"`
}

// StatusSuccess is the only solver status that carries a usable route.
const StatusSuccess = 0

// Represents the optimizer's solution, consumed read-only.
type RouteAssignment struct {
	Status int
	Stops  []RouteStop
}

func (a RouteAssignment) Feasible() bool {
	return a.Status == StatusSuccess
}
