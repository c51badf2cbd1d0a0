package domain

import (
	"encoding/json"
	"testing"
)

func TestStopTypeClassification(t *testing.T) {
	cases := []struct {
		typ      StopType
		service  bool
		fulfills bool
	}{
		{StopTypeDepot, true, false},
		{StopTypePickup, true, true},
		{StopTypeDelivery, true, true},
		{StopTypeBreak, false, false},
	}
	for _, c := range cases {
		if got := c.typ.IsService(); got != c.service {
			t.Errorf("%s.IsService() = %v, want %v", c.typ, got, c.service)
		}
		if got := c.typ.Fulfills(); got != c.fulfills {
			t.Errorf("%s.Fulfills() = %v, want %v", c.typ, got, c.fulfills)
		}
	}
}

func TestRouteStopJSONNormalizesType(t *testing.T) {
	var s RouteStop
	if err := json.Unmarshal([]byte(`{"truck_id":2,"stop_order":1,"location":4,"arrival_stamp":12.5,"type":"delivery"}`), &s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Type != StopTypeDelivery {
		t.Fatalf("type = %q, want %q", s.Type, StopTypeDelivery)
	}
	if s.VehicleIndex != 2 || s.Location != 4 || s.ArrivalStamp != 12.5 {
		t.Fatalf("decoded stop = %+v", s)
	}

	if err := json.Unmarshal([]byte(`{"type":"Teleport"}`), &s); err == nil {
		t.Fatal("expected error for unknown stop type")
	}
}

func TestParseOrderType(t *testing.T) {
	got, err := ParseOrderType(" DEPOT ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != OrderTypeDepot {
		t.Fatalf("type = %q, want %q", got, OrderTypeDepot)
	}
	if _, err := ParseOrderType("warehouse"); err == nil {
		t.Fatal("expected error for unknown order type")
	}
}

func TestAssignmentFeasible(t *testing.T) {
	if !(RouteAssignment{Status: StatusSuccess}).Feasible() {
		t.Fatal("status 0 should be feasible")
	}
	if (RouteAssignment{Status: 1}).Feasible() {
		t.Fatal("status 1 should not be feasible")
	}
}
