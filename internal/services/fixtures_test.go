package services

import (
	"delivery-itinerary-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

// Depot at location 0 and three delivery orders at 1..3.
func fixtureOrders() []domain.Order {
	return []domain.Order{
		{OrderID: 100, Location: 0, DeliveryStart: 480, DeliveryEnd: 1440, ServiceTime: 0, Type: domain.OrderTypeDepot, Coord: domain.Coordinates{Lat: 40.00, Lon: -74.00}},
		{OrderID: 101, Location: 1, DeliveryStart: 500, DeliveryEnd: 600, ServiceTime: 10, Type: domain.OrderTypeRestaurant, Coord: domain.Coordinates{Lat: 40.01, Lon: -74.01}},
		{OrderID: 102, Location: 2, DeliveryStart: 520, DeliveryEnd: 640, ServiceTime: 15, Type: domain.OrderTypeRetailer, Coord: domain.Coordinates{Lat: 40.02, Lon: -74.02}},
		{OrderID: 103, Location: 3, DeliveryStart: 540, DeliveryEnd: 700, ServiceTime: 5, Type: domain.OrderTypeBusiness, Coord: domain.Coordinates{Lat: 40.03, Lon: -74.03}},
	}
}

func fixtureVehicles() []domain.Vehicle {
	return []domain.Vehicle{
		{VehicleID: 7, StartLocation: 0, EndLocation: 0, StartTime: 480, EndTime: 1020, Capacity: 100, Coord: domain.Coordinates{Lat: 40.00, Lon: -74.00}},
		{VehicleID: 3, StartLocation: 0, EndLocation: 0, StartTime: 540, EndTime: 960, Capacity: 80, Coord: domain.Coordinates{Lat: 40.00, Lon: -74.00}},
	}
}

var (
	fixtureDistanceRows = [][]float64{
		{0, 1.5, 2.5, 4.0},
		{1.6, 0, 1.25, 2.0},
		{2.4, 1.3, 0, 0.75},
		{4.1, 2.1, 0.8, 0},
	}
	fixtureTimeRows = [][]float64{
		{0, 3, 5, 8},
		{3.5, 0, 2.5, 4},
		{5, 2.5, 0, 1.5},
		{8, 4, 1.5, 0},
	}
)

func fixtureMatrices(t *testing.T) domain.Matrices {
	t.Helper()
	d, err := domain.MatrixFromRows(fixtureDistanceRows)
	require.NoError(t, err)
	tm, err := domain.MatrixFromRows(fixtureTimeRows)
	require.NoError(t, err)
	return domain.Matrices{Distance: d, Time: tm}
}

// One vehicle visiting the depot then all three orders.
func fixtureStops() []domain.RouteStop {
	return []domain.RouteStop{
		{VehicleIndex: 0, StopOrder: 0, Location: 0, ArrivalStamp: 0, Type: domain.StopTypeDepot},
		{VehicleIndex: 0, StopOrder: 1, Location: 1, ArrivalStamp: 30, Type: domain.StopTypeDelivery},
		{VehicleIndex: 0, StopOrder: 2, Location: 2, ArrivalStamp: 65, Type: domain.StopTypeDelivery},
		{VehicleIndex: 0, StopOrder: 3, Location: 3, ArrivalStamp: 100, Type: domain.StopTypeDelivery},
	}
}
