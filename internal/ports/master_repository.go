package ports

import (
	"context"
	"delivery-itinerary-service/internal/domain"
)

// Port: a boundary for reading the order master table.
type OrderRepository interface {
	// Retrieve all orders ordered by location index.
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

// Port: a boundary for reading the vehicle master table.
type VehicleRepository interface {
	// Retrieve all vehicles; slice position is the optimizer's vehicle index.
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
}
