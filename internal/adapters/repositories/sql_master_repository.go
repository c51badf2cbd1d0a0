package repositories

import (
	"context"
	"database/sql"
	"delivery-itinerary-service/internal/domain"
	"delivery-itinerary-service/internal/platform/obs"
	"errors"
	"fmt"
)

// SQL-backed implementation of the OrderRepository and VehicleRepository ports.
type SQLMasterRepository struct{ DB *sql.DB }

func NewSQLMasterRepository(db *sql.DB) *SQLMasterRepository {
	return &SQLMasterRepository{DB: db}
}

// Return all orders ordered by location index.
func (s *SQLMasterRepository) ListOrders(ctx context.Context) (_ []domain.Order, err error) {
	defer obs.Time(ctx, "repo.ListOrders")(&err)

	if s.DB == nil {
		return nil, errors.New("sql master repository: DB is nil")
	}

	query := `
	SELECT
		order_id,
		location,
		delivery_start,
		delivery_end,
		service_time,
		weight,
		order_type,
		lat,
		lon
	FROM orders
	ORDER BY location;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, 64)
	for rows.Next() {
		var o domain.Order
		var orderType string
		err := rows.Scan(
			&o.OrderID, &o.Location, &o.DeliveryStart, &o.DeliveryEnd, &o.ServiceTime,
			&o.Weight, &orderType, &o.Coord.Lat, &o.Coord.Lon,
		)
		if err != nil {
			return nil, fmt.Errorf("list orders: scan row: %w", err)
		}
		if o.Type, err = domain.ParseOrderType(orderType); err != nil {
			return nil, fmt.Errorf("list orders: order_id=%d: %w", o.OrderID, err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: row iteration: %w", err)
	}

	return orders, nil
}

// Return all vehicles in table position order.
func (s *SQLMasterRepository) ListVehicles(ctx context.Context) (_ []domain.Vehicle, err error) {
	defer obs.Time(ctx, "repo.ListVehicles")(&err)

	if s.DB == nil {
		return nil, errors.New("sql master repository: DB is nil")
	}

	query := `
	SELECT
		vehicle_id,
		start_location,
		end_location,
		start_time,
		end_time,
		capacity,
		lat,
		lon
	FROM vehicles
	ORDER BY seq, vehicle_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query vehicles table: %w", err)
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0, 16)
	for rows.Next() {
		var v domain.Vehicle
		err := rows.Scan(
			&v.VehicleID, &v.StartLocation, &v.EndLocation, &v.StartTime, &v.EndTime,
			&v.Capacity, &v.Coord.Lat, &v.Coord.Lon,
		)
		if err != nil {
			return nil, fmt.Errorf("list vehicles: scan row: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}

	return vehicles, nil
}
