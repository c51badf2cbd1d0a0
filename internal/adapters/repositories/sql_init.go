package repositories

import (
	"context"
	"database/sql"
	"delivery-itinerary-service/internal/domain"
	"errors"
	"fmt"
)

// Initialize the database schema. The DDL is portable between Postgres and SQLite.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id INTEGER PRIMARY KEY,
		location INTEGER NOT NULL UNIQUE,
		delivery_start INTEGER NOT NULL,
		delivery_end INTEGER NOT NULL,
		service_time INTEGER NOT NULL,
		weight DOUBLE PRECISION NOT NULL,
		order_type TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL
	);
	`

	createVehiclesQuery := `
	CREATE TABLE IF NOT EXISTS vehicles (
		vehicle_id INTEGER PRIMARY KEY,
		seq INTEGER NOT NULL,
		start_location INTEGER NOT NULL,
		end_location INTEGER NOT NULL,
		start_time INTEGER NOT NULL,
		end_time INTEGER NOT NULL,
		capacity DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL
	);
	`

	createMatrixCacheQuery := `
	CREATE TABLE IF NOT EXISTS matrix_cache (
		cache_key TEXT PRIMARY KEY,
		size INTEGER NOT NULL,
		payload TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_vehicles_seq
	ON vehicles(seq);
	`

	statements := []string{
		createOrdersQuery,
		createVehiclesQuery,
		createMatrixCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the orders table, replacing rows with the same order id.
func SeedOrders(ctx context.Context, db *sql.DB, orders []domain.Order) error {
	for i, o := range orders {
		if o.OrderID < 0 {
			return fmt.Errorf("seed orders: invalid order_id at index %d: %d", i, o.OrderID)
		}
		if o.Location < 0 {
			return fmt.Errorf("seed orders: invalid location at index %d: %d", i, o.Location)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed orders: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO orders (
		order_id,
		location,
		delivery_start,
		delivery_end,
		service_time,
		weight,
		order_type,
		lat,
		lon
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (order_id) DO UPDATE
	SET location = EXCLUDED.location,
		delivery_start = EXCLUDED.delivery_start,
		delivery_end = EXCLUDED.delivery_end,
		service_time = EXCLUDED.service_time,
		weight = EXCLUDED.weight,
		order_type = EXCLUDED.order_type,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed orders: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range orders {
		_, err := stmt.ExecContext(ctx,
			o.OrderID, o.Location, o.DeliveryStart, o.DeliveryEnd, o.ServiceTime,
			o.Weight, string(o.Type), o.Coord.Lat, o.Coord.Lon,
		)
		if err != nil {
			return fmt.Errorf("seed orders: insert order_id=%d: %w", o.OrderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed orders: commit tx: %w", err)
	}

	return nil
}

// Populate the vehicles table. Slice position is stored as seq because
// optimizer routes address vehicles by their position in the table.
func SeedVehicles(ctx context.Context, db *sql.DB, vehicles []domain.Vehicle) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed vehicles: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO vehicles (
		vehicle_id,
		seq,
		start_location,
		end_location,
		start_time,
		end_time,
		capacity,
		lat,
		lon
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (vehicle_id) DO UPDATE
	SET seq = EXCLUDED.seq,
		start_location = EXCLUDED.start_location,
		end_location = EXCLUDED.end_location,
		start_time = EXCLUDED.start_time,
		end_time = EXCLUDED.end_time,
		capacity = EXCLUDED.capacity,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed vehicles: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, v := range vehicles {
		if v.EndTime < v.StartTime {
			return fmt.Errorf("seed vehicles: vehicle_id=%d: end time %d before start time %d", v.VehicleID, v.EndTime, v.StartTime)
		}
		_, err := stmt.ExecContext(ctx,
			v.VehicleID, i, v.StartLocation, v.EndLocation, v.StartTime, v.EndTime,
			v.Capacity, v.Coord.Lat, v.Coord.Lon,
		)
		if err != nil {
			return fmt.Errorf("seed vehicles: insert vehicle_id=%d: %w", v.VehicleID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed vehicles: commit tx: %w", err)
	}

	return nil
}
