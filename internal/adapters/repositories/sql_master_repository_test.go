package repositories

import (
	"context"
	"database/sql"
	"delivery-itinerary-service/internal/domain"
	"delivery-itinerary-service/internal/platform/db"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.Open(db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, InitSchema(context.Background(), conn))
	return conn
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	conn := openTestDB(t)
	require.NoError(t, InitSchema(context.Background(), conn))
	assert.Error(t, InitSchema(context.Background(), nil))
}

func TestListOrdersOrderedByLocation(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()

	seed := []domain.Order{
		{OrderID: 12, Location: 2, DeliveryStart: 540, DeliveryEnd: 600, ServiceTime: 10, Weight: 3.5, Type: domain.OrderTypeRetailer, Coord: domain.Coordinates{Lat: 40.2, Lon: -74.1}},
		{OrderID: 0, Location: 0, DeliveryStart: 480, DeliveryEnd: 1440, Type: domain.OrderTypeDepot, Coord: domain.Coordinates{Lat: 40.0, Lon: -74.0}},
		{OrderID: 11, Location: 1, DeliveryStart: 500, DeliveryEnd: 560, ServiceTime: 5, Weight: 1, Type: domain.OrderTypeRestaurant, Coord: domain.Coordinates{Lat: 40.1, Lon: -74.2}},
	}
	require.NoError(t, SeedOrders(ctx, conn, seed))
	// Reseeding upserts instead of failing.
	require.NoError(t, SeedOrders(ctx, conn, seed))

	repo := NewSQLMasterRepository(conn)
	got, err := repo.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, []int{0, 1, 2}, []int{got[0].Location, got[1].Location, got[2].Location})
	assert.Equal(t, seed[0], got[2])
	assert.Equal(t, domain.OrderTypeDepot, got[0].Type)
}

func TestSeedOrdersRejectsNegativeLocation(t *testing.T) {
	conn := openTestDB(t)
	err := SeedOrders(context.Background(), conn, []domain.Order{{OrderID: 1, Location: -1, Type: domain.OrderTypeBusiness}})
	assert.ErrorContains(t, err, "invalid location")
}

func TestListVehiclesKeepsSeedPosition(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()

	seed := []domain.Vehicle{
		{VehicleID: 9, StartLocation: 0, EndLocation: 0, StartTime: 480, EndTime: 1020, Capacity: 100},
		{VehicleID: 3, StartLocation: 0, EndLocation: 0, StartTime: 540, EndTime: 960, Capacity: 80},
	}
	require.NoError(t, SeedVehicles(ctx, conn, seed))

	got, err := NewSQLMasterRepository(conn).ListVehicles(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed, got)
}

func TestSeedVehiclesRejectsInvertedWindow(t *testing.T) {
	conn := openTestDB(t)
	err := SeedVehicles(context.Background(), conn, []domain.Vehicle{{VehicleID: 1, StartTime: 900, EndTime: 600}})
	assert.Error(t, err)
}

func TestNilDBErrors(t *testing.T) {
	repo := NewSQLMasterRepository(nil)
	_, err := repo.ListOrders(context.Background())
	assert.Error(t, err)
	_, err = repo.ListVehicles(context.Background())
	assert.Error(t, err)
}
