package csvtable

import (
	"bytes"
	"context"
	"delivery-itinerary-service/internal/domain"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

const ordersCSV = `order_id,location,lat,lng,delivery_start,delivery_end,service_time,weight,type
0,0,40.70,-74.00,2022-04-26T08:00:00,2022-04-27T00:00:00,0,0,DEPOT
101,1,40.71,-74.01,2022-04-26T09:00:00,2022-04-26T10:30:00,10,2.5,Restaurant
102,2,40.72,-74.02,2022-04-26T11:15:00,2022-04-26T12:00:00,15,4,Retailer
`

const vehiclesCSV = `vehicle_id,start_location,end_location,vehicle_start,vehicle_end,capacity,lat,lng
7,0,0,2022-04-26T08:00:00,2022-04-26T17:00:00,100,40.70,-74.00
`

func TestReadOrdersConvertsTimestamps(t *testing.T) {
	orders, err := ReadOrders(strings.NewReader(ordersCSV))
	require.NoError(t, err)
	require.Len(t, orders, 3)

	assert.Equal(t, domain.OrderTypeDepot, orders[0].Type)
	assert.Equal(t, 1440, orders[0].DeliveryEnd)
	assert.Equal(t, domain.Order{
		OrderID:       101,
		Location:      1,
		DeliveryStart: 540,
		DeliveryEnd:   630,
		ServiceTime:   10,
		Weight:        2.5,
		Type:          domain.OrderTypeRestaurant,
		Coord:         domain.Coordinates{Lat: 40.71, Lon: -74.01},
	}, orders[1])
}

func TestReadOrdersIsolatesBadRows(t *testing.T) {
	in := ordersCSV + "103,3,40.73,-74.03,26/04/2022 09:00,2022-04-26T10:00:00,5,1,Business\n"

	orders, err := ReadOrders(strings.NewReader(in))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParse)
	assert.Len(t, multierr.Errors(err), 1)
	assert.Len(t, orders, 3)

	var pe *domain.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "26/04/2022 09:00", pe.Value)
}

func TestReadVehicles(t *testing.T) {
	vehicles, err := ReadVehicles(strings.NewReader(vehiclesCSV))
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, 480, vehicles[0].StartTime)
	assert.Equal(t, 1020, vehicles[0].EndTime)
	assert.Equal(t, 540, vehicles[0].AvailableMinutes())
}

func TestReadVehiclesRejectsDuplicateIDs(t *testing.T) {
	in := vehiclesCSV +
		"8,0,0,2022-04-26T09:00:00,2022-04-26T16:00:00,80,40.70,-74.00\n" +
		"7,0,0,2022-04-26T10:00:00,2022-04-26T15:00:00,60,40.70,-74.00\n"

	vehicles, err := ReadVehicles(strings.NewReader(in))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)
	assert.Contains(t, err.Error(), "vehicle_id=7 already used by row 1")
	require.Len(t, vehicles, 2)
	assert.Equal(t, 100.0, vehicles[0].Capacity)
	assert.Equal(t, 8, vehicles[1].VehicleID)
}

func TestReadRoutesRejectsUnknownType(t *testing.T) {
	good := "truck_id,stop_order,location,arrival_stamp,type\n0,0,0,0,Depot\n0,1,1,30.5,Delivery\n0,2,0,90,Break\n"
	stops, err := ReadRoutes(strings.NewReader(good))
	require.NoError(t, err)
	require.Len(t, stops, 3)
	assert.Equal(t, 30.5, stops[1].ArrivalStamp)
	assert.Equal(t, domain.StopTypeBreak, stops[2].Type)

	_, err = ReadRoutes(strings.NewReader("truck_id,stop_order,location,arrival_stamp,type\n0,0,0,0,Teleport\n"))
	assert.Error(t, err)
}

func TestWriteMapRecords(t *testing.T) {
	records := []domain.MapRecord{
		{VehicleID: 7, OrderID: 101, Origin: domain.Coordinates{Lat: 1, Lon: 2}, Destination: domain.Coordinates{Lat: 3, Lon: 4},
			Route: &domain.LegRoute{Path: []domain.Coordinates{{Lat: 38.5, Lon: -120.2}, {Lat: 40.7, Lon: -120.95}, {Lat: 43.252, Lon: -126.453}}}},
		{VehicleID: 7, OrderID: 102, Origin: domain.Coordinates{Lat: 3, Lon: 4}, Destination: domain.Coordinates{Lat: 3, Lon: 4}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMapRecords(&buf, records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "vehicle_id,order_id,order_lat,order_long,end_lat,end_long,polyline", lines[0])
	assert.Equal(t, "7,101,1,2,3,4,_p~iF~ps|U_ulLnnqC_mqNvxq`@", lines[1])
	assert.Equal(t, "7,102,3,4,3,4,", lines[2])
}

func TestFileRepository(t *testing.T) {
	dir := t.TempDir()
	ordersPath := filepath.Join(dir, "orders.csv")
	vehiclesPath := filepath.Join(dir, "vehicles.csv")
	require.NoError(t, os.WriteFile(ordersPath, []byte(ordersCSV), 0o600))
	require.NoError(t, os.WriteFile(vehiclesPath, []byte(vehiclesCSV), 0o600))

	repo := NewFileRepository(ordersPath, vehiclesPath)
	orders, err := repo.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 3)

	vehicles, err := repo.ListVehicles(context.Background())
	require.NoError(t, err)
	assert.Len(t, vehicles, 1)

	_, err = NewFileRepository(filepath.Join(dir, "missing.csv"), vehiclesPath).ListOrders(context.Background())
	assert.Error(t, err)
}
