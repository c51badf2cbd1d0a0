package csvtable

import (
	"context"
	"delivery-itinerary-service/internal/domain"
	"delivery-itinerary-service/internal/platform/obs"
	"fmt"
	"os"
)

// FileRepository serves the order and vehicle master tables from CSV files.
// Files are re-read on every call; a row error fails the listing.
type FileRepository struct {
	OrdersPath   string
	VehiclesPath string
}

func NewFileRepository(ordersPath, vehiclesPath string) *FileRepository {
	return &FileRepository{OrdersPath: ordersPath, VehiclesPath: vehiclesPath}
}

func (f *FileRepository) ListOrders(ctx context.Context) (_ []domain.Order, err error) {
	defer obs.Time(ctx, "csv.ListOrders")(&err)

	file, err := os.Open(f.OrdersPath)
	if err != nil {
		return nil, fmt.Errorf("list orders: open %q: %w", f.OrdersPath, err)
	}
	defer file.Close()

	orders, err := ReadOrders(file)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (f *FileRepository) ListVehicles(ctx context.Context) (_ []domain.Vehicle, err error) {
	defer obs.Time(ctx, "csv.ListVehicles")(&err)

	file, err := os.Open(f.VehiclesPath)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: open %q: %w", f.VehiclesPath, err)
	}
	defer file.Close()

	vehicles, err := ReadVehicles(file)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return vehicles, nil
}

// ReadRoutesFile reads an optimizer route table from disk.
func ReadRoutesFile(path string) ([]domain.RouteStop, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read routes: open %q: %w", path, err)
	}
	defer file.Close()

	return ReadRoutes(file)
}
