package handlers

import (
	"delivery-itinerary-service/internal/api/dto"
	"delivery-itinerary-service/internal/ports"
	"net/http"
)

// MasterHandler exposes the read-only order and vehicle tables.
type MasterHandler struct {
	Orders   ports.OrderRepository
	Vehicles ports.VehicleRepository
}

func (h *MasterHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListOrders(r.Context())
	if err != nil {
		writeServiceError(w, r, "list orders", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ListOrdersResponse{Orders: orders})
}

func (h *MasterHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Vehicles.ListVehicles(r.Context())
	if err != nil {
		writeServiceError(w, r, "list vehicles", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ListVehiclesResponse{Vehicles: vehicles})
}
