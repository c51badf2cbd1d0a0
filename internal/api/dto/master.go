package dto

import "delivery-itinerary-service/internal/domain"

type ListOrdersResponse struct {
	Orders []domain.Order `json:"orders"`
}

type ListVehiclesResponse struct {
	Vehicles []domain.Vehicle `json:"vehicles"`
}
