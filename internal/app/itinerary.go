package app

import (
	"delivery-itinerary-service/internal/config"
	"delivery-itinerary-service/internal/services"
	"delivery-itinerary-service/internal/timeconv"
	"fmt"
)

// NewAggregator builds the reconstruction stack from itinerary settings.
func NewAggregator(cfg config.ItineraryConfig) (*services.Aggregator, error) {
	conv, err := timeconv.NewConverter(cfg.ReferenceDate, cfg.TimeLayout)
	if err != nil {
		return nil, fmt.Errorf("new aggregator: %w", err)
	}
	return services.NewAggregator(services.NewReconstructor(conv, cfg.Workers)), nil
}
