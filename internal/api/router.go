package api

import (
	"delivery-itinerary-service/internal/api/handlers"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(logger zerolog.Logger, master *handlers.MasterHandler, itinerary *handlers.ItineraryHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(loggingMiddleware(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.Health)
	r.Get("/orders", master.ListOrders)
	r.Get("/vehicles", master.ListVehicles)
	r.Post("/matrices", itinerary.Matrices)
	r.Post("/summaries", itinerary.Summaries)
	r.Post("/map-records", itinerary.MapRecords)

	return r
}
