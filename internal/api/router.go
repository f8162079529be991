package api

import (
	"net/http"
	"wind-route-service/internal/api/handlers"
	"wind-route-service/internal/ports"
	"wind-route-service/internal/services"
)

// Dependencies are the ports the HTTP layer is wired to. Routes may be nil.
type Dependencies struct {
	Forecasts ports.ForecastProvider
	Vessels   ports.VesselRepository
	Routes    ports.RouteCache
	Search    services.SearchSettings
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	forecastHandler := &handlers.ForecastHandler{Provider: deps.Forecasts}
	vesselHandler := &handlers.VesselHandler{Repo: deps.Vessels}
	solveHandler := &handlers.SolveHandler{
		Provider: deps.Forecasts,
		Vessels:  deps.Vessels,
		Routes:   deps.Routes,
		Settings: deps.Search,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api/forecast/meta", forecastHandler.Meta)
	mux.HandleFunc("/api/vessels", vesselHandler.List)
	mux.HandleFunc("/api/solve", solveHandler.Solve)

	return requestIDMiddleware(loggingMiddleware(corsMiddleware(mux)))
}
