package handlers

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"time"
	"wind-route-service/internal/api/dto"
	"wind-route-service/internal/domain"
	"wind-route-service/internal/ports"
	"wind-route-service/internal/services"
)

type SolveHandler struct {
	Provider ports.ForecastProvider
	Vessels  ports.VesselRepository
	Routes   ports.RouteCache
	Settings services.SearchSettings
}

func validCoordinate(c dto.Coordinate) bool {
	if c.Lat == nil || c.Lon == nil {
		return false
	}
	lat, lon := *c.Lat, *c.Lon
	return !math.IsNaN(lat) && !math.IsNaN(lon) && lat >= -90 && lat <= 90 && lon >= -180 && lon <= 360
}

// Solve computes the cheapest route for one vessel between two coordinates
// under the forecast valid at departure.
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.SolveRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if !validCoordinate(req.Origin) {
		writeError(w, r, http.StatusBadRequest, "origin must have valid lat and lon")
		return
	}
	if !validCoordinate(req.Goal) {
		writeError(w, r, http.StatusBadRequest, "goal must have valid lat and lon")
		return
	}

	depart := time.Now()
	if req.DepartAt != nil {
		depart = *req.DepartAt
	}

	svcReq := services.PlanVoyageRequest{
		Origin:   domain.GeoCoordinate{Lat: *req.Origin.Lat, Lon: *req.Origin.Lon},
		Goal:     domain.GeoCoordinate{Lat: *req.Goal.Lat, Lon: *req.Goal.Lon},
		Vessel:   req.Vessel,
		DepartAt: depart,
	}

	plan, err := services.PlanVoyage(r.Context(), svcReq, h.Provider, h.Vessels, h.Routes, h.Settings)
	if err != nil {
		writeDomainError(w, r, "plan voyage", err)
		return
	}

	sol := plan.Solution
	res := dto.SolveResponse{
		Status:         string(sol.Status),
		Vessel:         plan.Vessel.Name,
		ForecastValid:  plan.Forecast.ValidAt,
		ForecastSource: plan.Forecast.Source,
		Path:           make([][2]int, 0, len(sol.Path)),
		Waypoints:      make([]dto.WaypointResponse, 0, len(sol.Waypoints)),
		DistanceMeters: sol.DistanceMeters,
		Expanded:       sol.Stats.Expanded,
		ElapsedMS:      sol.Stats.Elapsed.Milliseconds(),
		Cached:         plan.Cached,
	}
	for _, p := range sol.Path {
		res.Path = append(res.Path, [2]int{p.X, p.Y})
	}
	for _, c := range sol.Waypoints {
		res.Waypoints = append(res.Waypoints, dto.WaypointResponse{Lat: c.Lat, Lon: c.Lon})
	}
	if sol.Found() {
		cost := sol.TotalCost
		res.TotalCost = &cost
	}

	writeJSON(w, r, http.StatusOK, res)
}
