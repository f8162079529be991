package dto

import "time"

type Coordinate struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type SolveRequest struct {
	Origin   Coordinate `json:"origin"`
	Goal     Coordinate `json:"goal"`
	Vessel   string     `json:"vessel"`
	DepartAt *time.Time `json:"depart_at"`
}

type WaypointResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type SolveResponse struct {
	Status         string             `json:"status"`
	Vessel         string             `json:"vessel"`
	ForecastValid  time.Time          `json:"forecast_valid_at"`
	ForecastSource string             `json:"forecast_source"`
	Path           [][2]int           `json:"path"`
	Waypoints      []WaypointResponse `json:"waypoints"`
	TotalCost      *float64           `json:"total_cost"`
	DistanceMeters float64            `json:"distance_meters"`
	Expanded       int                `json:"expanded"`
	ElapsedMS      int64              `json:"elapsed_ms"`
	Cached         bool               `json:"cached"`
}
