package dto

import "time"

type ForecastMetaResponse struct {
	Source    string           `json:"source"`
	ValidAt   time.Time        `json:"valid_at"`
	Origin    WaypointResponse `json:"origin"`
	LatStep   float64          `json:"lat_step"`
	LonStep   float64          `json:"lon_step"`
	LatCount  int              `json:"lat_count"`
	LonCount  int              `json:"lon_count"`
	SouthWest WaypointResponse `json:"south_west"`
	NorthEast WaypointResponse `json:"north_east"`
}
