package handlers

import (
	"net/http"
	"time"
	"wind-route-service/internal/api/dto"
	"wind-route-service/internal/ports"
)

// ForecastHandler describes the forecast grid currently served.
type ForecastHandler struct {
	Provider ports.ForecastProvider
}

func (h *ForecastHandler) Meta(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	at := time.Now()
	if v := r.URL.Query().Get("at"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "at must be an RFC 3339 timestamp")
			return
		}
		at = t
	}

	f, err := h.Provider.GetForecast(r.Context(), at)
	if err != nil {
		writeDomainError(w, r, "forecast meta", err)
		return
	}

	sw, ne := f.Grid.Bounds()
	writeJSON(w, r, http.StatusOK, dto.ForecastMetaResponse{
		Source:    f.Source,
		ValidAt:   f.ValidAt,
		Origin:    dto.WaypointResponse{Lat: f.Grid.Origin.Lat, Lon: f.Grid.Origin.Lon},
		LatStep:   f.Grid.LatStep,
		LonStep:   f.Grid.LonStep,
		LatCount:  f.Grid.LatCount,
		LonCount:  f.Grid.LonCount,
		SouthWest: dto.WaypointResponse{Lat: sw.Lat, Lon: sw.Lon},
		NorthEast: dto.WaypointResponse{Lat: ne.Lat, Lon: ne.Lon},
	})
}
