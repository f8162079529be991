package handlers

import (
	"net/http"
	"wind-route-service/internal/api/dto"
	"wind-route-service/internal/ports"
)

// VesselHandler exposes read-only vessel retrieval endpoints.
type VesselHandler struct {
	Repo ports.VesselRepository
}

func (h *VesselHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	vessels, err := h.Repo.ListVessels(r.Context())
	if err != nil {
		writeDomainError(w, r, "list vessels", err)
		return
	}

	res := dto.ListVesselsResponse{
		Vessels: make([]dto.VesselResponse, 0, len(vessels)),
	}
	for _, v := range vessels {
		res.Vessels = append(res.Vessels, dto.VesselResponse{
			Name:         v.Name,
			Kind:         string(v.Kind),
			AverageSpeed: v.AverageSpeed,
			CostPerHour:  v.CostPerHour,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
