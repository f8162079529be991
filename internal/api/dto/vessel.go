package dto

type VesselResponse struct {
	Name         string  `json:"name"`
	Kind         string  `json:"kind"`
	AverageSpeed float64 `json:"average_speed_mps"`
	CostPerHour  float64 `json:"cost_per_hour"`
}

type ListVesselsResponse struct {
	Vessels []VesselResponse `json:"vessels"`
}
