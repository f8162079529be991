package repositories

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"wind-route-service/internal/domain"
)

// BuiltinFleet is used when no database is configured.
var BuiltinFleet = []domain.VesselSpec{
	{Name: domain.DefaultVesselName, Kind: domain.VesselSail, AverageSpeed: 3, CostPerHour: 50, AuxSpeed: 1.5},
	{Name: "racing-yacht", Kind: domain.VesselSail, AverageSpeed: 5, CostPerHour: 120, MaxSpeed: 9, WindRatio: 0.7, NoGoAngleDeg: 40, AuxSpeed: 2},
	{Name: "motor-cruiser", Kind: domain.VesselMotor, AverageSpeed: 8, CostPerHour: 200, Windage: 0.1},
	{Name: "great-circle", Kind: domain.VesselDistance, AverageSpeed: 1, CostPerHour: 3600},
}

// In-memory implementation of the VesselRepository port.
type MemoryVesselRepository struct {
	vessels map[string]domain.VesselSpec
}

func NewMemoryVesselRepository(specs []domain.VesselSpec) *MemoryVesselRepository {
	m := make(map[string]domain.VesselSpec, len(specs))
	for _, s := range specs {
		m[s.Name] = s
	}
	return &MemoryVesselRepository{vessels: m}
}

func (r *MemoryVesselRepository) ListVessels(ctx context.Context) ([]domain.VesselSpec, error) {
	out := slices.Collect(maps.Values(r.vessels))
	domain.SortVesselSpecs(out)
	return out, nil
}

func (r *MemoryVesselRepository) GetVessel(ctx context.Context, name string) (domain.VesselSpec, error) {
	v, ok := r.vessels[name]
	if !ok {
		return domain.VesselSpec{}, fmt.Errorf("get vessel: %w: %q", domain.ErrUnknownVessel, name)
	}
	return v, nil
}
