package ports

import (
	"context"
	"wind-route-service/internal/domain"
)

// Port: a boundary for retrieving vessel descriptions from a data source.
type VesselRepository interface {
	// Retrieve all known vessels, ordered by name.
	ListVessels(ctx context.Context) ([]domain.VesselSpec, error)
	// Retrieve one vessel. Unknown names wrap domain.ErrUnknownVessel.
	GetVessel(ctx context.Context, name string) (domain.VesselSpec, error)
}
