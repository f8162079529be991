package ports

import (
	"context"
	"time"
	"wind-route-service/internal/domain"
)

// Port: persistent storage of forecast snapshots keyed by their valid hour.
type ForecastStore interface {
	Load(ctx context.Context, at time.Time) (*domain.Forecast, error)
	Save(ctx context.Context, f *domain.Forecast) error
}
