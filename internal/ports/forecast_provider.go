package ports

import (
	"context"
	"time"
	"wind-route-service/internal/domain"
)

// Contract for retrieving the wind forecast snapshot valid at a given time.
type ForecastProvider interface {
	// Return the snapshot covering at. Implementations wrap
	// domain.ErrDataUnavailable when no snapshot can be produced.
	GetForecast(ctx context.Context, at time.Time) (*domain.Forecast, error)
}
