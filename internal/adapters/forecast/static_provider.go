package forecast

import (
	"context"
	"fmt"
	"time"
	"wind-route-service/internal/domain"
)

// StaticProvider serves one fixed snapshot for every requested time.
type StaticProvider struct {
	f *domain.Forecast
}

func NewStaticProvider(f *domain.Forecast) *StaticProvider {
	return &StaticProvider{f: f}
}

func (p *StaticProvider) GetForecast(ctx context.Context, at time.Time) (*domain.Forecast, error) {
	if p.f == nil {
		return nil, fmt.Errorf("%w: static provider has no forecast", domain.ErrDataUnavailable)
	}
	return p.f, nil
}
