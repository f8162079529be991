package domain

import (
	"fmt"
	"time"
)

// Forecast is a single static wind snapshot: the grid mapping, the wind in
// every cell and the navigability mask. It is shared read-only by any number
// of concurrent route searches.
type Forecast struct {
	Grid    GridMapping
	Wind    *WindField
	Mask    *NavigabilityMask
	ValidAt time.Time
	Source  string
}

// NewForecast assembles and validates a snapshot. A nil mask defaults to
// every cell being navigable.
func NewForecast(grid GridMapping, wind *WindField, mask *NavigabilityMask, validAt time.Time, source string) (*Forecast, error) {
	if mask == nil {
		mask = AllNavigable(grid.LatCount, grid.LonCount)
	}

	f := &Forecast{
		Grid:    grid,
		Wind:    wind,
		Mask:    mask,
		ValidAt: validAt,
		Source:  source,
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks that the wind field and mask match the grid extents exactly.
func (f *Forecast) Validate() error {
	if err := f.Grid.Validate(); err != nil {
		return fmt.Errorf("validate forecast: %w", err)
	}
	if f.Wind == nil {
		return fmt.Errorf("validate forecast: %w: wind field is nil", ErrInvalidGrid)
	}
	if f.Mask == nil {
		return fmt.Errorf("validate forecast: %w: mask is nil", ErrInvalidGrid)
	}

	if lat, lon := f.Wind.Dimensions(); lat != f.Grid.LatCount || lon != f.Grid.LonCount {
		return fmt.Errorf("validate forecast: %w: wind field is %dx%d, grid is %dx%d",
			ErrInvalidGrid, lat, lon, f.Grid.LatCount, f.Grid.LonCount)
	}
	if lat, lon := f.Mask.Dimensions(); lat != f.Grid.LatCount || lon != f.Grid.LonCount {
		return fmt.Errorf("validate forecast: %w: mask is %dx%d, grid is %dx%d",
			ErrInvalidGrid, lat, lon, f.Grid.LatCount, f.Grid.LonCount)
	}
	return nil
}

// WithMask returns a copy of f using mask instead of its current one.
func (f *Forecast) WithMask(mask *NavigabilityMask) (*Forecast, error) {
	return NewForecast(f.Grid, f.Wind, mask, f.ValidAt, f.Source)
}
