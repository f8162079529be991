package forecast

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"wind-route-service/internal/domain"
	"wind-route-service/internal/ports"
)

// LoadMaskCSV reads an integer raster (one grid row per line) and turns it
// into a navigability mask: values at or above landThreshold are land.
func LoadMaskCSV(path string, landThreshold int) (*domain.NavigabilityMask, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load mask: %w", err)
	}
	defer file.Close()

	m, err := ReadMaskCSV(file, landThreshold)
	if err != nil {
		return nil, fmt.Errorf("load mask %s: %w", path, err)
	}
	return m, nil
}

func ReadMaskCSV(r io.Reader, landThreshold int) (*domain.NavigabilityMask, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var raster [][]int
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make([]int, len(rec))
		for j, field := range rec {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", len(raster)+1, j+1, err)
			}
			row[j] = v
		}
		raster = append(raster, row)
	}
	return domain.MaskFromRaster(raster, landThreshold)
}

// MaskedProvider applies a fixed navigability mask to every snapshot of the
// wrapped provider.
type MaskedProvider struct {
	next ports.ForecastProvider
	mask *domain.NavigabilityMask
}

func WithMask(next ports.ForecastProvider, mask *domain.NavigabilityMask) *MaskedProvider {
	return &MaskedProvider{next: next, mask: mask}
}

func (p *MaskedProvider) GetForecast(ctx context.Context, at time.Time) (*domain.Forecast, error) {
	f, err := p.next.GetForecast(ctx, at)
	if err != nil {
		return nil, err
	}
	masked, err := f.WithMask(p.mask)
	if err != nil {
		return nil, fmt.Errorf("%w: mask does not fit forecast grid: %w", domain.ErrDataUnavailable, err)
	}
	return masked, nil
}
