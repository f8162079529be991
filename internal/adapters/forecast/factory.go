package forecast

import (
	"fmt"
	"time"
	"wind-route-service/internal/ports"
)

// ProviderConfig selects and tunes the forecast source.
type ProviderConfig struct {
	Source            string // SourceKSGMet or SourceFile
	KSGMetBaseURL     string
	CacheDir          string
	CacheTTL          time.Duration
	CacheSize         int
	Cycle             time.Duration
	MaskPath          string
	MaskLandThreshold int
}

// NewProvider builds the provider chain for cfg.
//
// "ksgmet" downloads from the remote archive behind an in-memory cache that
// writes through to the file store; "file" serves previously stored
// snapshots only. A configured mask is applied on top of either.
func NewProvider(cfg ProviderConfig) (ports.ForecastProvider, error) {
	store := NewFileStore(cfg.CacheDir, cfg.Cycle)
	size := cfg.CacheSize
	if size <= 0 {
		size = 24
	}

	var p ports.ForecastProvider
	switch cfg.Source {
	case SourceKSGMet, "":
		remote, err := NewKSGMetProvider(cfg.KSGMetBaseURL, WithCycle(cfg.Cycle))
		if err != nil {
			return nil, fmt.Errorf("new provider: %w", err)
		}
		p = NewCachingProvider(remote, store, size, cfg.CacheTTL, cfg.Cycle)
	case SourceFile:
		p = NewCachingProvider(store, nil, size, cfg.CacheTTL, cfg.Cycle)
	default:
		return nil, fmt.Errorf("new provider: unknown forecast source %q", cfg.Source)
	}

	if cfg.MaskPath != "" {
		mask, err := LoadMaskCSV(cfg.MaskPath, cfg.MaskLandThreshold)
		if err != nil {
			return nil, fmt.Errorf("new provider: %w", err)
		}
		p = WithMask(p, mask)
	}
	return p, nil
}
