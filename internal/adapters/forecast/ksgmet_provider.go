package forecast

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"wind-route-service/internal/domain"
	"wind-route-service/internal/platform/obs"

	"golang.org/x/sync/errgroup"
)

const (
	SourceKSGMet = "ksgmet"

	metadataFile = "current.nfo"
	uWindFile    = "U_WIND_ON_10M.csv"
	vWindFile    = "V_WIND_ON_10M.csv"
)

// KSGMetProvider implements ForecastProvider against the KSGMet CSV archive.
//
// For a requested time it downloads the yearly grid metadata and then the U
// and V wind components of the matching forecast hour in parallel. Every
// failure is reported as domain.ErrDataUnavailable.
//
// The provider is safe for concurrent use.
type KSGMetProvider struct {
	session     *http.Client
	baseURL     string
	cycle       time.Duration
	backoff     time.Duration
	maxAttempts int
}

type KSGMetOption func(*KSGMetProvider)

func WithHTTPClient(c *http.Client) KSGMetOption {
	return func(k *KSGMetProvider) { k.session = c }
}

// WithRetry sets the number of attempts per file and the initial backoff.
func WithRetry(attempts int, backoff time.Duration) KSGMetOption {
	return func(k *KSGMetProvider) {
		k.maxAttempts = max(attempts, 1)
		k.backoff = backoff
	}
}

// WithCycle sets the forecast cycle requested times are truncated to.
func WithCycle(cycle time.Duration) KSGMetOption {
	return func(k *KSGMetProvider) {
		if cycle > 0 {
			k.cycle = cycle
		}
	}
}

func NewKSGMetProvider(baseURL string, opts ...KSGMetOption) (*KSGMetProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("ksgmet base url is empty")
	}

	k := &KSGMetProvider{
		session:     &http.Client{Timeout: 30 * time.Second},
		baseURL:     baseURL,
		cycle:       time.Hour,
		backoff:     200 * time.Millisecond,
		maxAttempts: 4,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

// ValidTime is the forecast hour that covers at.
func (k *KSGMetProvider) ValidTime(at time.Time) time.Time {
	return at.UTC().Truncate(k.cycle)
}

func (k *KSGMetProvider) metadataURL(valid time.Time) string {
	return fmt.Sprintf("%s/%d/%s", k.baseURL, valid.Year(), metadataFile)
}

func (k *KSGMetProvider) componentURL(valid time.Time, file string) string {
	return fmt.Sprintf("%s/%d/%d/%d/%d/%s",
		k.baseURL, valid.Year(), int(valid.Month()), valid.Day(), valid.Hour(), file)
}

func (k *KSGMetProvider) GetForecast(ctx context.Context, at time.Time) (f *domain.Forecast, err error) {
	defer obs.Time(ctx, "ksgmet get forecast")(&err)

	valid := k.ValidTime(at)
	stamp := valid.Format(time.RFC3339)

	meta, err := k.fetch(ctx, k.metadataURL(valid))
	if err != nil {
		return nil, fmt.Errorf("%w: ksgmet metadata for %s: %w", domain.ErrDataUnavailable, stamp, err)
	}
	grid, err := parseMetadata(bytes.NewReader(meta))
	if err != nil {
		return nil, fmt.Errorf("%w: ksgmet metadata for %s: %w", domain.ErrDataUnavailable, stamp, err)
	}

	var u, v [][]float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		u, err = k.component(gctx, valid, uWindFile, grid)
		return err
	})
	g.Go(func() error {
		var err error
		v, err = k.component(gctx, valid, vWindFile, grid)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: ksgmet wind for %s: %w", domain.ErrDataUnavailable, stamp, err)
	}

	wind, err := domain.NewWindFieldFromComponents(u, v)
	if err != nil {
		return nil, fmt.Errorf("%w: ksgmet wind for %s: %w", domain.ErrDataUnavailable, stamp, err)
	}

	f, err = domain.NewForecast(grid, wind, nil, valid, SourceKSGMet)
	if err != nil {
		return nil, fmt.Errorf("%w: ksgmet forecast for %s: %w", domain.ErrDataUnavailable, stamp, err)
	}
	return f, nil
}

func (k *KSGMetProvider) component(ctx context.Context, valid time.Time, file string, grid domain.GridMapping) ([][]float64, error) {
	b, err := k.fetch(ctx, k.componentURL(valid, file))
	if err != nil {
		return nil, err
	}
	rows, err := parseComponent(bytes.NewReader(b), grid.LatCount, grid.LonCount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return rows, nil
}
