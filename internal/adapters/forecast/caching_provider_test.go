package forecast

import (
	"context"
	"errors"
	"testing"
	"time"
	"wind-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls int
	f     *domain.Forecast
	err   error
}

func (p *countingProvider) GetForecast(ctx context.Context, at time.Time) (*domain.Forecast, error) {
	p.calls++
	return p.f, p.err
}

func TestCachingProviderServesFromMemory(t *testing.T) {
	validAt := time.Date(2026, 3, 7, 6, 0, 0, 0, time.UTC)
	next := &countingProvider{f: sampleForecast(t, validAt)}
	c := NewCachingProvider(next, nil, 4, time.Hour, time.Hour)
	ctx := context.Background()

	first, err := c.GetForecast(ctx, validAt.Add(5*time.Minute))
	require.NoError(t, err)
	second, err := c.GetForecast(ctx, validAt.Add(50*time.Minute))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 1, c.Len())

	_, err = c.GetForecast(ctx, validAt.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCachingProviderWritesThrough(t *testing.T) {
	validAt := time.Date(2026, 3, 7, 6, 0, 0, 0, time.UTC)
	store := NewFileStore(t.TempDir(), time.Hour)
	next := &countingProvider{f: sampleForecast(t, validAt)}
	ctx := context.Background()

	_, err := NewCachingProvider(next, store, 4, time.Hour, time.Hour).GetForecast(ctx, validAt)
	require.NoError(t, err)
	assert.FileExists(t, store.Path(validAt))

	// A fresh cache finds the stored snapshot without calling upstream.
	_, err = NewCachingProvider(next, store, 4, time.Hour, time.Hour).GetForecast(ctx, validAt)
	require.NoError(t, err)
	assert.Equal(t, 1, next.calls)
}

func TestCachingProviderDoesNotCacheErrors(t *testing.T) {
	next := &countingProvider{err: domain.ErrDataUnavailable}
	c := NewCachingProvider(next, nil, 4, time.Hour, time.Hour)

	for i := 0; i < 2; i++ {
		_, err := c.GetForecast(context.Background(), time.Now())
		assert.True(t, errors.Is(err, domain.ErrDataUnavailable))
	}
	assert.Equal(t, 2, next.calls)
	assert.Zero(t, c.Len())
}
