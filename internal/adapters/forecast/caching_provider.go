package forecast

import (
	"context"
	"log/slog"
	"time"
	"wind-route-service/internal/domain"
	"wind-route-service/internal/ports"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CachingProvider keeps recently fetched snapshots in memory and, when a
// store is configured, writes every fresh snapshot through to it.
//
// Two callers missing on the same hour may both fetch; the last one to
// finish wins the cache slot. Snapshots are immutable so either is correct.
type CachingProvider struct {
	next  ports.ForecastProvider
	store ports.ForecastStore
	cycle time.Duration
	cache *expirable.LRU[int64, *domain.Forecast]
}

// NewCachingProvider caches up to size snapshots for ttl each. store may be
// nil.
func NewCachingProvider(next ports.ForecastProvider, store ports.ForecastStore, size int, ttl, cycle time.Duration) *CachingProvider {
	if cycle <= 0 {
		cycle = time.Hour
	}
	return &CachingProvider{
		next:  next,
		store: store,
		cycle: cycle,
		cache: expirable.NewLRU[int64, *domain.Forecast](max(size, 1), nil, ttl),
	}
}

func (c *CachingProvider) GetForecast(ctx context.Context, at time.Time) (*domain.Forecast, error) {
	key := at.UTC().Truncate(c.cycle).Unix()
	if f, ok := c.cache.Get(key); ok {
		return f, nil
	}

	if c.store != nil {
		if f, err := c.store.Load(ctx, at); err == nil {
			c.cache.Add(key, f)
			return f, nil
		}
	}

	f, err := c.next.GetForecast(ctx, at)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, f)

	if c.store != nil {
		if err := c.store.Save(ctx, f); err != nil {
			// Non-fatal: the snapshot is still served from memory.
			slog.WarnContext(ctx, "forecast store write failed", "valid_at", f.ValidAt, "err", err)
		}
	}
	return f, nil
}

// Len reports how many snapshots are currently held in memory.
func (c *CachingProvider) Len() int { return c.cache.Len() }
