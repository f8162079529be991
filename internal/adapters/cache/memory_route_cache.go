package cache

import (
	"context"
	"time"
	"wind-route-service/internal/domain"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryRouteCache keeps solutions in a bounded in-process LRU. It is the
// route cache used when no database is configured.
type MemoryRouteCache struct {
	lru *expirable.LRU[string, *domain.Solution]
}

func NewMemoryRouteCache(size int, ttl time.Duration) *MemoryRouteCache {
	return &MemoryRouteCache{lru: expirable.NewLRU[string, *domain.Solution](max(size, 1), nil, ttl)}
}

func (c *MemoryRouteCache) Get(ctx context.Context, key string) (*domain.Solution, bool, error) {
	sol, ok := c.lru.Get(key)
	return sol, ok, nil
}

func (c *MemoryRouteCache) Put(ctx context.Context, key string, sol *domain.Solution) error {
	c.lru.Add(key, sol)
	return nil
}
