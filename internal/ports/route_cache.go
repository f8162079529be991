package ports

import (
	"context"
	"wind-route-service/internal/domain"
)

// Contract for memoizing finished route searches.
type RouteCache interface {
	// Return the cached solution for key; ok is false on a miss.
	Get(ctx context.Context, key string) (sol *domain.Solution, ok bool, err error)
	Put(ctx context.Context, key string, sol *domain.Solution) error
}
