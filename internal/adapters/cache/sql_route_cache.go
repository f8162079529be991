package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
	"wind-route-service/internal/domain"
	"wind-route-service/internal/platform/obs"
)

// SQLRouteCache is a SQL-backed cache of finished route searches, keyed by
// an opaque string built by the caller. Entries older than TTL are ignored;
// a zero TTL keeps them forever.
type SQLRouteCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSQLRouteCache(db *sql.DB, ttl time.Duration) *SQLRouteCache {
	return &SQLRouteCache{DB: db, TTL: ttl}
}

// notBefore is the oldest created_at still served, or NULL without a TTL.
func notBefore(now time.Time, ttl time.Duration) sql.NullTime {
	if ttl <= 0 {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: now.Add(-ttl), Valid: true}
}

// encodeSolution returns the JSON columns and the nullable total cost.
func encodeSolution(sol *domain.Solution) (path, waypoints []byte, total sql.NullFloat64, err error) {
	cells := make([][2]int, len(sol.Path))
	for i, p := range sol.Path {
		cells[i] = [2]int{p.X, p.Y}
	}
	if path, err = json.Marshal(cells); err != nil {
		return nil, nil, total, err
	}

	coords := make([][2]float64, len(sol.Waypoints))
	for i, c := range sol.Waypoints {
		coords[i] = [2]float64{c.Lat, c.Lon}
	}
	if waypoints, err = json.Marshal(coords); err != nil {
		return nil, nil, total, err
	}

	if !math.IsInf(sol.TotalCost, 0) && !math.IsNaN(sol.TotalCost) {
		total = sql.NullFloat64{Float64: sol.TotalCost, Valid: true}
	}
	return path, waypoints, total, nil
}

func decodeSolution(status string, path, waypoints []byte, total sql.NullFloat64, distance float64, expanded int, elapsedMS int64) (*domain.Solution, error) {
	var cells [][2]int
	if err := json.Unmarshal(path, &cells); err != nil {
		return nil, fmt.Errorf("decode path: %w", err)
	}
	var coords [][2]float64
	if err := json.Unmarshal(waypoints, &coords); err != nil {
		return nil, fmt.Errorf("decode waypoints: %w", err)
	}

	sol := &domain.Solution{
		Status:         domain.SolutionStatus(status),
		Path:           make([]domain.GridPoint, len(cells)),
		Waypoints:      make([]domain.GeoCoordinate, len(coords)),
		TotalCost:      math.Inf(1),
		DistanceMeters: distance,
		Stats: domain.SearchStats{
			Expanded: expanded,
			Elapsed:  time.Duration(elapsedMS) * time.Millisecond,
		},
	}
	for i, c := range cells {
		sol.Path[i] = domain.GridPoint{X: c[0], Y: c[1]}
	}
	for i, c := range coords {
		sol.Waypoints[i] = domain.GeoCoordinate{Lat: c[0], Lon: c[1]}
	}
	if total.Valid {
		sol.TotalCost = total.Float64
	}
	return sol, nil
}

// Fetch the cached solution for key.
func (s *SQLRouteCache) Get(ctx context.Context, key string) (_ *domain.Solution, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("route cache: db is nil")
	}
	if key == "" {
		return nil, false, errors.New("get route cache: key must not be empty")
	}

	q := `
	SELECT status, path, waypoints, total_cost, distance_meters, expanded, elapsed_ms
	FROM route_cache
	WHERE cache_key = $1
	  AND ($2::timestamptz IS NULL OR created_at >= $2);
	`

	var (
		status          string
		path, waypoints []byte
		total           sql.NullFloat64
		distance        float64
		expanded        int
		elapsedMS       int64
	)
	err = s.DB.QueryRowContext(ctx, q, key, notBefore(time.Now(), s.TTL)).Scan(&status, &path, &waypoints, &total, &distance, &expanded, &elapsedMS)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	sol, err := decodeSolution(status, path, waypoints, total, distance, expanded, elapsedMS)
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: %w", err)
	}
	return sol, true, nil
}

// Store a solution under key, replacing any previous entry.
func (s *SQLRouteCache) Put(ctx context.Context, key string, sol *domain.Solution) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}
	if sol == nil {
		return errors.New("insert route cache: solution is nil")
	}

	path, waypoints, total, err := encodeSolution(sol)
	if err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO route_cache (cache_key, status, path, waypoints, total_cost, distance_meters, expanded, elapsed_ms)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (cache_key) DO UPDATE
	SET status = EXCLUDED.status,
		path = EXCLUDED.path,
		waypoints = EXCLUDED.waypoints,
		total_cost = EXCLUDED.total_cost,
		distance_meters = EXCLUDED.distance_meters,
		expanded = EXCLUDED.expanded,
		elapsed_ms = EXCLUDED.elapsed_ms,
		created_at = now();
	`, key, string(sol.Status), path, waypoints, total, sol.DistanceMeters, sol.Stats.Expanded, sol.Stats.Elapsed.Milliseconds())
	if err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
