package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"wind-route-service/internal/domain"
	"wind-route-service/internal/platform/obs"
	"wind-route-service/internal/ports"

	"github.com/cespare/xxhash/v2"
)

type PlanVoyageRequest struct {
	Origin   domain.GeoCoordinate
	Goal     domain.GeoCoordinate
	Vessel   string
	DepartAt time.Time
}

// VoyagePlan is a solved route together with the inputs it was solved on.
type VoyagePlan struct {
	Vessel   domain.VesselSpec
	Forecast *domain.Forecast
	Solution *domain.Solution
	Cached   bool
}

// PlanVoyage resolves one route end to end: it looks up the vessel, fetches
// the forecast valid at departure, consults the route cache and runs the
// search. routes may be nil.
//
// Only exhaustive outcomes are cached; a budget-exhausted search depends on
// the budget and is always recomputed.
func PlanVoyage(
	ctx context.Context,
	req PlanVoyageRequest,
	provider ports.ForecastProvider,
	vessels ports.VesselRepository,
	routes ports.RouteCache,
	settings SearchSettings,
	opts ...Option,
) (_ *VoyagePlan, err error) {
	defer obs.Time(ctx, "plan voyage")(&err)

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("plan voyage: %w", err)
	}

	name := strings.TrimSpace(req.Vessel)
	if name == "" {
		name = domain.DefaultVesselName
	}
	spec, err := vessels.GetVessel(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("plan voyage: %w", err)
	}
	profile, err := spec.Profile()
	if err != nil {
		return nil, fmt.Errorf("plan voyage: %w", err)
	}

	departAt := req.DepartAt
	if departAt.IsZero() {
		departAt = time.Now()
	}
	f, err := provider.GetForecast(ctx, departAt)
	if err != nil {
		return nil, fmt.Errorf("plan voyage: get forecast: %w", err)
	}

	origin, err := f.Grid.ToGrid(req.Origin)
	if err != nil {
		return nil, fmt.Errorf("plan voyage: origin: %w", err)
	}
	goal, err := f.Grid.ToGrid(req.Goal)
	if err != nil {
		return nil, fmt.Errorf("plan voyage: goal: %w", err)
	}

	plan := &VoyagePlan{Vessel: spec, Forecast: f}
	key := routeKey(f, origin, goal, spec, settings.HeuristicWeight)

	if routes != nil {
		sol, ok, err := routes.Get(ctx, key)
		if err != nil {
			// Non-fatal: fall through to a fresh search.
			slog.WarnContext(ctx, "route cache read failed", "req_id", obs.RequestID(ctx), "key", key, "err", err)
		} else if ok {
			plan.Solution = sol
			plan.Cached = true
			return plan, nil
		}
	}

	sol, err := Resolve(f, domain.RouteRequest{Origin: req.Origin, Goal: req.Goal, Vessel: profile},
		append(settings.Options(), opts...)...)
	if err != nil {
		return nil, fmt.Errorf("plan voyage: %w", err)
	}
	plan.Solution = sol

	if routes != nil && sol.Status != domain.StatusBudgetExhausted {
		if err := routes.Put(ctx, key, sol); err != nil {
			slog.WarnContext(ctx, "route cache write failed", "req_id", obs.RequestID(ctx), "key", key, "err", err)
		}
	}
	return plan, nil
}

// routeKey identifies a search by everything that determines its result.
// Coordinates are keyed by cell since the search only sees cells. The mask
// and the vessel parameters are fingerprinted so a changed mask or a
// re-seeded fleet never hits a stale entry.
func routeKey(f *domain.Forecast, origin, goal domain.GridPoint, vessel domain.VesselSpec, weight float64) string {
	return fmt.Sprintf("%s|%s|%d,%d|%d,%d|%s|%g|mask:%016x|spec:%016x",
		f.Source, f.ValidAt.UTC().Format(time.RFC3339),
		origin.X, origin.Y, goal.X, goal.Y, vessel.Name, weight,
		maskFingerprint(f.Mask), xxhash.Sum64String(fmt.Sprintf("%+v", vessel)))
}

func maskFingerprint(m *domain.NavigabilityMask) uint64 {
	d := xxhash.New()
	lat, lon := m.Dimensions()
	fmt.Fprintf(d, "%dx%d:", lat, lon)
	row := make([]byte, lon)
	for _, cells := range m.Rows() {
		for y, ok := range cells {
			row[y] = 0
			if ok {
				row[y] = 1
			}
		}
		d.Write(row)
	}
	return d.Sum64()
}
