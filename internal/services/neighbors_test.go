package services

import (
	"math"
	"testing"
	"wind-route-service/internal/domain"
)

func TestAppendNeighbors(t *testing.T) {
	grid := testGrid(4, 5)
	mask := domain.AllNavigable(4, 5).WithBlocked(domain.GridPoint{X: 1, Y: 2})

	cases := []struct {
		name string
		p    domain.GridPoint
		want int
	}{
		{"corner", domain.GridPoint{X: 0, Y: 0}, 3},
		{"edge next to blocked cell", domain.GridPoint{X: 0, Y: 3}, 4},
		{"interior", domain.GridPoint{X: 2, Y: 3}, 7},
		{"far corner", domain.GridPoint{X: 3, Y: 4}, 3},
	}

	for _, tc := range cases {
		got := appendNeighbors(nil, grid, mask, tc.p)
		if len(got) != tc.want {
			t.Fatalf("%s: expected %d neighbours of %s, got %d (%v)", tc.name, tc.want, tc.p, len(got), got)
		}
		for _, n := range got {
			if n == tc.p {
				t.Fatalf("%s: %s listed as its own neighbour", tc.name, tc.p)
			}
			if n == (domain.GridPoint{X: 1, Y: 2}) {
				t.Fatalf("%s: blocked cell returned", tc.name)
			}
		}
	}
}

func TestAppendNeighborsOrderIsStable(t *testing.T) {
	grid := testGrid(3, 3)
	mask := domain.AllNavigable(3, 3)

	got := appendNeighbors(nil, grid, mask, domain.GridPoint{X: 1, Y: 1})
	want := []domain.GridPoint{
		{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2},
		{X: 1, Y: 0}, {X: 1, Y: 2},
		{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d neighbours, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("neighbour %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestEdgeCost(t *testing.T) {
	grid := testGrid(3, 3)
	f := testForecast(t, grid, domain.WindVector{U: 5}, nil)
	a, b := domain.GridPoint{X: 0, Y: 0}, domain.GridPoint{X: 0, Y: 1}

	if c := edgeCost(f, distanceVessel(), a, a); !math.IsInf(c, 1) {
		t.Fatalf("expected +Inf for a self move, got %g", c)
	}

	want := grid.ToGeo(a).DistanceTo(grid.ToGeo(b))
	if c := edgeCost(f, distanceVessel(), a, b); math.Abs(c-want) > 1e-9 {
		t.Fatalf("expected %g, got %g", want, c)
	}

	// The wind handed to the model is in the frame of the leg: an eastward
	// leg under an eastward wind sees a pure tailwind.
	var seen domain.WindVector
	probe := domain.VesselProfile{
		Name:               "probe",
		AverageSpeed:       1,
		AverageCostPerHour: 1,
		Model: domain.CostFunc(func(d float64, w domain.WindVector) float64 {
			seen = w
			return d
		}),
	}
	edgeCost(f, probe, a, b)
	if math.Abs(seen.U-5) > 1e-2 || math.Abs(seen.V) > 1e-2 {
		t.Fatalf("expected tailwind (5, 0), got (%g, %g)", seen.U, seen.V)
	}
}

func TestHeuristicVanishesAtGoal(t *testing.T) {
	grid := testGrid(3, 3)
	f := testForecast(t, grid, domain.WindVector{}, nil)
	goal := domain.GridPoint{X: 2, Y: 2}

	if h := heuristic(f, distanceVessel(), goal, goal); h != 0 {
		t.Fatalf("expected zero at goal, got %g", h)
	}
	if h := heuristic(f, distanceVessel(), domain.GridPoint{}, goal); !(h > 0) {
		t.Fatalf("expected positive estimate, got %g", h)
	}
}
