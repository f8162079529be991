package repositories

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"wind-route-service/internal/domain"
)

func TestMemoryVesselRepository(t *testing.T) {
	repo := NewMemoryVesselRepository(BuiltinFleet)
	ctx := context.Background()

	list, err := repo.ListVessels(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != len(BuiltinFleet) {
		t.Fatalf("expected %d vessels, got %d", len(BuiltinFleet), len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Name > list[i].Name {
			t.Fatalf("vessels not sorted: %q before %q", list[i-1].Name, list[i].Name)
		}
	}

	v, err := repo.GetVessel(ctx, domain.DefaultVesselName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != domain.VesselSail {
		t.Fatalf("expected default vessel to sail, got %q", v.Kind)
	}

	_, err = repo.GetVessel(ctx, "flying-dutchman")
	if !errors.Is(err, domain.ErrUnknownVessel) {
		t.Fatalf("expected ErrUnknownVessel, got %v", err)
	}
}

func TestBuiltinFleetIsValid(t *testing.T) {
	for _, spec := range BuiltinFleet {
		if _, err := spec.Profile(); err != nil {
			t.Fatalf("vessel %q: %v", spec.Name, err)
		}
	}
}

func TestReadVesselSeeds(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	good := write("good.json", `[
		{"name": " ketch ", "kind": "sail", "average_speed_mps": 3.5, "cost_per_hour": 40},
		{"name": "tug", "kind": "motor", "average_speed_mps": 6, "cost_per_hour": 300, "windage": 0.05}
	]`)
	specs, err := readVesselSeeds(good)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 2 || specs[0].Name != "ketch" || specs[1].Windage != 0.05 {
		t.Fatalf("unexpected specs: %+v", specs)
	}

	cases := map[string]string{
		"empty name":   `[{"name": "", "kind": "sail", "average_speed_mps": 3, "cost_per_hour": 1}]`,
		"duplicate":    `[{"name": "a", "kind": "distance", "average_speed_mps": 1, "cost_per_hour": 1}, {"name": "a", "kind": "distance", "average_speed_mps": 1, "cost_per_hour": 1}]`,
		"bad kind":     `[{"name": "a", "kind": "oars", "average_speed_mps": 1, "cost_per_hour": 1}]`,
		"zero speed":   `[{"name": "a", "kind": "motor", "average_speed_mps": 0, "cost_per_hour": 1}]`,
		"invalid json": `{`,
	}
	for name, body := range cases {
		if _, err := readVesselSeeds(write(name+".json", body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	if _, err := readVesselSeeds(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSQLVesselRepositoryNilDB(t *testing.T) {
	repo := NewSQLVesselRepository(nil)
	if _, err := repo.ListVessels(context.Background()); err == nil {
		t.Fatal("expected error for nil DB")
	}
	if _, err := repo.GetVessel(context.Background(), "x"); err == nil {
		t.Fatal("expected error for nil DB")
	}
	if err := InitSchema(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil DB")
	}
}
