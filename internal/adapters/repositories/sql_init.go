package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"wind-route-service/internal/domain"
)

// Initialize the Postgres schema used by the vessel repository and the
// route cache.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createVesselsQuery := `
	CREATE TABLE IF NOT EXISTS vessels (
		name TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		average_speed_mps DOUBLE PRECISION NOT NULL,
		cost_per_hour DOUBLE PRECISION NOT NULL,
		max_speed_mps DOUBLE PRECISION NOT NULL DEFAULT 0,
		wind_ratio DOUBLE PRECISION NOT NULL DEFAULT 0,
		no_go_angle_deg DOUBLE PRECISION NOT NULL DEFAULT 0,
		aux_speed_mps DOUBLE PRECISION NOT NULL DEFAULT 0,
		windage DOUBLE PRECISION NOT NULL DEFAULT 0
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
		cache_key TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		path JSONB NOT NULL,
		waypoints JSONB NOT NULL,
		total_cost DOUBLE PRECISION,
		distance_meters DOUBLE PRECISION NOT NULL,
		expanded INTEGER NOT NULL,
		elapsed_ms BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_route_cache_created_at
	ON route_cache(created_at);
	`

	statements := []string{
		createVesselsQuery,
		createRouteCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// readVesselSeeds loads and validates a JSON array of vessel specs.
func readVesselSeeds(jsonPath string) ([]domain.VesselSpec, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed vessels: read %q: %w", jsonPath, err)
	}

	var data []domain.VesselSpec
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed vessels: parse json: %w", err)
	}

	seen := make(map[string]struct{}, len(data))
	for i := range data {
		data[i].Name = strings.TrimSpace(data[i].Name)
		if data[i].Name == "" {
			return nil, fmt.Errorf("seed vessels: item at index %d: name cannot be empty", i+1)
		}
		if _, dup := seen[data[i].Name]; dup {
			return nil, fmt.Errorf("seed vessels: duplicate name %q", data[i].Name)
		}
		seen[data[i].Name] = struct{}{}

		if _, err := data[i].Profile(); err != nil {
			return nil, fmt.Errorf("seed vessels: item at index %d: %w", i+1, err)
		}
	}
	return data, nil
}

// Populate the vessels table from a JSON file. Existing vessels with the same
// name are replaced.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	if db == nil {
		return errors.New("seed vessels: DB is nil")
	}

	rows, err := readVesselSeeds(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed vessels: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO vessels (
		name, kind, average_speed_mps, cost_per_hour, max_speed_mps,
		wind_ratio, no_go_angle_deg, aux_speed_mps, windage
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (name) DO UPDATE
	SET kind = EXCLUDED.kind,
		average_speed_mps = EXCLUDED.average_speed_mps,
		cost_per_hour = EXCLUDED.cost_per_hour,
		max_speed_mps = EXCLUDED.max_speed_mps,
		wind_ratio = EXCLUDED.wind_ratio,
		no_go_angle_deg = EXCLUDED.no_go_angle_deg,
		aux_speed_mps = EXCLUDED.aux_speed_mps,
		windage = EXCLUDED.windage;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed vessels: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range rows {
		if _, err := stmt.ExecContext(ctx,
			v.Name, string(v.Kind), v.AverageSpeed, v.CostPerHour, v.MaxSpeed,
			v.WindRatio, v.NoGoAngleDeg, v.AuxSpeed, v.Windage,
		); err != nil {
			return fmt.Errorf("seed vessels: insert name=%q: %w", v.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed vessels: commit tx: %w", err)
	}

	return nil
}
