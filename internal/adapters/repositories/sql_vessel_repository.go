package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"wind-route-service/internal/domain"
	"wind-route-service/internal/platform/obs"
)

// Postgres-backed implementation of the VesselRepository port.
type SQLVesselRepository struct{ DB *sql.DB }

func NewSQLVesselRepository(db *sql.DB) *SQLVesselRepository {
	return &SQLVesselRepository{DB: db}
}

const vesselColumns = `
	name, kind, average_speed_mps, cost_per_hour, max_speed_mps,
	wind_ratio, no_go_angle_deg, aux_speed_mps, windage`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVessel(r rowScanner) (domain.VesselSpec, error) {
	var v domain.VesselSpec
	var kind string
	err := r.Scan(&v.Name, &kind, &v.AverageSpeed, &v.CostPerHour, &v.MaxSpeed,
		&v.WindRatio, &v.NoGoAngleDeg, &v.AuxSpeed, &v.Windage)
	v.Kind = domain.VesselKind(kind)
	return v, err
}

// Return all vessels stored in the database, ordered by name.
func (s *SQLVesselRepository) ListVessels(ctx context.Context) (_ []domain.VesselSpec, err error) {
	defer obs.Time(ctx, "vessels.ListVessels")(&err)

	if s.DB == nil {
		return nil, errors.New("sql vessel repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT`+vesselColumns+` FROM vessels ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("list vessels: query vessels table: %w", err)
	}
	defer rows.Close()

	vessels := make([]domain.VesselSpec, 0, 16)
	for rows.Next() {
		v, err := scanVessel(rows)
		if err != nil {
			return nil, fmt.Errorf("list vessels: scan row: %w", err)
		}
		vessels = append(vessels, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vessels: row iteration: %w", err)
	}

	return vessels, nil
}

func (s *SQLVesselRepository) GetVessel(ctx context.Context, name string) (domain.VesselSpec, error) {
	if s.DB == nil {
		return domain.VesselSpec{}, errors.New("sql vessel repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `SELECT`+vesselColumns+` FROM vessels WHERE name = $1;`, name)
	v, err := scanVessel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.VesselSpec{}, fmt.Errorf("get vessel: %w: %q", domain.ErrUnknownVessel, name)
	}
	if err != nil {
		return domain.VesselSpec{}, fmt.Errorf("get vessel %q: %w", name, err)
	}
	return v, nil
}
