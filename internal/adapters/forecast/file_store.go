package forecast

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
	"wind-route-service/internal/domain"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	SourceFile = "file"

	snapshotVersion = 2
	snapshotExt     = ".msgpack.zst"
)

// snapshot is the on-disk form of a forecast: msgpack, zstd compressed.
type snapshot struct {
	Version  int         `msgpack:"version"`
	Source   string      `msgpack:"source"`
	ValidAt  time.Time   `msgpack:"valid_at"`
	Lat0     float64     `msgpack:"lat0"`
	Lon0     float64     `msgpack:"lon0"`
	LatStep  float64     `msgpack:"lat_step"`
	LonStep  float64     `msgpack:"lon_step"`
	LatCount int         `msgpack:"lat_count"`
	LonCount int         `msgpack:"lon_count"`
	U        [][]float64 `msgpack:"u"`
	V        [][]float64 `msgpack:"v"`
	Mask     [][]bool    `msgpack:"mask,omitempty"`
}

func snapshotOf(f *domain.Forecast) snapshot {
	u, v := f.Wind.Components()
	return snapshot{
		Version:  snapshotVersion,
		Source:   f.Source,
		ValidAt:  f.ValidAt.UTC(),
		Lat0:     f.Grid.Origin.Lat,
		Lon0:     f.Grid.Origin.Lon,
		LatStep:  f.Grid.LatStep,
		LonStep:  f.Grid.LonStep,
		LatCount: f.Grid.LatCount,
		LonCount: f.Grid.LonCount,
		U:        u,
		V:        v,
		Mask:     f.Mask.Rows(),
	}
}

func (s snapshot) forecast() (*domain.Forecast, error) {
	if s.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}

	grid := domain.GridMapping{
		Origin:   domain.GeoCoordinate{Lat: s.Lat0, Lon: s.Lon0},
		LatStep:  s.LatStep,
		LonStep:  s.LonStep,
		LatCount: s.LatCount,
		LonCount: s.LonCount,
	}
	wind, err := domain.NewWindFieldFromComponents(s.U, s.V)
	if err != nil {
		return nil, err
	}

	var mask *domain.NavigabilityMask
	if len(s.Mask) > 0 {
		if mask, err = domain.NewMask(s.Mask); err != nil {
			return nil, err
		}
	}

	return domain.NewForecast(grid, wind, mask, s.ValidAt.UTC(), s.Source)
}

// FileStore keeps forecast snapshots on local disk, one file per forecast
// hour at <dir>/<YYYY>/<MM>/<DD>/<HH>.msgpack.zst. It implements both
// ForecastStore and ForecastProvider, the latter serving only what was saved.
type FileStore struct {
	dir   string
	cycle time.Duration
}

func NewFileStore(dir string, cycle time.Duration) *FileStore {
	if cycle <= 0 {
		cycle = time.Hour
	}
	return &FileStore{dir: dir, cycle: cycle}
}

// Path is where the snapshot covering at lives.
func (s *FileStore) Path(at time.Time) string {
	t := at.UTC().Truncate(s.cycle)
	return filepath.Join(s.dir,
		fmt.Sprintf("%04d", t.Year()),
		fmt.Sprintf("%02d", int(t.Month())),
		fmt.Sprintf("%02d", t.Day()),
		fmt.Sprintf("%02d%s", t.Hour(), snapshotExt),
	)
}

func (s *FileStore) GetForecast(ctx context.Context, at time.Time) (*domain.Forecast, error) {
	return s.Load(ctx, at)
}

func (s *FileStore) Load(ctx context.Context, at time.Time) (*domain.Forecast, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.Path(at)
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: no cached forecast for %s", domain.ErrDataUnavailable, at.UTC().Truncate(s.cycle).Format(time.RFC3339))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrDataUnavailable, path, err)
	}
	defer file.Close()

	zr, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create zstd reader: %w", domain.ErrDataUnavailable, err)
	}
	defer zr.Close()

	var snap snapshot
	if err := msgpack.NewDecoder(zr).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrDataUnavailable, path, err)
	}

	f, err := snap.forecast()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDataUnavailable, path, err)
	}
	return f, nil
}

// Save writes f atomically, replacing any snapshot for the same hour.
func (s *FileStore) Save(ctx context.Context, f *domain.Forecast) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := f.Validate(); err != nil {
		return fmt.Errorf("save forecast: %w", err)
	}

	path := s.Path(f.ValidAt)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save forecast: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("save forecast: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	zw, err := zstd.NewWriter(tmp, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("save forecast: failed to create zstd writer: %w", err)
	}
	if err := msgpack.NewEncoder(zw).Encode(snapshotOf(f)); err != nil {
		zw.Close()
		return fmt.Errorf("save forecast: encode: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("save forecast: failed to close zstd writer: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save forecast: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save forecast: %w", err)
	}
	return nil
}
