package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func GetFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return f, nil
}

func GetBool(key string, fallback bool) (bool, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}

// GetDuration accepts Go duration strings ("90s", "1h30m"). A bare "0" is
// also accepted and means zero.
func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

// Config is the process configuration shared by the commands.
type Config struct {
	Port     string
	LogLevel string
	LogFile  string

	ForecastSource   string
	KSGMetBaseURL    string
	ForecastCacheDir string
	ForecastCacheTTL time.Duration
	ForecastCycle    time.Duration

	MaskPath          string
	MaskLandThreshold int

	DatabaseURL    string
	VesselSeedPath string
	RouteCacheTTL  time.Duration

	MaxExpansions   int
	TimeBudget      time.Duration
	HeuristicWeight float64
}

const (
	SourceKSGMet = "ksgmet"
	SourceFile   = "file"
)

// Load reads Config from the environment. Call godotenv.Load first if a
// .env file should be honoured.
func Load() (Config, error) {
	c := Config{
		Port:             Get("PORT", "8080"),
		LogLevel:         strings.ToLower(Get("LOG_LEVEL", "info")),
		LogFile:          Get("LOG_FILE", ""),
		ForecastSource:   strings.ToLower(Get("FORECAST_SOURCE", SourceKSGMet)),
		KSGMetBaseURL:    strings.TrimRight(Get("KSGMET_BASE_URL", "http://ksgmet.eti.pg.gda.pl/prognozy/CSV/poland"), "/"),
		ForecastCacheDir: Get("FORECAST_CACHE_DIR", "data/forecasts"),
		MaskPath:         Get("MASK_PATH", ""),
		DatabaseURL:      Get("DATABASE_URL", ""),
		VesselSeedPath:   Get("VESSEL_SEED_PATH", "data/seeds/vessels.json"),
	}

	var err error
	if c.ForecastCacheTTL, err = GetDuration("FORECAST_CACHE_TTL", time.Hour); err != nil {
		return Config{}, err
	}
	if c.ForecastCycle, err = GetDuration("FORECAST_CYCLE", time.Hour); err != nil {
		return Config{}, err
	}
	if c.RouteCacheTTL, err = GetDuration("ROUTE_CACHE_TTL", 6*time.Hour); err != nil {
		return Config{}, err
	}
	if c.MaskLandThreshold, err = GetInt("MASK_LAND_THRESHOLD", 1); err != nil {
		return Config{}, err
	}
	if c.MaxExpansions, err = GetInt("SEARCH_MAX_EXPANSIONS", 0); err != nil {
		return Config{}, err
	}
	if c.TimeBudget, err = GetDuration("SEARCH_TIME_BUDGET", 0); err != nil {
		return Config{}, err
	}
	if c.HeuristicWeight, err = GetFloat("HEURISTIC_WEIGHT", 1); err != nil {
		return Config{}, err
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch c.ForecastSource {
	case SourceKSGMet, SourceFile:
	default:
		return fmt.Errorf("config: FORECAST_SOURCE must be %q or %q, got %q", SourceKSGMet, SourceFile, c.ForecastSource)
	}
	if c.HeuristicWeight < 0 || math.IsNaN(c.HeuristicWeight) || math.IsInf(c.HeuristicWeight, 0) {
		return fmt.Errorf("config: HEURISTIC_WEIGHT must be finite and non-negative, got %g", c.HeuristicWeight)
	}
	if c.RouteCacheTTL <= 0 {
		return fmt.Errorf("config: ROUTE_CACHE_TTL must be positive, got %s", c.RouteCacheTTL)
	}
	if c.ForecastCycle <= 0 {
		return fmt.Errorf("config: FORECAST_CYCLE must be positive, got %s", c.ForecastCycle)
	}
	return nil
}
