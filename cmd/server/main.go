package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"wind-route-service/internal/adapters/cache"
	"wind-route-service/internal/adapters/forecast"
	"wind-route-service/internal/adapters/repositories"
	"wind-route-service/internal/api"
	"wind-route-service/internal/config"
	"wind-route-service/internal/platform/db"
	"wind-route-service/internal/platform/logging"
	"wind-route-service/internal/ports"
	"wind-route-service/internal/services"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (KSGMet or file forecasts, Postgres or in-memory
// vessels and route cache) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, closer, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := forecast.NewProvider(forecast.ProviderConfig{
		Source:            cfg.ForecastSource,
		KSGMetBaseURL:     cfg.KSGMetBaseURL,
		CacheDir:          cfg.ForecastCacheDir,
		CacheTTL:          cfg.ForecastCacheTTL,
		Cycle:             cfg.ForecastCycle,
		MaskPath:          cfg.MaskPath,
		MaskLandThreshold: cfg.MaskLandThreshold,
	})
	if err != nil {
		return err
	}

	vessels, routes, closeDB, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	router := api.NewRouter(api.Dependencies{
		Forecasts: provider,
		Vessels:   vessels,
		Routes:    routes,
		Search: services.SearchSettings{
			HeuristicWeight: cfg.HeuristicWeight,
			MaxExpansions:   cfg.MaxExpansions,
			TimeBudget:      cfg.TimeBudget,
		},
	})

	// Timeouts are tuned for cold-cache requests that download a forecast.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "forecast_source", cfg.ForecastSource)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// openStores picks Postgres-backed vessels and route cache when DATABASE_URL
// is set and in-memory ones otherwise.
func openStores(ctx context.Context, cfg config.Config) (ports.VesselRepository, ports.RouteCache, func(), error) {
	if cfg.DatabaseURL == "" {
		slog.Info("DATABASE_URL not set, using built-in vessels and in-memory route cache")
		return repositories.NewMemoryVesselRepository(repositories.BuiltinFleet),
			cache.NewMemoryRouteCache(1024, cfg.RouteCacheTTL),
			func() {}, nil
	}

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := repositories.InitSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, nil, err
	}
	return repositories.NewSQLVesselRepository(conn), cache.NewSQLRouteCache(conn, cfg.RouteCacheTTL), dbCloser(conn), nil
}

func dbCloser(conn *sql.DB) func() {
	return func() {
		if err := conn.Close(); err != nil {
			slog.Warn("close database", "err", err)
		}
	}
}
