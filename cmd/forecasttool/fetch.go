package main

import (
	"time"
	"wind-route-service/internal/adapters/forecast"
	"wind-route-service/internal/config"

	"github.com/spf13/cobra"
)

func newFetchCmd(cfg *config.Config) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a KSGMet forecast into the local file store",
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := parseAt(at)
			if err != nil {
				return err
			}

			remote, err := forecast.NewKSGMetProvider(cfg.KSGMetBaseURL, forecast.WithCycle(cfg.ForecastCycle))
			if err != nil {
				return err
			}
			store := forecast.NewFileStore(cfg.ForecastCacheDir, cfg.ForecastCycle)

			f, err := remote.GetForecast(cmd.Context(), when)
			if err != nil {
				return err
			}
			if err := store.Save(cmd.Context(), f); err != nil {
				return err
			}

			printf(cmd, "saved %dx%d forecast valid at %s to %s\n",
				f.Grid.LatCount, f.Grid.LonCount, f.ValidAt.Format(time.RFC3339), store.Path(f.ValidAt))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "forecast time, RFC 3339 (default now)")
	return cmd
}

func parseAt(at string) (time.Time, error) {
	if at == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse(time.RFC3339, at)
}
