package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"wind-route-service/internal/config"
	"wind-route-service/internal/platform/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:          "forecasttool",
		Short:        "Fetch wind forecasts and solve routes offline",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded

			logger, _, err := logging.New(cfg.LogLevel, "")
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
	}

	root.AddCommand(newFetchCmd(&cfg), newSolveCmd(&cfg))
	return root
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
