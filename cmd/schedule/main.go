// Command schedule prints upcoming LoL esports matches from the schedule
// API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"oecli/internal/config"
	"oecli/internal/infrastructure"
	"oecli/internal/schedule"
)

func main() {
	page := flag.Int("page", 1, "result page to fetch")
	envFile := flag.String("env", "", "path to a .env file with the API token")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())

	client := schedule.NewClient(cfg.Schedule, logger)
	matches, err := client.UpcomingMatches(ctx, *page)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to fetch upcoming matches", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Fetched upcoming matches", "count", len(matches))

	for _, m := range matches {
		fmt.Printf("%s | %s | %s\n",
			m.BeginAt.Format("2006-01-02 15:04"),
			m.League.Name,
			m.Name,
		)
	}
}
