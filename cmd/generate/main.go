// Command generate is the daily data generator: it pulls the configured
// years of match data from object storage, cleans the team and player
// views, enriches them with ratings and fantasy metrics, and publishes the
// interim tables plus flattened current snapshots.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"oecli/internal/config"
	"oecli/internal/exporter"
	"oecli/internal/infrastructure"
	"oecli/internal/modeling"
	"oecli/internal/oracleselixir"
	"oecli/internal/snapshot"
	"oecli/internal/storage"
)

func main() {
	outDir := flag.String("out", "", "output directory (defaults to the configured data dir)")
	yearsFlag := flag.String("years", "", "comma-separated years to pull (defaults to the current and two preceding)")
	format := flag.String("format", "", "snapshot output format: csv or xlsx")
	envFile := flag.String("env", "", "path to a .env file with storage credentials")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *yearsFlag != "" {
		years, err := parseYears(*yearsFlag)
		if err != nil {
			slog.Error("Invalid -years flag", "error", err)
			os.Exit(1)
		}
		cfg.Years = years
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())
	start := time.Now()

	if err := run(ctx, cfg, logger); err != nil {
		logger.ErrorContext(ctx, "Dataset generation failed", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Dataset generated",
		"elapsed", time.Since(start),
		"output_dir", cfg.Output.Dir,
	)
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	teamReplacements, err := config.LoadReplacements(cfg.Output.TeamMappingsFile)
	if err != nil {
		return err
	}
	playerReplacements, err := config.LoadReplacements(cfg.Output.PlayerMappingsFile)
	if err != nil {
		return err
	}

	store, err := storage.New(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}

	raw, err := store.FetchYears(ctx, cfg.Years)
	if err != nil {
		return err
	}

	// Manual data-quality patch: known-bad games never reach cleaning.
	data := oracleselixir.RemoveKnownBadGames(raw)
	logger.InfoContext(ctx, "excluded known-bad games",
		"rows_in", len(raw),
		"rows_out", len(data),
	)

	teams, err := cleanView(ctx, oracleselixir.SplitTeam, data, teamReplacements, playerReplacements, logger)
	if err != nil {
		return err
	}
	players, err := cleanView(ctx, oracleselixir.SplitPlayer, data, teamReplacements, playerReplacements, logger)
	if err != nil {
		return err
	}

	enricher := modeling.NewEnricher(modeling.DefaultInitialSigma, logger)
	teams, players, skills, err := enricher.Enrich(ctx, teams, players)
	if err != nil {
		return err
	}

	writer, err := exporter.NewWriter(cfg.Output.Dir, logger)
	if err != nil {
		return err
	}

	if err := writeInterim(writer, filepath.Join("interim", "team_data.csv"), oracleselixir.SplitTeam, teams); err != nil {
		return err
	}
	if err := writeInterim(writer, filepath.Join("interim", "player_data.csv"), oracleselixir.SplitPlayer, players); err != nil {
		return err
	}

	flatTeams := snapshot.FlattenTeams(teams)
	teamRecords := make([][]string, 0, len(flatTeams))
	for _, r := range flatTeams {
		teamRecords = append(teamRecords, snapshot.TeamRecord(r))
	}

	flatPlayers := snapshot.FlattenPlayers(players)
	playerRecords := make([][]string, 0, len(flatPlayers))
	for _, r := range flatPlayers {
		playerRecords = append(playerRecords, snapshot.PlayerRecord(r, skills))
	}

	if err := writeSnapshot(writer, cfg.Output.Format, filepath.Join("processed", "flattened_teams"), snapshot.TeamColumns, teamRecords); err != nil {
		return err
	}
	return writeSnapshot(writer, cfg.Output.Format, filepath.Join("processed", "flattened_players"), snapshot.PlayerColumns, playerRecords)
}

func cleanView(ctx context.Context, split oracleselixir.Split, data []oracleselixir.Row, teamReplacements, playerReplacements map[string]string, logger *slog.Logger) ([]oracleselixir.Row, error) {
	cleaner, err := oracleselixir.NewCleaner(split, teamReplacements, playerReplacements, logger)
	if err != nil {
		return nil, err
	}
	return cleaner.Clean(ctx, data)
}

func writeInterim(writer *exporter.Writer, name string, split oracleselixir.Split, rows []oracleselixir.Row) error {
	headers, err := oracleselixir.Columns(split)
	if err != nil {
		return err
	}

	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		record, err := oracleselixir.Record(r, split)
		if err != nil {
			return err
		}
		records = append(records, record)
	}

	return writer.WriteCSV(name, headers, records)
}

func writeSnapshot(writer *exporter.Writer, format, name string, headers []string, records [][]string) error {
	if format == "xlsx" {
		return writer.WriteXLSX(name+".xlsx", "Snapshot", headers, records)
	}
	return writer.WriteCSV(name+".csv", headers, records)
}

func parseYears(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	years := make([]int, 0, len(parts))
	for _, p := range parts {
		year, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid year %q", p)
		}
		years = append(years, year)
	}
	return years, nil
}
