package oracleselixir

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Stage is one named step of the cleaning pipeline. The pipeline is an
// explicit ordered list so that stage sequencing is part of the definition
// rather than accumulated side effects.
type Stage struct {
	Name string
	Run  StageFunc
}

// Cleaner formats, filters, subsets, sorts and opponent-enriches raw match
// rows for one view of the data. All stages are pure table-in, table-out
// transformations; a failed stage aborts the whole run.
type Cleaner struct {
	split  Split
	stages []Stage
	logger *slog.Logger
}

// NewCleaner builds the cleaning pipeline for the requested split.
// Replacement maps normalize team and player names that changed over time;
// either may be nil.
func NewCleaner(split Split, teamReplacements, playerReplacements map[string]string, logger *slog.Logger) (*Cleaner, error) {
	if !split.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSplit, split)
	}
	if logger == nil {
		logger = slog.Default()
	}

	// Order matters: later stages depend on earlier ones having
	// normalized values, and the pairing walk requires the consistency
	// filter and sort to have established its windowing invariant.
	stages := []Stage{
		{Name: "normalize-types", Run: normalizeTypes},
		{Name: "drop-missing-identity", Run: dropMissingIdentity},
		{Name: "drop-null-games", Run: dropNullGames},
		{Name: "drop-unknown-entities", Run: dropUnknownEntities},
		{Name: "drop-negative-earned-gpm", Run: dropNegativeEarnedGPM},
		{Name: "normalize-names", Run: normalizeNames(teamReplacements, playerReplacements)},
		{Name: "subset", Run: subsetRows(split)},
		{Name: "consistency-filter", Run: removeInconsistentGames(split)},
		{Name: "sort", Run: sortRows(split)},
		{Name: "identity-backfill", Run: backfillIdentity(split)},
		{Name: "opponent-pairing", Run: pairOpponents(split)},
	}

	return &Cleaner{split: split, stages: stages, logger: logger}, nil
}

// Split returns the view this cleaner produces.
func (c *Cleaner) Split() Split {
	return c.split
}

// Clean runs every stage in order and returns the cleaned table.
func (c *Cleaner) Clean(ctx context.Context, rows []Row) ([]Row, error) {
	start := time.Now()

	c.logger.InfoContext(ctx, "starting cleaning pipeline",
		"split", c.split.String(),
		"input_rows", len(rows),
		"stages", len(c.stages),
	)

	for _, stage := range c.stages {
		before := len(rows)

		out, err := stage.Run(rows)
		if err != nil {
			c.logger.ErrorContext(ctx, "cleaning stage failed",
				"split", c.split.String(),
				"stage", stage.Name,
				"error", err,
			)
			return nil, fmt.Errorf("stage %s: %w", stage.Name, err)
		}
		rows = out

		c.logger.DebugContext(ctx, "cleaning stage completed",
			"split", c.split.String(),
			"stage", stage.Name,
			"rows_in", before,
			"rows_out", len(rows),
		)
	}

	c.logger.InfoContext(ctx, "cleaning pipeline completed",
		"split", c.split.String(),
		"output_rows", len(rows),
		"duration", time.Since(start),
	)

	return rows, nil
}
