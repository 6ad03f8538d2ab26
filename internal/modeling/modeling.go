// Package modeling derives per-team and per-player analytics over cleaned
// match tables: DraftKings fantasy points, Elo, a TrueSkill-style Bayesian
// skill rating, opponent-relative gold dominance, side win rates, and
// exponential moving averages of the raw per-game stats.
//
// The stages run in a fixed order because later stages read columns written
// by earlier ones: EMA smoothing reads dkpoints, and the gold-dominance
// model reads the skill ratings. The ordering is an explicit pipeline
// definition, not an emergent property.
package modeling

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"oecli/internal/oracleselixir"
)

// Skill is a Bayesian mean/uncertainty rating pair.
type Skill struct {
	Mu    float64
	Sigma float64
}

// DefaultInitialSigma seeds the skill-rating uncertainty for unseen
// players.
const DefaultInitialSigma = 2.75

// state carries both tables and the skill lookup through the stages.
type state struct {
	teams   []oracleselixir.Row
	players []oracleselixir.Row
	skills  map[string]Skill
}

// stage is one named enrichment step.
type stage struct {
	name string
	run  func(*state) error
}

// Enricher runs the full enrichment pipeline over the cleaned team and
// player tables.
type Enricher struct {
	initialSigma float64
	logger       *slog.Logger
	stages       []stage
}

// NewEnricher builds the enrichment pipeline. initialSigma seeds the skill
// rating uncertainty; pass 0 for the default.
func NewEnricher(initialSigma float64, logger *slog.Logger) *Enricher {
	if initialSigma <= 0 {
		initialSigma = DefaultInitialSigma
	}
	if logger == nil {
		logger = slog.Default()
	}

	e := &Enricher{initialSigma: initialSigma, logger: logger}

	// Order is load-bearing; see the package comment.
	e.stages = []stage{
		{name: "draftkings-points", run: e.runDKPoints},
		{name: "elo", run: e.runElo},
		{name: "trueskill", run: e.runTrueSkill},
		{name: "egpm-dominance", run: e.runEGPMDominance},
		{name: "side-win-rates", run: e.runSideWinRates},
		{name: "ema-statistics", run: e.runEMAStatistics},
	}

	return e
}

// Enrich applies every stage in order and returns the enriched tables plus
// the final per-player skill lookup.
func (e *Enricher) Enrich(ctx context.Context, teams, players []oracleselixir.Row) ([]oracleselixir.Row, []oracleselixir.Row, map[string]Skill, error) {
	start := time.Now()

	st := &state{
		teams:   cloneRows(teams),
		players: cloneRows(players),
		skills:  make(map[string]Skill),
	}

	e.logger.InfoContext(ctx, "starting enrichment pipeline",
		"team_rows", len(st.teams),
		"player_rows", len(st.players),
		"stages", len(e.stages),
	)

	for _, s := range e.stages {
		stageStart := time.Now()

		if err := s.run(st); err != nil {
			e.logger.ErrorContext(ctx, "enrichment stage failed",
				"stage", s.name,
				"error", err,
			)
			return nil, nil, nil, fmt.Errorf("stage %s: %w", s.name, err)
		}

		e.logger.DebugContext(ctx, "enrichment stage completed",
			"stage", s.name,
			"duration", time.Since(stageStart),
		)
	}

	e.logger.InfoContext(ctx, "enrichment pipeline completed",
		"duration", time.Since(start),
		"rated_players", len(st.skills),
	)

	return st.teams, st.players, st.skills, nil
}

func (e *Enricher) runDKPoints(st *state) error {
	enrichTeamDKPoints(st.teams)
	enrichPlayerDKPoints(st.players)
	return nil
}

func (e *Enricher) runElo(st *state) error {
	playerElo(st.players)
	teamElo(st.teams)
	aggregatePlayerElos(st.players, st.teams)
	return nil
}

func (e *Enricher) runTrueSkill(st *state) error {
	skills, err := trueskillModel(st.players, st.teams, e.initialSigma)
	if err != nil {
		return err
	}
	st.skills = skills
	return nil
}

func (e *Enricher) runEGPMDominance(st *state) error {
	egpmModel(st.teams, oracleselixir.SplitTeam)
	egpmModel(st.players, oracleselixir.SplitPlayer)
	return nil
}

func (e *Enricher) runSideWinRates(st *state) error {
	ewmModel(st.players, oracleselixir.SplitPlayer)
	ewmModel(st.teams, oracleselixir.SplitTeam)
	return nil
}

func (e *Enricher) runEMAStatistics(st *state) error {
	emaStatistics(st.teams, oracleselixir.SplitTeam)
	emaStatistics(st.players, oracleselixir.SplitPlayer)
	return nil
}

func cloneRows(rows []oracleselixir.Row) []oracleselixir.Row {
	out := make([]oracleselixir.Row, len(rows))
	copy(out, rows)
	return out
}
