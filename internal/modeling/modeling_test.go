package modeling

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oecli/internal/oracleselixir"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 17, 0, 0, 0, time.UTC)
}

// cleanedGame fabricates one game the way the cleaning pipeline emits it:
// two team rows and ten player rows, sorted Blue before Red, with the
// opponent columns already paired.
func cleanedGame(gameID string, date time.Time, blue, red string, blueWins bool) (teams, players []oracleselixir.Row) {
	result := func(won bool) int {
		if won {
			return 1
		}
		return 0
	}

	teamRow := func(name, opp, side string, won bool, egpm, oppEGPM float64) oracleselixir.Row {
		return oracleselixir.Row{
			GameID:         gameID,
			Date:           date,
			League:         "LCK",
			Side:           side,
			TeamName:       name,
			TeamID:         "id-" + name,
			Result:         result(won),
			EarnedGPM:      egpm,
			OpponentTeam:   opp,
			OpponentTeamID: "id-" + opp,
			OpponentEGPM:   oppEGPM,
		}
	}

	teams = []oracleselixir.Row{
		teamRow(blue, red, "Blue", blueWins, 250, 300),
		teamRow(red, blue, "Red", !blueWins, 300, 250),
	}

	positions := []string{"bot", "jng", "mid", "sup", "top"}
	playerRow := func(team, opp, side string, won bool, i int) oracleselixir.Row {
		return oracleselixir.Row{
			GameID:         gameID,
			Date:           date,
			League:         "LCK",
			Side:           side,
			Position:       positions[i],
			TeamName:       team,
			TeamID:         "id-" + team,
			PlayerName:     fmt.Sprintf("%s-%s", team, positions[i]),
			PlayerID:       fmt.Sprintf("pid-%s-%d", team, i),
			Result:         result(won),
			Kills:          float64(2 + i),
			Deaths:         2,
			Assists:        float64(4 + i),
			TotalCS:        200,
			EarnedGPM:      250 + float64(i),
			OpponentTeam:   opp,
			OpponentTeamID: "id-" + opp,
			OpponentName:   fmt.Sprintf("%s-%s", opp, positions[i]),
			OpponentID:     fmt.Sprintf("pid-%s-%d", opp, i),
			OpponentEGPM:   260 + float64(i),
		}
	}

	for i := range positions {
		players = append(players, playerRow(blue, red, "Blue", blueWins, i))
	}
	for i := range positions {
		players = append(players, playerRow(red, blue, "Red", !blueWins, i))
	}
	return teams, players
}

func TestEnricherEndToEnd(t *testing.T) {
	teams, players := cleanedGame("G1", day(1), "A", "B", true)
	t2, p2 := cleanedGame("G2", day(2), "A", "B", false)
	teams = append(teams, t2...)
	players = append(players, p2...)

	enricher := NewEnricher(0, nil)
	outTeams, outPlayers, skills, err := enricher.Enrich(context.Background(), teams, players)
	require.NoError(t, err)

	require.Len(t, outTeams, 4)
	require.Len(t, outPlayers, 20)
	assert.Len(t, skills, 10)

	// Inputs stay untouched; the enricher works on copies.
	assert.Zero(t, teams[0].EloAfter)
	assert.Zero(t, players[0].DKPoints)

	for _, r := range outTeams {
		assert.False(t, math.IsNaN(r.DKPoints), "team dkpoints")
		assert.False(t, math.IsNaN(r.EloBefore), "team elo before")
		assert.False(t, math.IsNaN(r.EloAfter), "team elo after")
		assert.False(t, math.IsNaN(r.AggPlayerElo), "agg player elo")
		assert.False(t, math.IsNaN(r.TSSumMu), "trueskill sum mu")
		assert.False(t, math.IsNaN(r.TSSigSquared), "trueskill variance sum")
		assert.False(t, math.IsNaN(r.BlueSideEMAAfter), "blue side rate")
		assert.False(t, math.IsNaN(r.DKPointsEMAAfter), "dkpoints ema")
	}

	for _, r := range outPlayers {
		assert.False(t, math.IsNaN(r.DKPoints), "player dkpoints")
		assert.False(t, math.IsNaN(r.EloAfter), "player elo after")
		assert.Greater(t, r.TrueSkillMu, 0.0, "player skill mean")
		assert.Greater(t, r.TrueSkillSig, 0.0, "player skill sigma")
		assert.False(t, math.IsNaN(r.EGPMDominance), "gold dominance")
	}

	// Each game's EMA-after feeds the next game's EMA-before.
	first, second := outTeams[0], outTeams[2]
	require.Equal(t, "G1", first.GameID)
	require.Equal(t, "G2", second.GameID)
	require.Equal(t, first.TeamID, second.TeamID)
	assert.InDelta(t, first.DKPointsEMAAfter, second.DKPointsEMABefore, 1e-9)
	assert.InDelta(t, first.EloAfter, second.EloBefore, 1e-9)
}

func TestEnricherEmptyInput(t *testing.T) {
	enricher := NewEnricher(0, nil)

	teams, players, skills, err := enricher.Enrich(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, teams)
	assert.Empty(t, players)
	assert.Empty(t, skills)
}

func TestNewEnricherSigmaDefault(t *testing.T) {
	assert.InDelta(t, DefaultInitialSigma, NewEnricher(0, nil).initialSigma, 1e-9)
	assert.InDelta(t, 1.5, NewEnricher(1.5, nil).initialSigma, 1e-9)
}
