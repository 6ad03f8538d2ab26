package oracleselixir

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawGame builds the twelve upstream rows of one game: five lane rows per
// side plus a team summary row per side.
func rawGame(gameID string, date time.Time, blue, red string, blueWon bool) []Row {
	rows := make([]Row, 0, 12)

	side := func(name, sideLabel string, won bool, egpm float64) {
		result := 0
		if won {
			result = 1
		}
		for i, pos := range []string{"top", "jng", "mid", "bot", "sup"} {
			rows = append(rows, Row{
				GameID:     gameID,
				Date:       date,
				League:     "LCK",
				Side:       sideLabel,
				Position:   pos,
				TeamName:   name,
				TeamID:     "id-" + name,
				PlayerName: fmt.Sprintf("%s-%s", name, pos),
				PlayerID:   fmt.Sprintf("pid-%s-%d", name, i),
				Result:     result,
				EarnedGPM:  egpm + float64(i),
			})
		}
		rows = append(rows, Row{
			GameID:    gameID,
			Date:      date,
			League:    "LCK",
			Side:      sideLabel,
			Position:  PositionTeam,
			TeamName:  name,
			TeamID:    "id-" + name,
			Result:    result,
			EarnedGPM: egpm,
		})
	}

	side(blue, "Blue", blueWon, 250)
	side(red, "Red", !blueWon, 300)
	return rows
}

func TestNewCleanerInvalidSplit(t *testing.T) {
	_, err := NewCleaner(Split("roster"), nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidSplit)
}

func TestCleanTeamView(t *testing.T) {
	raw := rawGame("G1", day(1), "A", "B", true)

	cleaner, err := NewCleaner(SplitTeam, nil, nil, nil)
	require.NoError(t, err)

	out, err := cleaner.Clean(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, out, 2)

	blue, red := out[0], out[1]
	assert.Equal(t, "Blue", blue.Side)
	assert.Equal(t, "A", blue.TeamName)
	assert.Empty(t, blue.Position)
	assert.Empty(t, blue.PlayerName)

	assert.Equal(t, "B", blue.OpponentTeam)
	assert.Equal(t, "id-B", blue.OpponentTeamID)
	assert.InDelta(t, 300, blue.OpponentEGPM, 1e-9)

	assert.Equal(t, "A", red.OpponentTeam)
	assert.InDelta(t, 250, red.OpponentEGPM, 1e-9)
}

func TestCleanPlayerView(t *testing.T) {
	raw := rawGame("G1", day(1), "A", "B", true)

	cleaner, err := NewCleaner(SplitPlayer, nil, nil, nil)
	require.NoError(t, err)

	out, err := cleaner.Clean(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, out, 10)

	// Sorted Blue before Red, positions alphabetical within a side.
	for i := 0; i < 5; i++ {
		assert.Equal(t, "Blue", out[i].Side)
		assert.Equal(t, "Red", out[i+5].Side)

		// Each lane faces the same lane on the other side.
		assert.Equal(t, out[i+5].Position, out[i].Position)
		assert.Equal(t, out[i+5].PlayerName, out[i].OpponentName)
		assert.Equal(t, out[i+5].PlayerID, out[i].OpponentID)
		assert.Equal(t, "B", out[i].OpponentTeam)
		assert.Equal(t, "A", out[i+5].OpponentTeam)
		assert.InDelta(t, out[i+5].EarnedGPM, out[i].OpponentEGPM, 1e-9)
	}
}

func TestCleanAppliesReplacements(t *testing.T) {
	raw := rawGame("G1", day(1), "SKT", "B", true)

	cleaner, err := NewCleaner(SplitTeam, map[string]string{"SKT": "T1"}, nil, nil)
	require.NoError(t, err)

	out, err := cleaner.Clean(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "T1", out[0].TeamName)
	assert.Equal(t, "T1", out[1].OpponentTeam)
}

func TestCleanDropsIncompleteGames(t *testing.T) {
	good := rawGame("G1", day(1), "A", "B", true)
	// A game missing its red team summary row is filtered whole.
	partial := rawGame("G2", day(2), "C", "D", false)[:6]

	cleaner, err := NewCleaner(SplitTeam, nil, nil, nil)
	require.NoError(t, err)

	out, err := cleaner.Clean(context.Background(), append(good, partial...))
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, r := range out {
		assert.Equal(t, "G1", r.GameID)
	}
}

// Partial player games must never reach the pairing walk: a group smaller
// than ten shifts the fixed-size window so that full games downstream would
// pair across game boundaries without any bounds error.
func TestCleanPlayerViewDropsPartialGames(t *testing.T) {
	keepLanes := func(rows []Row, lanes ...string) []Row {
		want := make(map[string]bool, len(lanes))
		for _, l := range lanes {
			want[l] = true
		}
		out := make([]Row, 0, len(rows))
		for _, r := range rows {
			if want[r.Position] || r.Position == PositionTeam {
				out = append(out, r)
			}
		}
		return out
	}

	// Four player rows, then a full ten, then six: the total stays a
	// multiple of ten, so only the group filter can catch the partials.
	raw := keepLanes(rawGame("G-partial-4", day(1), "A", "B", true), "top", "jng")
	raw = append(raw, rawGame("G-full", day(2), "C", "D", true)...)
	raw = append(raw, keepLanes(rawGame("G-partial-6", day(3), "E", "F", false), "top", "jng", "mid")...)

	cleaner, err := NewCleaner(SplitPlayer, nil, nil, nil)
	require.NoError(t, err)

	out, err := cleaner.Clean(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, out, 10)

	for _, r := range out {
		assert.Equal(t, "G-full", r.GameID)

		// Every opponent comes from the same game's roster.
		assert.Contains(t, []string{"C", "D"}, r.OpponentTeam)
		assert.NotEqual(t, r.TeamName, r.OpponentTeam)
	}
}

func TestCleanMultipleGamesOrdering(t *testing.T) {
	raw := rawGame("G2", day(5), "C", "D", false)
	raw = append(raw, rawGame("G1", day(1), "A", "B", true)...)

	cleaner, err := NewCleaner(SplitTeam, nil, nil, nil)
	require.NoError(t, err)

	out, err := cleaner.Clean(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, out, 4)

	assert.Equal(t, "G1", out[0].GameID)
	assert.Equal(t, "G1", out[1].GameID)
	assert.Equal(t, "G2", out[2].GameID)
	assert.Equal(t, "D", out[2].OpponentTeam)
	assert.Equal(t, "C", out[3].OpponentTeam)
}
