package modeling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"oecli/internal/oracleselixir"
)

func TestEgpmModel(t *testing.T) {
	t.Run("unrated rows use raw dominance", func(t *testing.T) {
		rows := []oracleselixir.Row{
			{GameID: "G1", Date: day(1), TeamID: "A", OpponentTeamID: "B", EarnedGPM: 250, OpponentEGPM: 300, TSSumMu: math.NaN()},
			{GameID: "G1", Date: day(1), TeamID: "B", OpponentTeamID: "A", EarnedGPM: 300, OpponentEGPM: 250, TSSumMu: math.NaN()},
		}

		egpmModel(rows, oracleselixir.SplitTeam)

		assert.InDelta(t, (250.0-300)/300, rows[0].EGPMDominance, 1e-9)
		assert.InDelta(t, (300.0-250)/250, rows[1].EGPMDominance, 1e-9)
	})

	t.Run("skill ratio scales dominance", func(t *testing.T) {
		rows := []oracleselixir.Row{
			{GameID: "G1", Date: day(1), TeamID: "A", OpponentTeamID: "B", EarnedGPM: 300, OpponentEGPM: 250, TSSumMu: 100},
			{GameID: "G1", Date: day(1), TeamID: "B", OpponentTeamID: "A", EarnedGPM: 250, OpponentEGPM: 300, TSSumMu: 150},
		}

		egpmModel(rows, oracleselixir.SplitTeam)

		// Out-farming a stronger roster is worth more.
		assert.InDelta(t, (300.0-250)/250*(150.0/100), rows[0].EGPMDominance, 1e-9)
		assert.InDelta(t, (250.0-300)/300*(100.0/150), rows[1].EGPMDominance, 1e-9)
	})

	t.Run("dominance is ema smoothed per entity", func(t *testing.T) {
		alpha := emaAlpha(emaSpan)
		rows := []oracleselixir.Row{
			{GameID: "G1", Date: day(1), TeamID: "A", OpponentTeamID: "B", EarnedGPM: 300, OpponentEGPM: 200, TSSumMu: math.NaN()},
			{GameID: "G2", Date: day(2), TeamID: "A", OpponentTeamID: "B", EarnedGPM: 200, OpponentEGPM: 300, TSSumMu: math.NaN()},
		}

		egpmModel(rows, oracleselixir.SplitTeam)

		first, second := rows[0], rows[1]
		assert.True(t, math.IsNaN(first.EGPMDominanceEMABefore))
		assert.InDelta(t, first.EGPMDominance, first.EGPMDominanceEMAAfter, 1e-9)

		assert.InDelta(t, first.EGPMDominance, second.EGPMDominanceEMABefore, 1e-9)
		want := first.EGPMDominance + alpha*(second.EGPMDominance-first.EGPMDominance)
		assert.InDelta(t, want, second.EGPMDominanceEMAAfter, 1e-9)
	})
}
