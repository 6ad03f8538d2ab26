// Package snapshot flattens the enriched tables to one current row per
// entity: the most recent game per team, and per (player, team) pair so a
// player who changed rosters keeps a row for each stint. The "...after"
// rating columns are published under their bare names, since a snapshot
// has no before/after distinction.
package snapshot

import (
	"math"
	"sort"

	"oecli/internal/modeling"
	"oecli/internal/oracleselixir"
)

// TeamColumns is the flattened team-snapshot header.
var TeamColumns = []string{
	"date", "league", "teamname",
	"team_elo", "trueskill_sum_mu", "trueskill_sigma_squared",
	"egpm_dominance", "blue_side_ema_after", "red_side_ema_after",
	"kda", "golddiffat15", "csdiffat15", "dkpoints",
}

// PlayerColumns is the flattened player-snapshot header.
var PlayerColumns = []string{
	"date", "league", "teamname", "position", "playername", "playerid",
	"player_elo", "egpm_dominance",
	"blue_side_ema_after", "red_side_ema_after",
	"kda", "golddiffat15", "csdiffat15", "dkpoints",
	"trueskill_mu", "trueskill_sigma",
}

// FlattenTeams returns the most recent row per team id, ordered by team id.
func FlattenTeams(rows []oracleselixir.Row) []oracleselixir.Row {
	return latestPer(rows, func(r oracleselixir.Row) string {
		return r.TeamID
	})
}

// FlattenPlayers returns the most recent row per (player id, team id) pair,
// ordered by player id.
func FlattenPlayers(rows []oracleselixir.Row) []oracleselixir.Row {
	return latestPer(rows, func(r oracleselixir.Row) string {
		return r.PlayerID + "\x00" + r.TeamID
	})
}

// latestPer sorts by (key, date) and keeps the last row of each key group.
func latestPer(rows []oracleselixir.Row, key func(oracleselixir.Row) string) []oracleselixir.Row {
	sorted := make([]oracleselixir.Row, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		ki, kj := key(sorted[i]), key(sorted[j])
		if ki != kj {
			return ki < kj
		}
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var out []oracleselixir.Row
	for i, r := range sorted {
		last := i == len(sorted)-1 || key(sorted[i+1]) != key(r)
		if last {
			out = append(out, r)
		}
	}

	return out
}

// TeamRecord renders one flattened team row in TeamColumns order.
func TeamRecord(r oracleselixir.Row) []string {
	return []string{
		oracleselixir.FormatDate(r.Date), r.League, r.TeamName,
		oracleselixir.FormatFloat(r.EloAfter),
		oracleselixir.FormatFloat(r.TSSumMu),
		oracleselixir.FormatFloat(r.TSSigSquared),
		oracleselixir.FormatFloat(r.EGPMDominanceEMAAfter),
		oracleselixir.FormatFloat(r.BlueSideEMAAfter),
		oracleselixir.FormatFloat(r.RedSideEMAAfter),
		oracleselixir.FormatFloat(r.KDAEMAAfter),
		oracleselixir.FormatFloat(r.GoldDiffAt15EMAAfter),
		oracleselixir.FormatFloat(r.CSDiffAt15EMAAfter),
		oracleselixir.FormatFloat(r.DKPointsEMAAfter),
	}
}

// PlayerRecord renders one flattened player row in PlayerColumns order.
// The trueskill columns come from the final skill lookup rather than the
// row, matching the snapshot's current-rating semantics.
func PlayerRecord(r oracleselixir.Row, skills map[string]modeling.Skill) []string {
	mu, sigma := math.NaN(), math.NaN()
	if s, ok := skills[r.PlayerID]; ok {
		mu, sigma = s.Mu, s.Sigma
	}

	return []string{
		oracleselixir.FormatDate(r.Date), r.League, r.TeamName, r.Position,
		r.PlayerName, r.PlayerID,
		oracleselixir.FormatFloat(r.EloAfter),
		oracleselixir.FormatFloat(r.EGPMDominanceEMAAfter),
		oracleselixir.FormatFloat(r.BlueSideEMAAfter),
		oracleselixir.FormatFloat(r.RedSideEMAAfter),
		oracleselixir.FormatFloat(r.KDAEMAAfter),
		oracleselixir.FormatFloat(r.GoldDiffAt15EMAAfter),
		oracleselixir.FormatFloat(r.CSDiffAt15EMAAfter),
		oracleselixir.FormatFloat(r.DKPointsEMAAfter),
		oracleselixir.FormatFloat(mu),
		oracleselixir.FormatFloat(sigma),
	}
}
