package modeling

import (
	"math"
	"sort"

	"oecli/internal/oracleselixir"
)

// gameGroup is the row indices of one game, in table order.
type gameGroup struct {
	gameID  string
	indices []int
}

// chronologicalGames groups rows by game id and orders the groups by
// (date, gameid). The cleaned tables are sorted by league first, so the
// rating updates re-derive a global chronological order here.
func chronologicalGames(rows []oracleselixir.Row) []gameGroup {
	byGame := make(map[string][]int)
	order := make([]string, 0)

	for i, r := range rows {
		if _, seen := byGame[r.GameID]; !seen {
			order = append(order, r.GameID)
		}
		byGame[r.GameID] = append(byGame[r.GameID], i)
	}

	groups := make([]gameGroup, 0, len(order))
	for _, id := range order {
		groups = append(groups, gameGroup{gameID: id, indices: byGame[id]})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a := rows[groups[i].indices[0]]
		b := rows[groups[j].indices[0]]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.GameID < b.GameID
	})

	return groups
}

// entityID returns the rating key for a row under the given split.
func entityID(r oracleselixir.Row, split oracleselixir.Split) string {
	if split == oracleselixir.SplitPlayer {
		return r.PlayerID
	}
	return r.TeamID
}

// skillMu returns the row's posterior skill mean under the given split.
func skillMu(r oracleselixir.Row, split oracleselixir.Split) float64 {
	if split == oracleselixir.SplitPlayer {
		return r.TrueSkillMu
	}
	return r.TSSumMu
}

// opponentID returns the rating key of the row's opponent under the given
// split.
func opponentID(r oracleselixir.Row, split oracleselixir.Split) string {
	if split == oracleselixir.SplitPlayer {
		return r.OpponentID
	}
	return r.OpponentTeamID
}

// nz maps NaN to zero so absent stats contribute nothing to a score.
func nz(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
