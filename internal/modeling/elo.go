package modeling

import (
	"math"

	"oecli/internal/oracleselixir"
)

// Elo parameters. LoL has no draws, so the update is the plain two-sided
// logistic form.
const (
	eloInitial = 1500.0
	eloK       = 20.0
)

// eloExpected is the logistic win expectation of a rating against an
// opponent rating.
func eloExpected(rating, opponent float64) float64 {
	return 1 / (1 + math.Pow(10, (opponent-rating)/400))
}

// teamElo iterates the team table chronologically and writes before/after
// ratings per game. Both sides of a game update from the pre-game ratings.
func teamElo(rows []oracleselixir.Row) {
	ratings := make(map[string]float64)

	rating := func(id string) float64 {
		if r, ok := ratings[id]; ok {
			return r
		}
		return eloInitial
	}

	for _, g := range chronologicalGames(rows) {
		// Record pre-game ratings for the whole group first so the
		// update stays symmetric.
		for _, i := range g.indices {
			rows[i].EloBefore = rating(rows[i].TeamID)
		}

		for _, i := range g.indices {
			r := &rows[i]
			opp := rating(r.OpponentTeamID)
			expected := eloExpected(r.EloBefore, opp)
			r.EloAfter = r.EloBefore + eloK*(float64(r.Result)-expected)
		}

		for _, i := range g.indices {
			ratings[rows[i].TeamID] = rows[i].EloAfter
		}
	}
}

// playerElo is the same update keyed by player, each player rated against
// the opposing player in the same position.
func playerElo(rows []oracleselixir.Row) {
	ratings := make(map[string]float64)

	rating := func(id string) float64 {
		if r, ok := ratings[id]; ok {
			return r
		}
		return eloInitial
	}

	for _, g := range chronologicalGames(rows) {
		for _, i := range g.indices {
			rows[i].EloBefore = rating(rows[i].PlayerID)
		}

		for _, i := range g.indices {
			r := &rows[i]
			opp := rating(r.OpponentID)
			expected := eloExpected(r.EloBefore, opp)
			r.EloAfter = r.EloBefore + eloK*(float64(r.Result)-expected)
		}

		for _, i := range g.indices {
			ratings[rows[i].PlayerID] = rows[i].EloAfter
		}
	}
}

// aggregatePlayerElos writes each team row's roster mean of post-game
// player Elo. Team games absent from the player table stay NaN.
func aggregatePlayerElos(players, teams []oracleselixir.Row) {
	type key struct{ gameID, teamID string }

	sums := make(map[key]float64)
	counts := make(map[key]int)

	for _, p := range players {
		k := key{p.GameID, p.TeamID}
		sums[k] += p.EloAfter
		counts[k]++
	}

	for i := range teams {
		k := key{teams[i].GameID, teams[i].TeamID}
		if n := counts[k]; n > 0 {
			teams[i].AggPlayerElo = sums[k] / float64(n)
		} else {
			teams[i].AggPlayerElo = math.NaN()
		}
	}
}
