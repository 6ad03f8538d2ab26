package modeling

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"oecli/internal/oracleselixir"
)

// TrueSkill-style two-team Gaussian update. Priors follow the standard
// parameterization (mu 25, beta mu/6); the initial uncertainty is
// configurable because the esports data converges faster with a tighter
// prior than the default mu/3.
const (
	trueskillMu   = 25.0
	trueskillBeta = trueskillMu / 6
)

var unitNormal = distuv.UnitNormal

// trueskillModel runs the Bayesian skill update over the player table in
// chronological game order, writes per-row posterior mu/sigma, aggregates
// roster sum-of-mu and sum-of-variance onto the team table, and returns
// the final per-player skill lookup.
func trueskillModel(players, teams []oracleselixir.Row, initialSigma float64) (map[string]Skill, error) {
	if initialSigma <= 0 {
		return nil, fmt.Errorf("initial sigma must be positive, got %v", initialSigma)
	}

	skills := make(map[string]Skill)

	skill := func(id string) Skill {
		if s, ok := skills[id]; ok {
			return s
		}
		return Skill{Mu: trueskillMu, Sigma: initialSigma}
	}

	for _, g := range chronologicalGames(players) {
		var winners, losers []int
		for _, i := range g.indices {
			if players[i].Won() {
				winners = append(winners, i)
			} else {
				losers = append(losers, i)
			}
		}

		// A one-sided group cannot be rated; carry ratings through.
		if len(winners) == 0 || len(losers) == 0 {
			for _, i := range g.indices {
				s := skill(players[i].PlayerID)
				players[i].TrueSkillMu = s.Mu
				players[i].TrueSkillSig = s.Sigma
			}
			continue
		}

		updateGame(players, winners, losers, skill, skills)
	}

	// Roster aggregates for the team table, from each game's posterior.
	type key struct{ gameID, teamID string }
	sumMu := make(map[key]float64)
	sumVar := make(map[key]float64)
	seen := make(map[key]bool)

	for _, p := range players {
		k := key{p.GameID, p.TeamID}
		sumMu[k] += p.TrueSkillMu
		sumVar[k] += p.TrueSkillSig * p.TrueSkillSig
		seen[k] = true
	}

	for i := range teams {
		k := key{teams[i].GameID, teams[i].TeamID}
		if seen[k] {
			teams[i].TSSumMu = sumMu[k]
			teams[i].TSSigSquared = sumVar[k]
		} else {
			teams[i].TSSumMu = math.NaN()
			teams[i].TSSigSquared = math.NaN()
		}
	}

	return skills, nil
}

// updateGame applies the two-team truncated-Gaussian update for one game.
func updateGame(players []oracleselixir.Row, winners, losers []int, skill func(string) Skill, skills map[string]Skill) {
	var muW, muL, varSum float64

	for _, i := range winners {
		s := skill(players[i].PlayerID)
		muW += s.Mu
		varSum += s.Sigma * s.Sigma
	}
	for _, i := range losers {
		s := skill(players[i].PlayerID)
		muL += s.Mu
		varSum += s.Sigma * s.Sigma
	}

	n := float64(len(winners) + len(losers))
	c := math.Sqrt(varSum + n*trueskillBeta*trueskillBeta)

	t := (muW - muL) / c
	v := meanShift(t)
	w := v * (v + t)

	update := func(i int, sign float64) {
		s := skill(players[i].PlayerID)
		variance := s.Sigma * s.Sigma

		mu := s.Mu + sign*(variance/c)*v
		shrink := 1 - (variance/(c*c))*w
		if shrink < 1e-6 {
			shrink = 1e-6
		}
		sigma := math.Sqrt(variance * shrink)

		next := Skill{Mu: mu, Sigma: sigma}
		skills[players[i].PlayerID] = next
		players[i].TrueSkillMu = next.Mu
		players[i].TrueSkillSig = next.Sigma
	}

	for _, i := range winners {
		update(i, 1)
	}
	for _, i := range losers {
		update(i, -1)
	}
}

// meanShift is the additive correction v(t) = pdf(t)/cdf(t) of a Gaussian
// truncated below at -t.
func meanShift(t float64) float64 {
	denom := unitNormal.CDF(t)
	if denom < 1e-12 {
		// Far tail: v(t) approaches -t.
		return -t
	}
	return unitNormal.Prob(t) / denom
}
