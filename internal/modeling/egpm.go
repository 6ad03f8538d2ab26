package modeling

import (
	"math"

	"oecli/internal/oracleselixir"
)

// egpmModel derives opponent-relative earned-gold dominance, normalized by
// the skill ratings so that farming a weak opponent counts for less than
// matching a strong one. Runs after the skill stage, which produces the
// rating columns it reads.
//
// dominance = (egpm - opp_egpm) / max(opp_egpm, 1) * (opp_mu / own_mu)
//
// The raw dominance is then EMA-smoothed per entity.
func egpmModel(rows []oracleselixir.Row, split oracleselixir.Split) {
	// Skill mean per (game, entity) for the opponent lookup.
	type key struct{ gameID, id string }
	mus := make(map[key]float64, len(rows))
	for _, r := range rows {
		mus[key{r.GameID, entityID(r, split)}] = skillMu(r, split)
	}

	alpha := emaAlpha(emaSpan)
	states := make(map[string]*emaState)

	for _, g := range chronologicalGames(rows) {
		for _, i := range g.indices {
			r := &rows[i]

			raw := (r.EarnedGPM - r.OpponentEGPM) / math.Max(r.OpponentEGPM, 1)

			factor := 1.0
			own := skillMu(*r, split)
			opp, ok := mus[key{r.GameID, opponentID(*r, split)}]
			if ok && !math.IsNaN(own) && !math.IsNaN(opp) && own > 0 && opp > 0 {
				factor = opp / own
			}

			r.EGPMDominance = raw * factor

			id := entityID(*r, split)
			s, ok := states[id]
			if !ok {
				s = &emaState{}
				states[id] = s
			}
			r.EGPMDominanceEMABefore, r.EGPMDominanceEMAAfter = s.observe(r.EGPMDominance, alpha)
		}
	}
}
