package modeling

import "oecli/internal/oracleselixir"

// Side win-rate tracking. Blue side wins more often in competitive play,
// so each entity carries a separate exponential win rate per side, seeded
// at an even coin flip.
const (
	sideBlue = "Blue"
	sideRed  = "Red"

	sideWinRateAlpha = 0.3
	sideWinRateSeed  = 0.5
)

// ewmModel writes per-side exponential win rates for each entity in
// chronological game order. The side played updates toward the game
// result; the other side's rate carries through unchanged.
func ewmModel(rows []oracleselixir.Row, split oracleselixir.Split) {
	type sides struct {
		blue float64
		red  float64
	}

	states := make(map[string]*sides)

	get := func(id string) *sides {
		if s, ok := states[id]; ok {
			return s
		}
		s := &sides{blue: sideWinRateSeed, red: sideWinRateSeed}
		states[id] = s
		return s
	}

	for _, g := range chronologicalGames(rows) {
		for _, i := range g.indices {
			r := &rows[i]
			s := get(entityID(*r, split))

			r.BlueSideEMABefore = s.blue
			r.RedSideEMABefore = s.red

			switch r.Side {
			case sideBlue:
				s.blue += sideWinRateAlpha * (float64(r.Result) - s.blue)
			case sideRed:
				s.red += sideWinRateAlpha * (float64(r.Result) - s.red)
			}

			r.BlueSideEMAAfter = s.blue
			r.RedSideEMAAfter = s.red
		}
	}
}
