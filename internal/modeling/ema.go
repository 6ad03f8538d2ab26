package modeling

import (
	"math"

	"oecli/internal/oracleselixir"
)

// EMA smoothing of raw per-game stats uses a span of 10 games, the rough
// length of a split's head-to-head schedule.
const emaSpan = 10.0

// emaAlpha converts a span to the smoothing factor.
func emaAlpha(span float64) float64 {
	return 2 / (span + 1)
}

// emaState is one entity's running exponential moving average.
type emaState struct {
	value       float64
	initialized bool
}

// observe folds a new observation into the average and returns the
// (before, after) pair for the row. The first observation seeds the
// average, with no before value. NaN observations carry the state through
// unchanged.
func (s *emaState) observe(v, alpha float64) (before, after float64) {
	if math.IsNaN(v) {
		if !s.initialized {
			return math.NaN(), math.NaN()
		}
		return s.value, s.value
	}

	if !s.initialized {
		s.value = v
		s.initialized = true
		return math.NaN(), v
	}

	before = s.value
	s.value += alpha * (v - s.value)
	return before, s.value
}

// emaStatistics smooths kda, golddiffat15, csdiffat15 and dkpoints per
// entity in chronological game order. Runs after the fantasy-point stage,
// which produces the dkpoints column it reads.
func emaStatistics(rows []oracleselixir.Row, split oracleselixir.Split) {
	alpha := emaAlpha(emaSpan)

	kda := make(map[string]*emaState)
	goldDiff := make(map[string]*emaState)
	csDiff := make(map[string]*emaState)
	dkPoints := make(map[string]*emaState)

	get := func(m map[string]*emaState, id string) *emaState {
		if s, ok := m[id]; ok {
			return s
		}
		s := &emaState{}
		m[id] = s
		return s
	}

	for _, g := range chronologicalGames(rows) {
		for _, i := range g.indices {
			r := &rows[i]
			id := entityID(*r, split)

			kdaValue := (nz(r.Kills) + nz(r.Assists)) / math.Max(nz(r.Deaths), 1)

			r.KDAEMABefore, r.KDAEMAAfter = get(kda, id).observe(kdaValue, alpha)
			r.GoldDiffAt15EMABefore, r.GoldDiffAt15EMAAfter = get(goldDiff, id).observe(r.GoldDiffAt15, alpha)
			r.CSDiffAt15EMABefore, r.CSDiffAt15EMAAfter = get(csDiff, id).observe(r.CSDiffAt15, alpha)
			r.DKPointsEMABefore, r.DKPointsEMAAfter = get(dkPoints, id).observe(r.DKPoints, alpha)
		}
	}
}
