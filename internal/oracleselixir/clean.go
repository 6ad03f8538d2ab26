package oracleselixir

import (
	"sort"
	"strings"
)

// StageFunc is one cleaning transformation: whole table in, whole table
// out. Stages never mutate their input slice.
type StageFunc func(rows []Row) ([]Row, error)

// filterFunc lifts a pure row predicate into a StageFunc.
func filterFunc(keep func(Row) bool) StageFunc {
	return func(rows []Row) ([]Row, error) {
		out := make([]Row, 0, len(rows))
		for _, r := range rows {
			if keep(r) {
				out = append(out, r)
			}
		}
		return out, nil
	}
}

// normalizeTypes trims the identity columns and converts the upstream null
// literals to the empty-string null marker. Date coercion happens at CSV
// decode time, where a malformed date fails the whole run.
func normalizeTypes(rows []Row) ([]Row, error) {
	out := make([]Row, len(rows))
	copy(out, rows)

	for i := range out {
		out[i].GameID = normalizeID(out[i].GameID)
		out[i].PlayerID = normalizeID(out[i].PlayerID)
		out[i].TeamID = normalizeID(out[i].TeamID)
		out[i].Position = normalizeID(out[i].Position)
	}

	return out, nil
}

func normalizeID(s string) string {
	s = strings.TrimSpace(s)
	if isNull(s) {
		return ""
	}
	return s
}

// dropMissingIdentity removes rows lacking a game id or a position.
func dropMissingIdentity(rows []Row) ([]Row, error) {
	return filterFunc(func(r Row) bool {
		return r.GameID != "" && r.Position != ""
	})(rows)
}

// dropNullGames removes rows with a null game id. Redundant after
// dropMissingIdentity, kept as a safety net so the consistency filter can
// never see a null key.
func dropNullGames(rows []Row) ([]Row, error) {
	return filterFunc(Row.HasGameID)(rows)
}

// dropUnknownEntities removes the upstream placeholder rows for unnamed
// players and teams.
func dropUnknownEntities(rows []Row) ([]Row, error) {
	return filterFunc(func(r Row) bool {
		return r.PlayerName != "unknown player" && r.TeamName != "unknown team"
	})(rows)
}

// dropNegativeEarnedGPM removes rows whose earned gold per minute is
// negative or missing. NaN fails the comparison, so absent values are
// dropped the same way the upstream source drops them.
func dropNegativeEarnedGPM(rows []Row) ([]Row, error) {
	return filterFunc(func(r Row) bool {
		return r.EarnedGPM >= 0
	})(rows)
}

// normalizeNames applies caller-supplied old-name to new-name replacement
// maps, for teams and players whose display name changed over time.
func normalizeNames(teamReplacements, playerReplacements map[string]string) StageFunc {
	return func(rows []Row) ([]Row, error) {
		if len(teamReplacements) == 0 && len(playerReplacements) == 0 {
			return rows, nil
		}

		out := make([]Row, len(rows))
		copy(out, rows)

		for i := range out {
			if name, ok := teamReplacements[out[i].TeamName]; ok {
				out[i].TeamName = name
			}
			if name, ok := playerReplacements[out[i].PlayerName]; ok {
				out[i].PlayerName = name
			}
		}

		return out, nil
	}
}

// subsetRows projects the table down to the requested view. The upstream
// file interleaves five player rows per side with one team summary row per
// side, so the projection selects the rows belonging to the view as well
// as the view's columns: team view keeps the summary rows (and clears the
// position marker), player view keeps the lane rows.
func subsetRows(split Split) StageFunc {
	return func(rows []Row) ([]Row, error) {
		if !split.IsValid() {
			return nil, ErrInvalidSplit
		}

		out := make([]Row, 0, len(rows))
		for _, r := range rows {
			switch split {
			case SplitTeam:
				if r.Position == PositionTeam {
					r.Position = ""
					r.PlayerName = ""
					r.PlayerID = ""
					out = append(out, r)
				}
			case SplitPlayer:
				if playerPositions[r.Position] {
					out = append(out, r)
				}
			}
		}

		return out, nil
	}
}

// removeInconsistentGames drops every row of any game whose group size
// breaks the positional pairing precondition: exactly 2 rows per team-view
// game, exactly 10 per player-view game. The pairing walk assumes every
// fixed-size window is one whole game; an undersized group would shift the
// window onto neighboring games without ever tripping the bounds check, so
// partial games are rejected outright rather than paired.
func removeInconsistentGames(split Split) StageFunc {
	return func(rows []Row) ([]Row, error) {
		counts := make(map[string]int)
		for _, r := range rows {
			counts[r.GameID]++
		}

		want := 2 * split.Gap()
		consistent := func(n int) bool {
			return n == want
		}

		return filterFunc(func(r Row) bool {
			return consistent(counts[r.GameID])
		})(rows)
	}
}

// sortRows orders the table so that same-game rows are contiguous and
// correctly interleaved for the pairing walk: by league, date, game id,
// side, and (player view) position. The sort is stable so degenerate keys
// still produce a fixed-size-gap grouping.
func sortRows(split Split) StageFunc {
	return func(rows []Row) ([]Row, error) {
		out := make([]Row, len(rows))
		copy(out, rows)

		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			if a.League != b.League {
				return a.League < b.League
			}
			if !a.Date.Equal(b.Date) {
				return a.Date.Before(b.Date)
			}
			if a.GameID != b.GameID {
				return a.GameID < b.GameID
			}
			if a.Side != b.Side {
				return a.Side < b.Side
			}
			if split == SplitPlayer {
				return positionRank(a.Position) < positionRank(b.Position)
			}
			return false
		})

		return out, nil
	}
}

// positionRank orders lane positions the way the upstream data sorts them
// lexically, so both sides of a game line up position-for-position.
func positionRank(pos string) int {
	switch pos {
	case "bot":
		return 0
	case "jng":
		return 1
	case "mid":
		return 2
	case "sup":
		return 3
	case "top":
		return 4
	}
	return 5
}

// backfillIdentity substitutes display names for missing synthetic ids in
// the player view. Upstream data sometimes omits ids but always carries
// names, and the pairing keys must never be null.
func backfillIdentity(split Split) StageFunc {
	return func(rows []Row) ([]Row, error) {
		if split != SplitPlayer {
			return rows, nil
		}

		out := make([]Row, len(rows))
		copy(out, rows)

		for i := range out {
			if out[i].TeamID == "" {
				out[i].TeamID = out[i].TeamName
			}
			if out[i].PlayerID == "" {
				out[i].PlayerID = out[i].PlayerName
			}
		}

		return out, nil
	}
}
