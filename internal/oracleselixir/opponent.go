package oracleselixir

import "fmt"

// Opponents returns, for every element of vals, the value belonging to the
// entity on the other side of the same game. The input must already be
// sorted so that each window of 2*gap consecutive elements is exactly one
// game, the first gap elements one side and the next gap elements the
// other, in matching per-position order. Under that invariant the first
// half of each window pairs with the element gap positions ahead and the
// second half with the element gap positions behind.
//
// Any index escaping the sequence means the grouping or sort invariant was
// violated upstream; that is a fatal ErrPairingBounds, never a value to
// paper over.
func Opponents[T any](vals []T, gap int) ([]T, error) {
	if gap < 1 {
		return nil, fmt.Errorf("%w: gap %d", ErrPairingBounds, gap)
	}

	out := make([]T, 0, len(vals))
	flag := 0

	for i := range vals {
		switch {
		case flag < gap:
			if i+gap >= len(vals) {
				return nil, fmt.Errorf("%w: index %d, gap %d, length %d", ErrPairingBounds, i, gap, len(vals))
			}
			out = append(out, vals[i+gap])
			flag++
		case flag < gap*2:
			if i-gap < 0 {
				return nil, fmt.Errorf("%w: index %d, gap %d", ErrPairingBounds, i, gap)
			}
			out = append(out, vals[i-gap])
			flag++
		}

		// Both sides enumerated, next window is a new game.
		if flag >= gap*2 {
			flag = 0
		}
	}

	return out, nil
}

// pairOpponents fills the opponent columns for the given split. The team
// frame carries no player identity, so the team view pairs team name/id;
// the player view pairs both the opposing player and that player's team.
func pairOpponents(split Split) StageFunc {
	return func(rows []Row) ([]Row, error) {
		gap := split.Gap()

		egpm := make([]float64, len(rows))
		teams := make([]string, len(rows))
		teamIDs := make([]string, len(rows))

		for i, r := range rows {
			egpm[i] = r.EarnedGPM
			teams[i] = r.TeamName
			teamIDs[i] = r.TeamID
		}

		oppTeams, err := Opponents(teams, gap)
		if err != nil {
			return nil, err
		}
		oppTeamIDs, err := Opponents(teamIDs, gap)
		if err != nil {
			return nil, err
		}
		oppEGPM, err := Opponents(egpm, gap)
		if err != nil {
			return nil, err
		}

		out := make([]Row, len(rows))
		copy(out, rows)

		for i := range out {
			out[i].OpponentTeam = oppTeams[i]
			out[i].OpponentTeamID = oppTeamIDs[i]
			out[i].OpponentEGPM = oppEGPM[i]
		}

		if split == SplitPlayer {
			names := make([]string, len(rows))
			ids := make([]string, len(rows))
			for i, r := range rows {
				names[i] = r.PlayerName
				ids[i] = r.PlayerID
			}

			oppNames, err := Opponents(names, gap)
			if err != nil {
				return nil, err
			}
			oppIDs, err := Opponents(ids, gap)
			if err != nil {
				return nil, err
			}
			for i := range out {
				out[i].OpponentName = oppNames[i]
				out[i].OpponentID = oppIDs[i]
			}
		}

		return out, nil
	}
}
