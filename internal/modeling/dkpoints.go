package modeling

import "oecli/internal/oracleselixir"

// DraftKings LoL classic scoring.
const (
	dkKillPoints   = 3.0
	dkDeathPoints  = -1.0
	dkAssistPoints = 2.0
	dkCSPoints     = 0.02
	dkTenPlusBonus = 2.0 // 10+ kills or 10+ assists

	dkTeamWinPoints        = 2.0
	dkTeamTowerPoints      = 1.0
	dkTeamDragonPoints     = 2.0
	dkTeamBaronPoints      = 3.0
	dkTeamFirstBloodPoints = 2.0
	dkTeamFastWinBonus     = 2.0 // win in under 30 minutes

	fastWinSeconds = 30 * 60
)

// enrichPlayerDKPoints writes the per-player fantasy score.
func enrichPlayerDKPoints(rows []oracleselixir.Row) {
	for i := range rows {
		r := &rows[i]

		points := dkKillPoints*nz(r.Kills) +
			dkDeathPoints*nz(r.Deaths) +
			dkAssistPoints*nz(r.Assists) +
			dkCSPoints*nz(r.TotalCS)

		if nz(r.Kills) >= 10 || nz(r.Assists) >= 10 {
			points += dkTenPlusBonus
		}

		r.DKPoints = points
	}
}

// enrichTeamDKPoints writes the per-team fantasy score from objectives and
// the game result.
func enrichTeamDKPoints(rows []oracleselixir.Row) {
	for i := range rows {
		r := &rows[i]

		points := dkTeamTowerPoints*nz(r.Towers) +
			dkTeamDragonPoints*nz(r.Dragons) +
			dkTeamBaronPoints*nz(r.Barons) +
			dkTeamFirstBloodPoints*nz(r.FirstBlood)

		if r.Won() {
			points += dkTeamWinPoints
			if nz(r.GameLength) > 0 && r.GameLength < fastWinSeconds {
				points += dkTeamFastWinBonus
			}
		}

		r.DKPoints = points
	}
}
