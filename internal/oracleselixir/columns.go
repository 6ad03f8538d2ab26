package oracleselixir

import (
	"math"
	"strconv"
	"time"
)

// Fixed output projections for the interim tables. Header order is part of
// the output contract; downstream consumers address columns by name and
// position.

// TeamColumns is the interim team-table header.
var TeamColumns = []string{
	"date", "gameid", "side", "league", "teamname", "teamid", "result",
	"kills", "deaths", "assists", "earned gpm", "gamelength", "ckpm",
	"team kpm", "firstblood", "dragons", "barons", "towers",
	"goldat15", "xpat15", "csat15", "golddiffat15", "xpdiffat15", "csdiffat15",
	"opponentteam", "opponentteamid", "opponent_egpm",
	"dkpoints",
	"team_elo_before", "team_elo_after", "agg_player_elo",
	"trueskill_sum_mu", "trueskill_sigma_squared",
	"egpm_dominance", "egpm_dominance_ema_before", "egpm_dominance_ema_after",
	"blue_side_ema_before", "blue_side_ema_after",
	"red_side_ema_before", "red_side_ema_after",
	"kda_ema_before", "kda_ema_after",
	"golddiffat15_ema_before", "golddiffat15_ema_after",
	"csdiffat15_ema_before", "csdiffat15_ema_after",
	"dkpoints_ema_before", "dkpoints_ema_after",
}

// PlayerColumns is the interim player-table header.
var PlayerColumns = []string{
	"date", "gameid", "side", "position", "league",
	"playername", "playerid", "teamname", "teamid", "result",
	"kills", "deaths", "assists", "total cs", "earned gpm", "earnedgoldshare",
	"gamelength", "ckpm", "team kpm",
	"goldat15", "xpat15", "csat15",
	"killsat15", "assistsat15", "deathsat15",
	"opp_killsat15", "opp_assistsat15", "opp_deathsat15",
	"golddiffat15", "xpdiffat15", "csdiffat15",
	"opponentteam", "opponentteamid", "opponentname", "opponentid", "opponent_egpm",
	"dkpoints",
	"player_elo_before", "player_elo_after",
	"trueskill_mu", "trueskill_sigma",
	"egpm_dominance", "egpm_dominance_ema_before", "egpm_dominance_ema_after",
	"blue_side_ema_before", "blue_side_ema_after",
	"red_side_ema_before", "red_side_ema_after",
	"kda_ema_before", "kda_ema_after",
	"golddiffat15_ema_before", "golddiffat15_ema_after",
	"csdiffat15_ema_before", "csdiffat15_ema_after",
	"dkpoints_ema_before", "dkpoints_ema_after",
}

// Columns returns the interim header for the given split.
func Columns(split Split) ([]string, error) {
	switch split {
	case SplitTeam:
		return TeamColumns, nil
	case SplitPlayer:
		return PlayerColumns, nil
	}
	return nil, ErrInvalidSplit
}

// Record renders one row in the interim column order for the given split.
func Record(r Row, split Split) ([]string, error) {
	switch split {
	case SplitTeam:
		return []string{
			FormatDate(r.Date), r.GameID, r.Side, r.League, r.TeamName, r.TeamID,
			strconv.Itoa(r.Result),
			FormatFloat(r.Kills), FormatFloat(r.Deaths), FormatFloat(r.Assists),
			FormatFloat(r.EarnedGPM), FormatFloat(r.GameLength), FormatFloat(r.CKPM),
			FormatFloat(r.TeamKPM), FormatFloat(r.FirstBlood), FormatFloat(r.Dragons),
			FormatFloat(r.Barons), FormatFloat(r.Towers),
			FormatFloat(r.GoldAt15), FormatFloat(r.XPAt15), FormatFloat(r.CSAt15),
			FormatFloat(r.GoldDiffAt15), FormatFloat(r.XPDiffAt15), FormatFloat(r.CSDiffAt15),
			r.OpponentTeam, r.OpponentTeamID, FormatFloat(r.OpponentEGPM),
			FormatFloat(r.DKPoints),
			FormatFloat(r.EloBefore), FormatFloat(r.EloAfter), FormatFloat(r.AggPlayerElo),
			FormatFloat(r.TSSumMu), FormatFloat(r.TSSigSquared),
			FormatFloat(r.EGPMDominance),
			FormatFloat(r.EGPMDominanceEMABefore), FormatFloat(r.EGPMDominanceEMAAfter),
			FormatFloat(r.BlueSideEMABefore), FormatFloat(r.BlueSideEMAAfter),
			FormatFloat(r.RedSideEMABefore), FormatFloat(r.RedSideEMAAfter),
			FormatFloat(r.KDAEMABefore), FormatFloat(r.KDAEMAAfter),
			FormatFloat(r.GoldDiffAt15EMABefore), FormatFloat(r.GoldDiffAt15EMAAfter),
			FormatFloat(r.CSDiffAt15EMABefore), FormatFloat(r.CSDiffAt15EMAAfter),
			FormatFloat(r.DKPointsEMABefore), FormatFloat(r.DKPointsEMAAfter),
		}, nil
	case SplitPlayer:
		return []string{
			FormatDate(r.Date), r.GameID, r.Side, r.Position, r.League,
			r.PlayerName, r.PlayerID, r.TeamName, r.TeamID,
			strconv.Itoa(r.Result),
			FormatFloat(r.Kills), FormatFloat(r.Deaths), FormatFloat(r.Assists),
			FormatFloat(r.TotalCS), FormatFloat(r.EarnedGPM), FormatFloat(r.EarnedGoldShare),
			FormatFloat(r.GameLength), FormatFloat(r.CKPM), FormatFloat(r.TeamKPM),
			FormatFloat(r.GoldAt15), FormatFloat(r.XPAt15), FormatFloat(r.CSAt15),
			FormatFloat(r.KillsAt15), FormatFloat(r.AssistsAt15), FormatFloat(r.DeathsAt15),
			FormatFloat(r.OppKillsAt15), FormatFloat(r.OppAssistsAt15), FormatFloat(r.OppDeathsAt15),
			FormatFloat(r.GoldDiffAt15), FormatFloat(r.XPDiffAt15), FormatFloat(r.CSDiffAt15),
			r.OpponentTeam, r.OpponentTeamID, r.OpponentName, r.OpponentID,
			FormatFloat(r.OpponentEGPM),
			FormatFloat(r.DKPoints),
			FormatFloat(r.EloBefore), FormatFloat(r.EloAfter),
			FormatFloat(r.TrueSkillMu), FormatFloat(r.TrueSkillSig),
			FormatFloat(r.EGPMDominance),
			FormatFloat(r.EGPMDominanceEMABefore), FormatFloat(r.EGPMDominanceEMAAfter),
			FormatFloat(r.BlueSideEMABefore), FormatFloat(r.BlueSideEMAAfter),
			FormatFloat(r.RedSideEMABefore), FormatFloat(r.RedSideEMAAfter),
			FormatFloat(r.KDAEMABefore), FormatFloat(r.KDAEMAAfter),
			FormatFloat(r.GoldDiffAt15EMABefore), FormatFloat(r.GoldDiffAt15EMAAfter),
			FormatFloat(r.CSDiffAt15EMABefore), FormatFloat(r.CSDiffAt15EMAAfter),
			FormatFloat(r.DKPointsEMABefore), FormatFloat(r.DKPointsEMAAfter),
		}, nil
	}
	return nil, ErrInvalidSplit
}

// FormatDate renders a date the way the upstream CSVs carry it.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// FormatFloat renders a numeric cell, with NaN as the empty cell.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
