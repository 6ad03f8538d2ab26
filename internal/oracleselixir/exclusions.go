package oracleselixir

// Known-bad game identifiers, excluded unconditionally before cleaning.
// A manual data-quality patch for upstream records that break the rating
// models, not a general mechanism.

// playerMissingGames lists games where a player is missing entirely from
// the upstream data.
var playerMissingGames = map[string]bool{
	"10074-10074_game_2":    true,
	"ESPORTSTMNT02_3170083": true,
	"10074-10074_game_1":    true,
	"ESPORTSTMNT02_3161035": true,
	"ESPORTSTMNT02_3171378": true,
	"ESPORTSTMNT02_3169606": true,
	"10062-10062_game_3":    true,
	"ESPORTSTMNT02_3161006": true,
	"10062-10062_game_2":    true,
	"10062-10062_game_1":    true,
	"ESPORTSTMNT02_3160621": true,
}

// invalidGames lists games where both sides are recorded as the same team,
// which is invalid for the rating updates.
var invalidGames = map[string]bool{
	"NA1/3754345055":        true,
	"NA1/3754344502":        true,
	"ESPORTSTMNT02/1890835": true,
	"NA1/3669212337":        true,
	"NA1/3669211958":        true,
	"ESPORTSTMNT02/1890848": true,
	"ESPORTSTMNT02_1932895": true,
	"ESPORTSTMNT02_1932914": true,
	"ESPORTSTMNT05_3220607": true,
}

// RemoveKnownBadGames drops every row of the hardcoded exclusion lists,
// regardless of row content.
func RemoveKnownBadGames(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if playerMissingGames[r.GameID] || invalidGames[r.GameID] {
			continue
		}
		out = append(out, r)
	}
	return out
}
