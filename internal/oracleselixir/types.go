package oracleselixir

import (
	"errors"
	"time"
)

// Split selects which view of the match data a pipeline produces.
// Team view carries two rows per game (one per side); player view carries
// up to ten rows per game (five positions per side).
type Split string

const (
	SplitTeam   Split = "team"
	SplitPlayer Split = "player"
)

// Sentinel errors for the cleaning pipeline.
var (
	// ErrInvalidSplit is returned when a split other than team or player
	// is requested.
	ErrInvalidSplit = errors.New("split must be either team or player")

	// ErrPairingBounds is returned when the opponent-pairing walk would
	// address an index outside the sequence. It signals that the
	// grouping/sort invariant was violated upstream and must not be
	// swallowed.
	ErrPairingBounds = errors.New("opponent pairing index out of bounds")
)

// IsValid reports whether the split is one of the two supported views.
func (s Split) IsValid() bool {
	return s == SplitTeam || s == SplitPlayer
}

// Gap returns the row offset separating an entity from its opponent in a
// sorted game group: 1 for teams (Blue, Red), 5 for players (a position on
// the blue side is mirrored by the same position five rows later).
func (s Split) Gap() int {
	if s == SplitPlayer {
		return 5
	}
	return 1
}

// String returns the split name as used in flags and log output.
func (s Split) String() string {
	return string(s)
}

// PositionTeam marks the per-game summary rows in the upstream data set.
// The five player rows of a side use the lane positions below.
const PositionTeam = "team"

// playerPositions enumerates the five lane positions in the order the
// upstream data sorts them within a side.
var playerPositions = map[string]bool{
	"top": true,
	"jng": true,
	"mid": true,
	"bot": true,
	"sup": true,
}

// Row is one participant-game record from the Oracle's Elixir data set.
// A zero string value in an identity column is the null marker; missing
// numeric stats are NaN so that comparisons against them fail closed, the
// same way the upstream source treats absent values.
type Row struct {
	GameID   string
	Date     time.Time
	League   string
	Side     string
	Position string

	TeamName   string
	TeamID     string
	PlayerName string
	PlayerID   string

	Result int

	Kills           float64
	Deaths          float64
	Assists         float64
	TotalCS         float64
	EarnedGPM       float64
	EarnedGoldShare float64
	GameLength      float64
	CKPM            float64
	TeamKPM         float64

	FirstBlood float64
	Dragons    float64
	Barons     float64
	Towers     float64

	GoldAt15       float64
	XPAt15         float64
	CSAt15         float64
	KillsAt15      float64
	AssistsAt15    float64
	DeathsAt15     float64
	OppKillsAt15   float64
	OppAssistsAt15 float64
	OppDeathsAt15  float64
	GoldDiffAt15   float64
	XPDiffAt15     float64
	CSDiffAt15     float64

	// Opponent columns, derived by the pairing stage.
	OpponentTeam   string
	OpponentTeamID string
	OpponentName   string
	OpponentID     string
	OpponentEGPM   float64

	// Enrichment columns, written by the modeling stages.
	DKPoints float64

	EloBefore     float64
	EloAfter      float64
	AggPlayerElo  float64 // team view: roster mean of player Elo after the game
	TrueSkillMu   float64 // player view: posterior mean after the game
	TrueSkillSig  float64 // player view: posterior std dev after the game
	TSSumMu       float64 // team view: roster sum of posterior means
	TSSigSquared  float64 // team view: roster sum of posterior variances
	EGPMDominance float64

	EGPMDominanceEMABefore float64
	EGPMDominanceEMAAfter  float64
	BlueSideEMABefore      float64
	BlueSideEMAAfter       float64
	RedSideEMABefore       float64
	RedSideEMAAfter        float64
	KDAEMABefore           float64
	KDAEMAAfter            float64
	GoldDiffAt15EMABefore  float64
	GoldDiffAt15EMAAfter   float64
	CSDiffAt15EMABefore    float64
	CSDiffAt15EMAAfter     float64
	DKPointsEMABefore      float64
	DKPointsEMAAfter       float64
}

// KDA returns kills-plus-assists over deaths, with deaths floored at one so
// deathless games stay finite.
func (r Row) KDA() float64 {
	d := r.Deaths
	if d < 1 {
		d = 1
	}
	return (r.Kills + r.Assists) / d
}

// Won reports whether the entity on this row won the game.
func (r Row) Won() bool {
	return r.Result == 1
}

// HasGameID reports whether the row carries a non-null game identifier.
func (r Row) HasGameID() bool {
	return r.GameID != ""
}

// isNull reports whether a raw identity value represents a null: empty,
// or one of the literal markers the upstream CSVs use for missing data.
func isNull(s string) bool {
	switch s {
	case "", "nan", "NaN", "null":
		return true
	}
	return false
}
