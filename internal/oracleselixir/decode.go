package oracleselixir

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// Upstream date formats. Anything else is malformed input and fails the
// whole run; there is no partial tolerance for bad dates.
var dateFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01-02T15:04:05",
}

// Column names referenced from the upstream schema. Missing required
// columns fail decoding outright.
var requiredColumns = []string{
	"gameid",
	"date",
	"league",
	"side",
	"position",
	"teamname",
	"teamid",
	"playername",
	"playerid",
	"result",
	"earned gpm",
}

// DecodeCSV reads one yearly Oracle's Elixir CSV into match rows. Columns
// are located by header name so the decoder survives upstream column
// reordering, but a missing required column or an unparsable date is a
// hard failure.
func DecodeCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}

	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	field := func(record []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	number := func(record []string, name string) float64 {
		s := strings.TrimSpace(field(record, name))
		if s == "" {
			return math.NaN()
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return v
	}

	var rows []Row
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record (line %d): %w", line+1, err)
		}
		line++

		date, err := parseDate(strings.TrimSpace(field(record, "date")))
		if err != nil {
			return nil, fmt.Errorf("parse date (line %d): %w", line, err)
		}

		result := 0
		if v := number(record, "result"); v == 1 {
			result = 1
		}

		rows = append(rows, Row{
			GameID:   field(record, "gameid"),
			Date:     date,
			League:   field(record, "league"),
			Side:     field(record, "side"),
			Position: field(record, "position"),

			TeamName:   field(record, "teamname"),
			TeamID:     field(record, "teamid"),
			PlayerName: field(record, "playername"),
			PlayerID:   field(record, "playerid"),

			Result: result,

			Kills:           number(record, "kills"),
			Deaths:          number(record, "deaths"),
			Assists:         number(record, "assists"),
			TotalCS:         number(record, "total cs"),
			EarnedGPM:       number(record, "earned gpm"),
			EarnedGoldShare: number(record, "earnedgoldshare"),
			GameLength:      number(record, "gamelength"),
			CKPM:            number(record, "ckpm"),
			TeamKPM:         number(record, "team kpm"),

			FirstBlood: number(record, "firstblood"),
			Dragons:    number(record, "dragons"),
			Barons:     number(record, "barons"),
			Towers:     number(record, "towers"),

			GoldAt15:       number(record, "goldat15"),
			XPAt15:         number(record, "xpat15"),
			CSAt15:         number(record, "csat15"),
			KillsAt15:      number(record, "killsat15"),
			AssistsAt15:    number(record, "assistsat15"),
			DeathsAt15:     number(record, "deathsat15"),
			OppKillsAt15:   number(record, "opp_killsat15"),
			OppAssistsAt15: number(record, "opp_assistsat15"),
			OppDeathsAt15:  number(record, "opp_deathsat15"),
			GoldDiffAt15:   number(record, "golddiffat15"),
			XPDiffAt15:     number(record, "xpdiffat15"),
			CSDiffAt15:     number(record, "csdiffat15"),
		})
	}

	return rows, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}
