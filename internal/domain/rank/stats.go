package rank

import (
	"strconv"

	"github.com/gamechanger-stats/seasonstats/internal/domain/model"
)

// Sort direction is fixed per statistic rather than inferred: ERA and
// WHIP rank ascending, every other stat descending, with runs allowed
// per game the one ascending team stat.

type battingDef struct {
	dir       Direction
	qualified bool
	resolve   func(model.BattingRecord) (float64, string)
}

type pitchingDef struct {
	dir       Direction
	qualified bool
	resolve   func(model.PitchingRecord) (float64, string)
}

type fieldingDef struct {
	dir       Direction
	qualified bool
	resolve   func(model.FieldingRecord) (float64, string)
}

type teamDef struct {
	dir     Direction
	resolve func(model.TeamRecord) (float64, string)
}

func count(n int) (float64, string) {
	return float64(n), strconv.Itoa(n)
}

var battingStats = map[string]battingDef{
	"batting_avg": {Descending, true, func(r model.BattingRecord) (float64, string) {
		return r.BattingAvg, r.BattingAvgDisplay
	}},
	"on_base_pct": {Descending, true, func(r model.BattingRecord) (float64, string) {
		return r.OnBasePct, r.OnBasePctDisplay
	}},
	"slugging_pct": {Descending, true, func(r model.BattingRecord) (float64, string) {
		return r.SluggingPct, r.SluggingPctDisplay
	}},
	"hits":      {Descending, false, func(r model.BattingRecord) (float64, string) { return count(r.Hits) }},
	"doubles":   {Descending, false, func(r model.BattingRecord) (float64, string) { return count(r.Doubles) }},
	"triples":   {Descending, false, func(r model.BattingRecord) (float64, string) { return count(r.Triples) }},
	"home_runs": {Descending, false, func(r model.BattingRecord) (float64, string) { return count(r.HomeRuns) }},
	"rbi":       {Descending, false, func(r model.BattingRecord) (float64, string) { return count(r.RBI) }},
	"walks":     {Descending, false, func(r model.BattingRecord) (float64, string) { return count(r.Walks) }},
	"strikeouts": {Descending, false, func(r model.BattingRecord) (float64, string) {
		return count(r.Strikeouts)
	}},
}

var pitchingStats = map[string]pitchingDef{
	"era": {Ascending, true, func(r model.PitchingRecord) (float64, string) {
		return r.ERA, r.ERADisplay
	}},
	"whip": {Ascending, true, func(r model.PitchingRecord) (float64, string) {
		return r.WHIP, r.WHIPDisplay
	}},
	"strike_pct": {Descending, true, func(r model.PitchingRecord) (float64, string) {
		return r.StrikePct, r.StrikePctDisplay
	}},
	"innings_pitched": {Descending, false, func(r model.PitchingRecord) (float64, string) {
		return r.Innings, r.InningsPitched
	}},
	"strikeouts": {Descending, false, func(r model.PitchingRecord) (float64, string) {
		return count(r.Strikeouts)
	}},
	"wins": {Descending, false, func(r model.PitchingRecord) (float64, string) { return count(r.Wins) }},
}

var fieldingStats = map[string]fieldingDef{
	"fielding_pct": {Descending, true, func(r model.FieldingRecord) (float64, string) {
		return r.FieldingPct, r.FieldingPctDisplay
	}},
	"putouts": {Descending, false, func(r model.FieldingRecord) (float64, string) { return count(r.Putouts) }},
	"assists": {Descending, false, func(r model.FieldingRecord) (float64, string) { return count(r.Assists) }},
	"double_plays": {Descending, false, func(r model.FieldingRecord) (float64, string) {
		return count(r.DoublePlays)
	}},
}

var teamStats = map[string]teamDef{
	"runs_per_game": {Descending, func(r model.TeamRecord) (float64, string) {
		return r.RunsPerGame, r.RunsPerGameDisplay
	}},
	"runs_allowed_per_game": {Ascending, func(r model.TeamRecord) (float64, string) {
		return r.RunsAllowedPerGame, r.RunsAllowedPerGameDisplay
	}},
}

// BattingStatNames lists the batting board names in a stable order.
func BattingStatNames() []string {
	return []string{"batting_avg", "on_base_pct", "slugging_pct", "hits", "doubles", "triples", "home_runs", "rbi", "walks", "strikeouts"}
}

// PitchingStatNames lists the pitching board names in a stable order.
func PitchingStatNames() []string {
	return []string{"era", "whip", "strike_pct", "innings_pitched", "strikeouts", "wins"}
}

// FieldingStatNames lists the fielding board names in a stable order.
func FieldingStatNames() []string {
	return []string{"fielding_pct", "putouts", "assists", "double_plays"}
}

// TeamStatNames lists the team board names in a stable order.
func TeamStatNames() []string {
	return []string{"runs_per_game", "runs_allowed_per_game"}
}
