// Package derive turns raw counting stats into rate stats. All functions
// are pure: a zero denominator yields a rate of exactly 0 and unparseable
// numeric input is treated as 0, so no derivation can fail.
package derive

import (
	"fmt"

	"github.com/gamechanger-stats/seasonstats/internal/domain/model"
)

// Display precision per stat family.
const (
	battingRatePlaces = 3
	pitchingPlaces    = 2
	strikePctPlaces   = 1
	perGamePlaces     = 2
	inningsPerGame    = 9
)

// BattingAverage returns hits over at-bats.
func BattingAverage(hits, atBats int) float64 {
	if atBats <= 0 {
		return 0
	}
	return float64(hits) / float64(atBats)
}

// OnBasePercentage returns times-on-base over plate appearances.
func OnBasePercentage(hits, walks, hitByPitch, plateAppearances int) float64 {
	if plateAppearances <= 0 {
		return 0
	}
	return float64(hits+walks+hitByPitch) / float64(plateAppearances)
}

// SluggingPercentage returns total bases over at-bats.
func SluggingPercentage(singles, doubles, triples, homeRuns, atBats int) float64 {
	if atBats <= 0 {
		return 0
	}
	totalBases := singles + doubles*2 + triples*3 + homeRuns*4
	return float64(totalBases) / float64(atBats)
}

// ERA returns earned runs per nine innings. innings is the decimal form
// of the innings-pitched value (outs as thirds).
func ERA(earnedRuns int, innings float64) float64 {
	if innings <= 0 {
		return 0
	}
	return float64(earnedRuns) * inningsPerGame / innings
}

// WHIP returns walks plus hits allowed per inning pitched.
func WHIP(walks, hitsAllowed int, innings float64) float64 {
	if innings <= 0 {
		return 0
	}
	return float64(walks+hitsAllowed) / innings
}

// FieldingPercentage returns successful plays over total chances.
func FieldingPercentage(putouts, assists, errors int) float64 {
	chances := putouts + assists + errors
	if chances <= 0 {
		return 0
	}
	return float64(putouts+assists) / float64(chances)
}

// PerGame returns a season total spread over games played.
func PerGame(total, gamesPlayed int) float64 {
	if gamesPlayed <= 0 {
		return 0
	}
	return float64(total) / float64(gamesPlayed)
}

// FormatRate renders a rate at fixed precision for display.
func FormatRate(v float64, places int) string {
	return fmt.Sprintf("%.*f", places, v)
}

// Batting derives the rate stats for one batting line.
func Batting(line model.BattingLine) model.BattingRecord {
	r := model.BattingRecord{BattingLine: line}
	r.BattingAvg = BattingAverage(line.Hits, line.AtBats)
	r.OnBasePct = OnBasePercentage(line.Hits, line.Walks, line.HitByPitch, line.PlateAppearances)
	r.SluggingPct = SluggingPercentage(line.Singles, line.Doubles, line.Triples, line.HomeRuns, line.AtBats)
	r.BattingAvgDisplay = FormatRate(r.BattingAvg, battingRatePlaces)
	r.OnBasePctDisplay = FormatRate(r.OnBasePct, battingRatePlaces)
	r.SluggingPctDisplay = FormatRate(r.SluggingPct, battingRatePlaces)
	return r
}

// Pitching derives the rate stats for one pitching line. The innings
// string is parsed once here; every downstream consumer reads the
// decimal field.
func Pitching(line model.PitchingLine) model.PitchingRecord {
	r := model.PitchingRecord{PitchingLine: line}
	r.Innings = ParseInningsPitched(line.InningsPitched)
	r.ERA = ERA(line.EarnedRuns, r.Innings)
	r.WHIP = WHIP(line.Walks, line.HitsAllowed, r.Innings)
	r.StrikePct = line.StrikeRatio * 100
	r.ERADisplay = FormatRate(r.ERA, pitchingPlaces)
	r.WHIPDisplay = FormatRate(r.WHIP, pitchingPlaces)
	r.StrikePctDisplay = FormatRate(r.StrikePct, strikePctPlaces)
	return r
}

// Fielding derives the fielding percentage for one fielding line.
func Fielding(line model.FieldingLine) model.FieldingRecord {
	r := model.FieldingRecord{FieldingLine: line}
	r.FieldingPct = FieldingPercentage(line.Putouts, line.Assists, line.Errors)
	r.FieldingPctDisplay = FormatRate(r.FieldingPct, battingRatePlaces)
	return r
}

// Team derives the per-game rates for one team line.
func Team(line model.TeamLine) model.TeamRecord {
	r := model.TeamRecord{TeamLine: line}
	r.RunsPerGame = PerGame(line.RunsScored, line.GamesPlayed)
	r.RunsAllowedPerGame = PerGame(line.RunsAllowed, line.GamesPlayed)
	r.RunsPerGameDisplay = FormatRate(r.RunsPerGame, perGamePlaces)
	r.RunsAllowedPerGameDisplay = FormatRate(r.RunsAllowedPerGame, perGamePlaces)
	return r
}

// Snapshot derives every record in a raw snapshot. Input order is
// preserved; the result shares no state with the input slices.
func Snapshot(raw model.RawSnapshot) model.Snapshot {
	snap := model.Snapshot{
		Batting:  make([]model.BattingRecord, len(raw.Batting)),
		Pitching: make([]model.PitchingRecord, len(raw.Pitching)),
		Fielding: make([]model.FieldingRecord, len(raw.Fielding)),
		Teams:    make([]model.TeamRecord, len(raw.Teams)),
	}
	for i, line := range raw.Batting {
		snap.Batting[i] = Batting(line)
	}
	for i, line := range raw.Pitching {
		snap.Pitching[i] = Pitching(line)
	}
	for i, line := range raw.Fielding {
		snap.Fielding[i] = Fielding(line)
	}
	for i, line := range raw.Teams {
		snap.Teams[i] = Team(line)
	}
	return snap
}
