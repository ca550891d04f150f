// Package adjust rescales rate stats for scorer bias. Each player may
// carry an externally supplied strictness score, roughly in [-1,1]; a
// single global factor in [0,100] scales how much of that bias is
// applied. The maximum possible adjustment is 10% of the original value.
package adjust

import (
	"github.com/gamechanger-stats/seasonstats/internal/domain/derive"
	"github.com/gamechanger-stats/seasonstats/internal/domain/model"
)

const (
	// maxSwing bounds the adjustment magnitude at 10% of the value.
	maxSwing     = 0.1
	factorScale  = 100
	boundedUpper = 1.0
)

// Index maps player ids to strictness scores. A missing player is
// neutral: no adjustment.
type Index map[string]float64

// Strictness returns the score for a player, 0 when absent.
func (i Index) Strictness(playerID string) float64 {
	if i == nil {
		return 0
	}
	return i[playerID]
}

// Value applies the adjustment to one rate value:
//
//	adjusted = v * (1 + s*(f/100)*0.1)
//
// A zero value is a fixed point regardless of s and f, and the result
// is floored at 0.
func Value(v, strictness, factor float64) float64 {
	if v == 0 {
		return 0
	}
	adjusted := v * (1 + strictness*(factor/factorScale)*maxSwing)
	if adjusted < 0 {
		return 0
	}
	return adjusted
}

// Bounded applies Value and additionally caps the result at 1.0, for
// rates that are themselves bounded percentages (batting average,
// on-base percentage, fielding percentage).
func Bounded(v, strictness, factor float64) float64 {
	adjusted := Value(v, strictness, factor)
	if adjusted > boundedUpper {
		return boundedUpper
	}
	return adjusted
}

// Batting returns a copy of the records with batting rates adjusted for
// each player's strictness. Displays are re-rendered from the adjusted
// values. The input is never mutated.
func Batting(records []model.BattingRecord, idx Index, factor float64) []model.BattingRecord {
	out := make([]model.BattingRecord, len(records))
	for i, r := range records {
		s := idx.Strictness(r.ID)
		r.BattingAvg = Bounded(r.BattingAvg, s, factor)
		r.OnBasePct = Bounded(r.OnBasePct, s, factor)
		r.SluggingPct = Value(r.SluggingPct, s, factor)
		r.BattingAvgDisplay = derive.FormatRate(r.BattingAvg, 3)
		r.OnBasePctDisplay = derive.FormatRate(r.OnBasePct, 3)
		r.SluggingPctDisplay = derive.FormatRate(r.SluggingPct, 3)
		out[i] = r
	}
	return out
}

// Fielding returns a copy of the records with the fielding percentage
// adjusted for each player's strictness.
func Fielding(records []model.FieldingRecord, idx Index, factor float64) []model.FieldingRecord {
	out := make([]model.FieldingRecord, len(records))
	for i, r := range records {
		r.FieldingPct = Bounded(r.FieldingPct, idx.Strictness(r.ID), factor)
		r.FieldingPctDisplay = derive.FormatRate(r.FieldingPct, 3)
		out[i] = r
	}
	return out
}

// Snapshot applies the adjustment across a whole derived snapshot.
// Pitching and team records pass through untouched; the scorer-bias
// model covers batting and fielding rates only.
func Snapshot(snap model.Snapshot, idx Index, factor float64) model.Snapshot {
	if len(idx) == 0 || factor == 0 {
		return snap
	}
	snap.Batting = Batting(snap.Batting, idx, factor)
	snap.Fielding = Fielding(snap.Fielding, idx, factor)
	return snap
}
