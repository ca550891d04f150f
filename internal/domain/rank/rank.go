// Package rank builds ordered, size-bounded leaderboards from derived
// records. Ranking is a pure function of its inputs: filter by an
// optional qualification threshold, resolve the stat value, drop
// inactive records, stable-sort, then slice.
package rank

import (
	"fmt"
	"sort"

	"github.com/gamechanger-stats/seasonstats/internal/domain/model"
)

// Direction orders a board. Lower-is-better stats such as ERA and WHIP
// sort ascending; everything else descending.
type Direction int

const (
	Descending Direction = iota
	Ascending
)

// Candidate is one record prepared for ranking. Denominator carries the
// qualification stat (plate appearances, decimal innings, fielding
// opportunities); Valid is false when the stat value could not be
// resolved to a number.
type Candidate struct {
	Entry       model.LeaderboardEntry
	Denominator float64
	Valid       bool
}

// Ranking holds the full filtered-and-sorted sequence for one stat.
// Rank once, slice twice: Top never recomputes.
type Ranking struct {
	Stat    string
	entries []model.LeaderboardEntry
}

// Size returns the number of qualified entries.
func (r Ranking) Size() int { return len(r.entries) }

// Top returns the first n entries; the whole sequence when n exceeds it.
// A non-positive n yields an empty board.
func (r Ranking) Top(n int) []model.LeaderboardEntry {
	if n <= 0 {
		return nil
	}
	if n > len(r.entries) {
		n = len(r.entries)
	}
	out := make([]model.LeaderboardEntry, n)
	copy(out, r.entries[:n])
	return out
}

// Board materializes a size-limited leaderboard.
func (r Ranking) Board(limit int) model.Leaderboard {
	return model.Leaderboard{Stat: r.Stat, Entries: r.Top(limit)}
}

// Rank filters and orders candidates. minDenominator excludes records
// below the qualification threshold; pass 0 to disable. Records whose
// value is non-numeric or not positive never appear: a player with no
// recorded activity in a category has no rank in it. Ties keep the
// relative order of the input sequence.
func Rank(stat string, candidates []Candidate, dir Direction, minDenominator float64) Ranking {
	entries := make([]model.LeaderboardEntry, 0, len(candidates))
	for _, c := range candidates {
		if minDenominator > 0 && c.Denominator < minDenominator {
			continue
		}
		if !c.Valid || c.Entry.Value <= 0 {
			continue
		}
		entries = append(entries, c.Entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if dir == Ascending {
			return entries[i].Value < entries[j].Value
		}
		return entries[i].Value > entries[j].Value
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return Ranking{Stat: stat, entries: entries}
}

func playerEntry(p model.Player, value float64, display string) model.LeaderboardEntry {
	return model.LeaderboardEntry{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		TeamID:     p.TeamID,
		TeamName:   p.TeamName,
		TeamAvatar: p.TeamAvatar,
		Value:      value,
		Display:    display,
	}
}

func teamEntry(t model.TeamLine, value float64, display string) model.LeaderboardEntry {
	return model.LeaderboardEntry{
		TeamID:     t.TeamID,
		TeamName:   t.TeamName,
		TeamAvatar: t.TeamAvatar,
		Value:      value,
		Display:    display,
	}
}

// BattingBoard ranks batting records by stat. Rate stats are gated on
// the plate-appearance threshold; counting stats are not.
func BattingBoard(records []model.BattingRecord, stat string, minPA float64) (Ranking, error) {
	def, ok := battingStats[stat]
	if !ok {
		return Ranking{}, fmt.Errorf("%w: batting %q", ErrUnknownStat, stat)
	}
	min := 0.0
	if def.qualified {
		min = minPA
	}
	candidates := make([]Candidate, len(records))
	for i, r := range records {
		value, display := def.resolve(r)
		candidates[i] = Candidate{
			Entry:       playerEntry(r.Player, value, display),
			Denominator: float64(r.PlateAppearances),
			Valid:       true,
		}
	}
	return Rank(stat, candidates, def.dir, min), nil
}

// PitchingBoard ranks pitching records by stat. Rate stats are gated on
// the innings-pitched threshold, compared in decimal innings so partial
// innings count as thirds.
func PitchingBoard(records []model.PitchingRecord, stat string, minInnings float64) (Ranking, error) {
	def, ok := pitchingStats[stat]
	if !ok {
		return Ranking{}, fmt.Errorf("%w: pitching %q", ErrUnknownStat, stat)
	}
	min := 0.0
	if def.qualified {
		min = minInnings
	}
	candidates := make([]Candidate, len(records))
	for i, r := range records {
		value, display := def.resolve(r)
		candidates[i] = Candidate{
			Entry:       playerEntry(r.Player, value, display),
			Denominator: r.Innings,
			Valid:       true,
		}
	}
	return Rank(stat, candidates, def.dir, min), nil
}

// FieldingBoard ranks fielding records by stat; the fielding percentage
// is gated on the opportunities threshold.
func FieldingBoard(records []model.FieldingRecord, stat string, minOpportunities float64) (Ranking, error) {
	def, ok := fieldingStats[stat]
	if !ok {
		return Ranking{}, fmt.Errorf("%w: fielding %q", ErrUnknownStat, stat)
	}
	min := 0.0
	if def.qualified {
		min = minOpportunities
	}
	candidates := make([]Candidate, len(records))
	for i, r := range records {
		value, display := def.resolve(r)
		candidates[i] = Candidate{
			Entry:       playerEntry(r.Player, value, display),
			Denominator: float64(r.Opportunities),
			Valid:       true,
		}
	}
	return Rank(stat, candidates, def.dir, min), nil
}

// TeamBoard ranks team records by an already-derived per-game stat.
// No qualification threshold applies to team boards.
func TeamBoard(records []model.TeamRecord, stat string) (Ranking, error) {
	def, ok := teamStats[stat]
	if !ok {
		return Ranking{}, fmt.Errorf("%w: team %q", ErrUnknownStat, stat)
	}
	candidates := make([]Candidate, len(records))
	for i, r := range records {
		value, display := def.resolve(r)
		candidates[i] = Candidate{
			Entry: teamEntry(r.TeamLine, value, display),
			Valid: true,
		}
	}
	return Rank(stat, candidates, def.dir, 0), nil
}
