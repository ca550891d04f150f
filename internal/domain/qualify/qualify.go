// Package qualify computes minimum-sample-size qualification thresholds
// as a percentage of the league average for a denominator stat.
package qualify

import (
	"fmt"

	"github.com/gamechanger-stats/seasonstats/internal/domain/model"
)

// Denominator names used by threshold constraints.
const (
	PlateAppearances = "plate_appearances"
	InningsPitched   = "innings_pitched"
	Opportunities    = "fielding_opportunities"
)

const percentScale = 100

// Threshold is a computed qualification minimum for one category.
// It is replaced, never mutated, whenever the underlying record set or
// percentage changes.
type Threshold struct {
	Category    string  `json:"category"`
	Denominator string  `json:"denominator"`
	Percent     float64 `json:"percent"`
	Average     float64 `json:"league_average"`
	Minimum     float64 `json:"minimum"`
}

// LeagueAverage averages the positive values only. Records with a zero
// denominator are excluded from the population, not counted as zeros.
// An empty qualifying subset averages to 0.
func LeagueAverage(values []float64) float64 {
	var sum float64
	var n int
	for _, v := range values {
		if v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Compute builds the threshold for one category: the league average of
// the denominator values scaled by percent/100. Percent must be within
// [0,100]; anything else is a configuration error, never silently
// clamped.
func Compute(category, denominator string, values []float64, percent float64) (Threshold, error) {
	if percent < 0 || percent > percentScale {
		return Threshold{}, fmt.Errorf("%w: %s=%v", ErrPercentOutOfRange, category, percent)
	}
	avg := LeagueAverage(values)
	return Threshold{
		Category:    category,
		Denominator: denominator,
		Percent:     percent,
		Average:     avg,
		Minimum:     avg * (percent / percentScale),
	}, nil
}

// Batting computes the plate-appearance threshold over a derived set.
func Batting(records []model.BattingRecord, percent float64) (Threshold, error) {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = float64(r.PlateAppearances)
	}
	return Compute("batting", PlateAppearances, values, percent)
}

// Pitching computes the innings-pitched threshold over a derived set.
// The decimal innings field is used, so partial innings count as thirds.
func Pitching(records []model.PitchingRecord, percent float64) (Threshold, error) {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.Innings
	}
	return Compute("pitching", InningsPitched, values, percent)
}

// Fielding computes the fielding-opportunities threshold over a derived set.
func Fielding(records []model.FieldingRecord, percent float64) (Threshold, error) {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = float64(r.Opportunities)
	}
	return Compute("fielding", Opportunities, values, percent)
}
