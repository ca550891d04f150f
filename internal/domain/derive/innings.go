package derive

import (
	"math"
	"strconv"
	"strings"
)

const outsPerInning = 3

// ParseInningsPitched converts the MLB fractional-thirds notation to a
// decimal innings count: "5.2" means five innings and two outs, 5 + 2/3.
// The whole part defaults to 0 when unparseable. The fractional part
// must be exactly one digit in {0,1,2}; anything else counts as 0 outs,
// keeping the whole-innings part.
func ParseInningsPitched(s string) float64 {
	whole, frac, _ := strings.Cut(strings.TrimSpace(s), ".")

	innings, err := strconv.Atoi(whole)
	if err != nil || innings < 0 {
		innings = 0
	}

	outs := 0
	if len(frac) == 1 {
		if o, err := strconv.Atoi(frac); err == nil && o >= 0 && o < outsPerInning {
			outs = o
		}
	}

	return float64(innings) + float64(outs)/outsPerInning
}

// FormatInningsPitched is the inverse of ParseInningsPitched: it renders
// a decimal innings count as "<whole>.<outs>" with outs in {0,1,2}.
// Rounding the fractional thirds keeps the parse/format round trip exact
// for any value ParseInningsPitched can produce.
func FormatInningsPitched(innings float64) string {
	if innings < 0 {
		innings = 0
	}
	whole := int(innings)
	outs := int(math.Round((innings - float64(whole)) * outsPerInning))
	if outs >= outsPerInning {
		whole++
		outs = 0
	}
	return strconv.Itoa(whole) + "." + strconv.Itoa(outs)
}

// ParseDecimal parses a numeric-looking string, returning 0 for anything
// that does not parse. Rate stats arrive from loosely-typed sources as
// text; this is the single fallback rule for all of them.
func ParseDecimal(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
