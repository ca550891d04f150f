package rank

import "errors"

// Sentinel kinds for ranking errors.
var (
	ErrUnknownStat = errors.New("unknown leaderboard stat")
)
