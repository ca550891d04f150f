// Package model contains domain models passed between layers.
package model

// Player identifies a player within a season snapshot. IDs are unique
// per category and snapshot; the avatar is optional.
type Player struct {
	Name       string `json:"player_name"`
	Number     string `json:"player_number"`
	ID         string `json:"player_id"`
	TeamName   string `json:"team_name"`
	TeamID     string `json:"team_id"`
	TeamAvatar string `json:"team_avatar,omitempty"`
}

// BattingLine holds raw offensive counting stats for one player.
type BattingLine struct {
	Player
	Games            int `json:"games"`
	AtBats           int `json:"at_bats"`
	PlateAppearances int `json:"plate_appearances"`
	Hits             int `json:"hits"`
	Singles          int `json:"singles"`
	Doubles          int `json:"doubles"`
	Triples          int `json:"triples"`
	HomeRuns         int `json:"home_runs"`
	RBI              int `json:"rbi"`
	Walks            int `json:"walks"`
	HitByPitch       int `json:"hit_by_pitch"`
	SacFlies         int `json:"sac_flies"`
	Strikeouts       int `json:"strikeouts"`
}

// PitchingLine holds raw pitching counting stats for one player.
// InningsPitched uses the MLB fractional-thirds notation, e.g. "5.2"
// for five and two-thirds innings. StrikeRatio arrives from upstream
// as an already-computed 0..1 ratio.
type PitchingLine struct {
	Player
	Games          int     `json:"games"`
	InningsPitched string  `json:"innings_pitched"`
	HitsAllowed    int     `json:"hits_allowed"`
	RunsAllowed    int     `json:"runs_allowed"`
	EarnedRuns     int     `json:"earned_runs"`
	Walks          int     `json:"walks"`
	Strikeouts     int     `json:"strikeouts"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	StrikeRatio    float64 `json:"strike_ratio"`
}

// FieldingLine holds raw fielding counting stats for one player.
// Opportunities counts successful chances (putouts + assists).
type FieldingLine struct {
	Player
	Games         int `json:"games"`
	Opportunities int `json:"fielding_opportunities"`
	Putouts       int `json:"putouts"`
	Assists       int `json:"assists"`
	Errors        int `json:"errors"`
	DoublePlays   int `json:"double_plays"`
}

// TeamLine holds raw season results for one team.
type TeamLine struct {
	TeamName    string `json:"team_name"`
	TeamID      string `json:"team_id"`
	TeamAvatar  string `json:"team_avatar,omitempty"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Ties        int    `json:"ties"`
	RunsScored  int    `json:"runs_scored"`
	RunsAllowed int    `json:"runs_allowed"`
}

// RawSnapshot bundles the raw stat lines for one organization and season,
// as fetched and normalized by the upstream client.
type RawSnapshot struct {
	Batting  []BattingLine
	Pitching []PitchingLine
	Fielding []FieldingLine
	Teams    []TeamLine
}

// BattingRecord is a batting line with derived rate stats. Numeric rate
// fields are the source of truth; the display strings carry the wire
// representation at fixed precision.
type BattingRecord struct {
	BattingLine
	BattingAvg         float64 `json:"-"`
	OnBasePct          float64 `json:"-"`
	SluggingPct        float64 `json:"-"`
	BattingAvgDisplay  string  `json:"batting_avg"`
	OnBasePctDisplay   string  `json:"on_base_pct"`
	SluggingPctDisplay string  `json:"slugging_pct"`
}

// PitchingRecord is a pitching line with derived rate stats. Innings
// is the decimal form of InningsPitched (outs as thirds). StrikePct is
// on the 0..100 scale.
type PitchingRecord struct {
	PitchingLine
	Innings          float64 `json:"-"`
	ERA              float64 `json:"-"`
	WHIP             float64 `json:"-"`
	StrikePct        float64 `json:"-"`
	ERADisplay       string  `json:"era"`
	WHIPDisplay      string  `json:"whip"`
	StrikePctDisplay string  `json:"strike_pct"`
}

// FieldingRecord is a fielding line with the derived fielding percentage.
type FieldingRecord struct {
	FieldingLine
	FieldingPct        float64 `json:"-"`
	FieldingPctDisplay string  `json:"fielding_pct"`
}

// TeamRecord is a team line with derived per-game rates.
type TeamRecord struct {
	TeamLine
	RunsPerGame               float64 `json:"-"`
	RunsAllowedPerGame        float64 `json:"-"`
	RunsPerGameDisplay        string  `json:"runs_per_game"`
	RunsAllowedPerGameDisplay string  `json:"runs_allowed_per_game"`
}

// Snapshot holds the derived records for one organization and season.
// Every rate field is populated; zero denominators derive to exactly 0.
type Snapshot struct {
	Batting  []BattingRecord  `json:"batting"`
	Pitching []PitchingRecord `json:"pitching"`
	Fielding []FieldingRecord `json:"fielding"`
	Teams    []TeamRecord     `json:"teams"`
}

// Organization describes a league/organization owning a season of teams.
type Organization struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Sport      string `json:"sport"`
	SeasonName string `json:"season_name"`
	SeasonYear int    `json:"season_year"`
	City       string `json:"city"`
	State      string `json:"state"`
	Type       string `json:"type"`
	AvatarURL  string `json:"avatar_url,omitempty"`
}

// LeaderboardEntry is one ranked row. Player fields are empty on team
// boards and vice versa. Value is the numeric used for ordering; Display
// is what the presentation layer renders.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id,omitempty"`
	PlayerName string  `json:"player_name,omitempty"`
	TeamID     string  `json:"team_id,omitempty"`
	TeamName   string  `json:"team_name,omitempty"`
	TeamAvatar string  `json:"team_avatar,omitempty"`
	Display    string  `json:"display"`
	Value      float64 `json:"value"`
}

// Leaderboard is an ordered, size-limited board for one statistic.
type Leaderboard struct {
	Category string             `json:"category"`
	Stat     string             `json:"stat"`
	Entries  []LeaderboardEntry `json:"entries"`
}
