package upstream

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/gamechanger-stats/seasonstats/internal/domain/derive"
)

// Wire shapes for the team-manager API. Stat blocks arrive as flat maps
// keyed by scorer abbreviations ("AB", "1B", "GP:P", "S%"), with values
// that may be integers, floats or numeric strings; they all decode
// through the parse-or-zero rule so the domain layer only ever sees
// numbers.

type meTeam struct {
	Organizations []teamMembership `json:"organizations"`
}

type teamMembership struct {
	OrganizationID string `json:"organization_id"`
	Status         string `json:"status"`
}

type organizationData struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Sport      string `json:"sport"`
	SeasonName string `json:"season_name"`
	SeasonYear int    `json:"season_year"`
	City       string `json:"city"`
	State      string `json:"state"`
	Type       string `json:"type"`
}

type avatarData struct {
	FullMediaURL string `json:"full_media_url"`
}

type orgTeam struct {
	RootTeamID   string `json:"root_team_id"`
	Name         string `json:"name"`
	TeamPublicID string `json:"team_public_id"`
}

type seasonStats struct {
	StatsData struct {
		Players map[string]playerStats `json:"players"`
	} `json:"stats_data"`
}

type playerStats struct {
	Stats struct {
		Offense statBlock `json:"offense"`
		Defense statBlock `json:"defense"`
	} `json:"stats"`
}

// statBlock is one flat scorer-abbreviation stat map.
type statBlock map[string]looseNumber

// looseNumber decodes a numeric stat that may arrive as a JSON number
// or as a numeric string. Anything unparseable counts as zero.
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = looseNumber(derive.ParseDecimal(s))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*n = 0
		return nil
	}
	*n = looseNumber(f)
	return nil
}

type publicPlayer struct {
	ID        string     `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Number    looseValue `json:"number"`
}

type teamRecord struct {
	TeamID  string `json:"team_id"`
	Overall struct {
		Wins   int `json:"wins"`
		Losses int `json:"losses"`
		Ties   int `json:"ties"`
	} `json:"overall"`
	Runs struct {
		Scored  int `json:"scored"`
		Allowed int `json:"allowed"`
	} `json:"runs"`
}

// looseValue decodes a field the upstream serves sometimes as a string
// and sometimes as a number (jersey numbers, mostly).
type looseValue string

func (v *looseValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*v = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = looseValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = looseValue(n.String())
	return nil
}

func (v looseValue) String() string { return string(v) }

// statInt reads an integer stat from a block, zero when missing.
func statInt(block statBlock, key string) int {
	return int(block[key])
}

// statFloat reads a float stat from a block, zero when missing.
func statFloat(block statBlock, key string) float64 {
	return float64(block[key])
}

// authMarker is the shape of the upstream's soft auth failure: a 200
// response whose body flags missing authentication.
type authMarker struct {
	MissingAuthentication bool   `json:"missing_authentication"`
	Message               string `json:"message"`
}

func (m authMarker) denied() bool {
	if m.MissingAuthentication {
		return true
	}
	return strings.Contains(strings.ToLower(m.Message), "missing user authentication")
}
