package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/gamechanger-stats/seasonstats/internal/domain/derive"
	"github.com/gamechanger-stats/seasonstats/internal/domain/model"
	"github.com/gamechanger-stats/seasonstats/pkg/logger"
)

// teamLines is the raw stat output of one team fetch.
type teamLines struct {
	batting  []model.BattingLine
	pitching []model.PitchingLine
	fielding []model.FieldingLine
}

// teamInfo is what the team-records pass needs about a fetched team.
type teamInfo struct {
	name   string
	avatar string
}

// Snapshot fetches and assembles the raw season stat lines for every
// team in an organization. Teams are fetched concurrently up to the
// configured bound; a team that fails to fetch is skipped, but an
// authentication failure aborts the whole assembly.
func (c *Client) Snapshot(ctx context.Context, orgID string) (model.RawSnapshot, error) {
	token := c.Token()

	var teams []orgTeam
	if err := c.get(ctx, "/organizations/"+url.PathEscape(orgID)+"/teams", token, &teams); err != nil {
		return model.RawSnapshot{}, fmt.Errorf("listing organization teams: %w", err)
	}

	var (
		mu      sync.Mutex
		snap    model.RawSnapshot
		infos   = make(map[string]teamInfo)
		authErr error
	)

	sem := make(chan struct{}, c.concurrency)
	var wg sync.WaitGroup

	for _, team := range teams {
		if team.RootTeamID == "" {
			continue
		}

		wg.Add(1)
		go func(team orgTeam) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			lines, info, err := c.fetchTeam(ctx, token, team)
			if err != nil {
				if isAuthErr(err) {
					mu.Lock()
					authErr = err
					mu.Unlock()
					return
				}
				c.log.Warn(ctx, "skipping team",
					logger.String("team_id", team.RootTeamID),
					logger.String("team_name", team.Name),
					logger.Error(err))
				return
			}

			mu.Lock()
			snap.Batting = append(snap.Batting, lines.batting...)
			snap.Pitching = append(snap.Pitching, lines.pitching...)
			snap.Fielding = append(snap.Fielding, lines.fielding...)
			infos[team.RootTeamID] = info
			mu.Unlock()
		}(team)
	}
	wg.Wait()

	if authErr != nil {
		return model.RawSnapshot{}, authErr
	}

	if err := c.appendTeamLines(ctx, token, orgID, infos, &snap); err != nil {
		if isAuthErr(err) {
			return model.RawSnapshot{}, err
		}
		// Team records are additive; player stats stand on their own.
		c.log.Warn(ctx, "skipping team records", logger.String("organization_id", orgID), logger.Error(err))
	}

	return snap, nil
}

// fetchTeam pulls one team's season stats and roster and converts them
// into raw stat lines.
func (c *Client) fetchTeam(ctx context.Context, token string, team orgTeam) (teamLines, teamInfo, error) {
	info := teamInfo{name: team.Name}
	if info.name == "" {
		info.name = "Unknown Team"
	}

	var avatar avatarData
	if err := c.get(ctx, "/teams/"+url.PathEscape(team.RootTeamID)+"/avatar_image", token, &avatar); err == nil {
		info.avatar = avatar.FullMediaURL
	}

	var stats seasonStats
	if err := c.get(ctx, "/teams/"+url.PathEscape(team.RootTeamID)+"/season_stats", token, &stats); err != nil {
		return teamLines{}, info, fmt.Errorf("season stats: %w", err)
	}

	roster := make(map[string]publicPlayer)
	if team.TeamPublicID != "" {
		var players []publicPlayer
		if err := c.get(ctx, "/teams/"+url.PathEscape(team.TeamPublicID)+"/public-players", token, &players); err != nil {
			if isAuthErr(err) {
				return teamLines{}, info, err
			}
			c.log.Warn(ctx, "roster unavailable",
				logger.String("team_id", team.RootTeamID), logger.Error(err))
		}
		for _, p := range players {
			roster[p.ID] = p
		}
	}

	var lines teamLines
	for playerID, pstats := range stats.StatsData.Players {
		rostered := roster[playerID]
		name := strings.TrimSpace(rostered.FirstName + " " + rostered.LastName)
		if name == "" || strings.Contains(strings.ToLower(name), "unknown") {
			continue
		}

		player := model.Player{
			Name:       name,
			Number:     rostered.Number.String(),
			ID:         playerID,
			TeamName:   info.name,
			TeamID:     team.RootTeamID,
			TeamAvatar: info.avatar,
		}

		if offense := pstats.Stats.Offense; len(offense) > 0 {
			lines.batting = append(lines.batting, battingLine(player, offense))
		}
		if defense := pstats.Stats.Defense; len(defense) > 0 {
			lines.pitching = append(lines.pitching, pitchingLine(player, defense))
			lines.fielding = append(lines.fielding, fieldingLine(player, defense))
		}
	}

	return lines, info, nil
}

// appendTeamLines fetches the organization's team records and adds one
// team line per team that was part of the snapshot fetch.
func (c *Client) appendTeamLines(ctx context.Context, token, orgID string, infos map[string]teamInfo, snap *model.RawSnapshot) error {
	var records []teamRecord
	if err := c.get(ctx, "/organizations/"+url.PathEscape(orgID)+"/team_records", token, &records); err != nil {
		return err
	}

	for _, rec := range records {
		info, ok := infos[rec.TeamID]
		if !ok {
			continue
		}

		snap.Teams = append(snap.Teams, model.TeamLine{
			TeamName:    info.name,
			TeamID:      rec.TeamID,
			TeamAvatar:  info.avatar,
			GamesPlayed: rec.Overall.Wins + rec.Overall.Losses + rec.Overall.Ties,
			Wins:        rec.Overall.Wins,
			Losses:      rec.Overall.Losses,
			Ties:        rec.Overall.Ties,
			RunsScored:  rec.Runs.Scored,
			RunsAllowed: rec.Runs.Allowed,
		})
	}

	return nil
}

// battingLine maps a wire offense block to a raw batting line. Plate
// appearances are reconstructed from components since the upstream does
// not serve them directly.
func battingLine(player model.Player, offense statBlock) model.BattingLine {
	ab := statInt(offense, "AB")
	bb := statInt(offense, "BB")
	hbp := statInt(offense, "HBP")
	sf := statInt(offense, "SF")

	return model.BattingLine{
		Player:           player,
		Games:            statInt(offense, "GP"),
		AtBats:           ab,
		PlateAppearances: ab + bb + hbp + sf,
		Hits:             statInt(offense, "H"),
		Singles:          statInt(offense, "1B"),
		Doubles:          statInt(offense, "2B"),
		Triples:          statInt(offense, "3B"),
		HomeRuns:         statInt(offense, "HR"),
		RBI:              statInt(offense, "RBI"),
		Walks:            bb,
		HitByPitch:       hbp,
		SacFlies:         sf,
		Strikeouts:       statInt(offense, "SO"),
	}
}

// pitchingLine maps a wire defense block to a raw pitching line. The
// upstream serves innings as a decimal (5.667 for five and two-thirds);
// the line carries the scorer notation. Win/loss attribution is not
// served per pitcher.
func pitchingLine(player model.Player, defense statBlock) model.PitchingLine {
	return model.PitchingLine{
		Player:         player,
		Games:          statInt(defense, "GP:P"),
		InningsPitched: derive.FormatInningsPitched(statFloat(defense, "IP")),
		HitsAllowed:    statInt(defense, "H"),
		RunsAllowed:    statInt(defense, "R"),
		EarnedRuns:     statInt(defense, "ER"),
		Walks:          statInt(defense, "BB"),
		Strikeouts:     statInt(defense, "SO"),
		StrikeRatio:    statFloat(defense, "S%"),
	}
}

// fieldingLine maps a wire defense block to a raw fielding line.
// Opportunities count successful chances only.
func fieldingLine(player model.Player, defense statBlock) model.FieldingLine {
	po := statInt(defense, "PO")
	assists := statInt(defense, "A")

	return model.FieldingLine{
		Player:        player,
		Games:         statInt(defense, "GP:F"),
		Opportunities: po + assists,
		Putouts:       po,
		Assists:       assists,
		Errors:        statInt(defense, "E"),
		DoublePlays:   statInt(defense, "DP"),
	}
}
