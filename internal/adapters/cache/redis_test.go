package cache_test

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gamechanger-stats/seasonstats/internal/domain/derive"
	"github.com/gamechanger-stats/seasonstats/internal/domain/model"
	"github.com/gamechanger-stats/seasonstats/internal/domain/rank"
)

// The redis backend persists snapshots as JSON, so everything the
// derivation step needs must survive a marshal round trip.
func TestSnapshotSerialization(t *testing.T) {
	Convey("Given a raw snapshot with stat lines in every category", t, func() {
		raw := model.RawSnapshot{
			Batting: []model.BattingLine{
				{
					Player: model.Player{ID: "p-1", Name: "Jordan Lee", TeamID: "team-1", TeamName: "Hawks"},
					AtBats: 40, PlateAppearances: 45, Hits: 16, Singles: 10, Doubles: 4, Triples: 1, HomeRuns: 1,
					Walks: 4, HitByPitch: 1,
				},
			},
			Pitching: []model.PitchingLine{
				{
					Player:         model.Player{ID: "p-1", Name: "Jordan Lee", TeamID: "team-1", TeamName: "Hawks"},
					InningsPitched: "5.2", EarnedRuns: 4, HitsAllowed: 10, Walks: 3, Strikeouts: 8,
					StrikeRatio: 0.645,
				},
			},
			Fielding: []model.FieldingLine{
				{
					Player:        model.Player{ID: "p-1", Name: "Jordan Lee", TeamID: "team-1", TeamName: "Hawks"},
					Opportunities: 16, Putouts: 12, Assists: 4, Errors: 1,
				},
			},
			Teams: []model.TeamLine{
				{TeamID: "team-1", TeamName: "Hawks", GamesPlayed: 10, Wins: 7, Losses: 3, RunsScored: 58, RunsAllowed: 31},
			},
		}

		Convey("When round-tripping it through JSON the way the redis backend does", func() {
			data, err := json.Marshal(raw)
			So(err, ShouldBeNil)

			var back model.RawSnapshot
			So(json.Unmarshal(data, &back), ShouldBeNil)

			Convey("Then every raw field should survive", func() {
				So(back, ShouldResemble, raw)
				So(back.Pitching[0].StrikeRatio, ShouldAlmostEqual, 0.645, 1e-9)
			})

			Convey("Then derivation from the round-tripped lines should produce real rates", func() {
				snap := derive.Snapshot(back)

				// 16/40 = 0.400; 4 ER over 5.2 innings (5.667): 4*9/5.667 = 6.35.
				So(snap.Batting[0].BattingAvg, ShouldAlmostEqual, 0.400, 1e-9)
				So(snap.Pitching[0].ERA, ShouldAlmostEqual, 6.35, 0.01)
				So(snap.Pitching[0].StrikePct, ShouldAlmostEqual, 64.5, 1e-9)

				board, berr := rank.BattingBoard(snap.Batting, "batting_avg", 0)
				So(berr, ShouldBeNil)
				So(board.Size(), ShouldEqual, 1)
			})
		})
	})
}
