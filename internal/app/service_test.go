package service_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gamechanger-stats/seasonstats/internal/adapters/cache"
	service "github.com/gamechanger-stats/seasonstats/internal/app"
	"github.com/gamechanger-stats/seasonstats/internal/domain/adjust"
	"github.com/gamechanger-stats/seasonstats/internal/domain/model"
	"github.com/gamechanger-stats/seasonstats/internal/domain/rank"
)

// fakeClient serves canned upstream data and counts calls.
type fakeClient struct {
	orgs      []model.Organization
	snapshots map[string]model.RawSnapshot

	orgCalls      int
	snapshotCalls int
	token         string
	verifyErr     error
}

func (f *fakeClient) Organizations(_ context.Context) ([]model.Organization, error) {
	f.orgCalls++
	return append([]model.Organization(nil), f.orgs...), nil
}

func (f *fakeClient) Snapshot(_ context.Context, orgID string) (model.RawSnapshot, error) {
	f.snapshotCalls++
	return f.snapshots[orgID], nil
}

func (f *fakeClient) VerifyToken(_ context.Context, _ string) error {
	return f.verifyErr
}

func (f *fakeClient) SetToken(token string) {
	f.token = token
}

func seasonFixture() model.RawSnapshot {
	return model.RawSnapshot{
		Batting: []model.BattingLine{
			{
				Player: model.Player{ID: "p-1", Name: "Jordan Lee", TeamID: "team-1", TeamName: "Hawks"},
				AtBats: 40, PlateAppearances: 45, Hits: 16, Singles: 10, Doubles: 4, Triples: 1, HomeRuns: 1,
				Walks: 4, HitByPitch: 1,
			},
			{
				Player: model.Player{ID: "p-2", Name: "Sam Ortiz", TeamID: "team-1", TeamName: "Hawks"},
				AtBats: 38, PlateAppearances: 42, Hits: 10, Singles: 8, Doubles: 2,
				Walks: 3, HitByPitch: 1,
			},
			{
				// Too small a sample to qualify for rate boards.
				Player: model.Player{ID: "p-3", Name: "Alex Kim", TeamID: "team-2", TeamName: "Owls"},
				AtBats: 3, PlateAppearances: 3, Hits: 3, Singles: 3,
			},
		},
		Pitching: []model.PitchingLine{
			{
				Player:         model.Player{ID: "p-1", Name: "Jordan Lee", TeamID: "team-1", TeamName: "Hawks"},
				InningsPitched: "12.0", EarnedRuns: 4, HitsAllowed: 10, Walks: 3, Strikeouts: 15,
			},
			{
				Player:         model.Player{ID: "p-4", Name: "Riley Chen", TeamID: "team-2", TeamName: "Owls"},
				InningsPitched: "10.1", EarnedRuns: 6, HitsAllowed: 12, Walks: 5, Strikeouts: 9,
			},
		},
		Teams: []model.TeamLine{
			{TeamID: "team-1", TeamName: "Hawks", GamesPlayed: 10, Wins: 7, Losses: 3, RunsScored: 58, RunsAllowed: 31},
			{TeamID: "team-2", TeamName: "Owls", GamesPlayed: 10, Wins: 3, Losses: 7, RunsScored: 31, RunsAllowed: 58},
		},
	}
}

func newService(client *fakeClient, opts ...service.Option) *service.Service {
	return service.New(client, cache.NewMemoryCache(), opts...)
}

func TestServiceOrganizations(t *testing.T) {
	Convey("Given a service over an upstream with unsorted organizations", t, func() {
		client := &fakeClient{orgs: []model.Organization{
			{ID: "org-b", Name: "Beta League", SeasonYear: 2023},
			{ID: "org-c", Name: "Alpha League", SeasonYear: 2024},
			{ID: "org-a", Name: "Gamma League", SeasonYear: 2024},
		}}
		svc := newService(client)
		ctx := context.Background()

		Convey("When listing organizations twice", func() {
			first, err1 := svc.Organizations(ctx)
			second, err2 := svc.Organizations(ctx)

			Convey("Then both calls should succeed", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
			})

			Convey("Then the list should sort by season year descending, then name", func() {
				So(first[0].Name, ShouldEqual, "Alpha League")
				So(first[1].Name, ShouldEqual, "Gamma League")
				So(first[2].Name, ShouldEqual, "Beta League")
			})

			Convey("Then the second call should come from cache", func() {
				So(client.orgCalls, ShouldEqual, 1)
				So(second, ShouldResemble, first)
			})
		})
	})
}

func TestServiceSnapshot(t *testing.T) {
	Convey("Given a service with a one-organization season", t, func() {
		client := &fakeClient{snapshots: map[string]model.RawSnapshot{"org-1": seasonFixture()}}
		svc := newService(client, service.WithAdjustmentFactor(0))
		ctx := context.Background()

		Convey("When fetching the snapshot twice", func() {
			first, err := svc.Snapshot(ctx, "org-1")
			_, _ = svc.Snapshot(ctx, "org-1")

			Convey("Then the raw stats should be fetched once and cached", func() {
				So(err, ShouldBeNil)
				So(client.snapshotCalls, ShouldEqual, 1)
			})

			Convey("Then batting rates should be derived", func() {
				// 16/40 = 0.400.
				So(first.Batting[0].BattingAvg, ShouldAlmostEqual, 0.400, 1e-9)
				So(first.Batting[0].BattingAvgDisplay, ShouldEqual, "0.400")
			})

			Convey("Then pitching rates should be derived from decimal innings", func() {
				// 4 ER over 12 innings: 4*9/12 = 3.00.
				So(first.Pitching[0].ERA, ShouldAlmostEqual, 3.0, 1e-9)
			})
		})

		Convey("When a strictness index and factor are applied after a cached read", func() {
			_, _ = svc.Snapshot(ctx, "org-1")
			So(svc.SetStrictnessIndex(ctx, adjust.Index{"p-1": -1}), ShouldBeNil)
			So(svc.SetAdjustmentFactor(ctx, 100), ShouldBeNil)
			snap, err := svc.Snapshot(ctx, "org-1")

			Convey("Then the strict scorer's batting average should be lifted down", func() {
				So(err, ShouldBeNil)
				// 0.400 * (1 + (-1)*1*0.1) = 0.360.
				So(snap.Batting[0].BattingAvg, ShouldAlmostEqual, 0.360, 1e-9)
			})

			Convey("Then the cached raw stats should be re-adjusted without a refetch", func() {
				So(client.snapshotCalls, ShouldEqual, 1)
			})

			Convey("Then unindexed players should be untouched", func() {
				// 10/38 = 0.263.
				So(snap.Batting[1].BattingAvgDisplay, ShouldEqual, "0.263")
			})
		})

		Convey("When the service is constructed with a configured strictness index", func() {
			configured := newService(client,
				service.WithAdjustmentFactor(100),
				service.WithStrictnessIndex(adjust.Index{"p-1": -1}),
			)
			snap, err := configured.Snapshot(ctx, "org-1")

			Convey("Then adjusted rates should flow through without any runtime call", func() {
				So(err, ShouldBeNil)
				So(snap.Batting[0].BattingAvg, ShouldAlmostEqual, 0.360, 1e-9)
				So(snap.Batting[0].BattingAvgDisplay, ShouldEqual, "0.360")
			})
		})

		Convey("When a strictness score falls outside the valid range", func() {
			err := svc.SetStrictnessIndex(ctx, adjust.Index{"p-1": 1.5})

			Convey("Then the error should be ErrStrictnessOutOfRange", func() {
				So(errors.Is(err, service.ErrStrictnessOutOfRange), ShouldBeTrue)
				So(svc.StrictnessIndex(), ShouldBeEmpty)
			})
		})
	})
}

func TestServiceLeaderboard(t *testing.T) {
	Convey("Given a service with a one-organization season", t, func() {
		client := &fakeClient{snapshots: map[string]model.RawSnapshot{"org-1": seasonFixture()}}
		svc := newService(client, service.WithAdjustmentFactor(0))
		ctx := context.Background()

		Convey("When building the batting average board", func() {
			board, err := svc.Leaderboard(ctx, "org-1", "batting", "batting_avg", 10)

			Convey("Then qualified players should rank by average descending", func() {
				So(err, ShouldBeNil)
				So(board.Category, ShouldEqual, "batting")
				So(board.Stat, ShouldEqual, "batting_avg")
				// p-3's 3 PA misses the threshold: 20% of avg(45,42,3)=30 is 6.
				So(board.Entries, ShouldHaveLength, 2)
				So(board.Entries[0].PlayerName, ShouldEqual, "Jordan Lee")
				So(board.Entries[0].Rank, ShouldEqual, 1)
			})
		})

		Convey("When building the ERA board", func() {
			board, err := svc.Leaderboard(ctx, "org-1", "pitching", "era", 10)

			Convey("Then lower ERA should rank first", func() {
				So(err, ShouldBeNil)
				So(board.Entries, ShouldHaveLength, 2)
				So(board.Entries[0].PlayerName, ShouldEqual, "Jordan Lee")
			})
		})

		Convey("When building a team board", func() {
			board, err := svc.Leaderboard(ctx, "org-1", "team", "runs_allowed_per_game", 10)

			Convey("Then the stingier defense should rank first", func() {
				So(err, ShouldBeNil)
				So(board.Entries[0].TeamName, ShouldEqual, "Hawks")
			})
		})

		Convey("When asking for more entries than the configured maximum", func() {
			svcCapped := newService(client, service.WithAdjustmentFactor(0), service.WithMaxLeaderboardLimit(1))
			board, err := svcCapped.Leaderboard(ctx, "org-1", "batting", "hits", 50)

			Convey("Then the board should be capped", func() {
				So(err, ShouldBeNil)
				So(board.Entries, ShouldHaveLength, 1)
			})
		})

		Convey("When asking for an unknown category", func() {
			_, err := svc.Leaderboard(ctx, "org-1", "bowling", "strikes", 10)

			Convey("Then the error should be ErrUnknownCategory", func() {
				So(errors.Is(err, service.ErrUnknownCategory), ShouldBeTrue)
			})
		})

		Convey("When asking for an unknown stat", func() {
			_, err := svc.Leaderboard(ctx, "org-1", "batting", "launch_angle", 10)

			Convey("Then the error should be ErrUnknownStat", func() {
				So(errors.Is(err, rank.ErrUnknownStat), ShouldBeTrue)
			})
		})
	})
}

func TestServiceTokenSwap(t *testing.T) {
	Convey("Given a service with cached data", t, func() {
		client := &fakeClient{orgs: []model.Organization{{ID: "org-1", Name: "League"}}}
		svc := newService(client)
		ctx := context.Background()

		_, err := svc.Organizations(ctx)
		So(err, ShouldBeNil)
		So(client.orgCalls, ShouldEqual, 1)

		Convey("When installing a valid token", func() {
			err := svc.SetToken(ctx, "fresh-token")

			Convey("Then the token should be installed and the cache cleared", func() {
				So(err, ShouldBeNil)
				So(client.token, ShouldEqual, "fresh-token")

				_, _ = svc.Organizations(ctx)
				So(client.orgCalls, ShouldEqual, 2)
			})
		})

		Convey("When the upstream rejects the token", func() {
			client.verifyErr = errors.New("denied")
			err := svc.SetToken(ctx, "bad-token")

			Convey("Then nothing should be installed and the cache should survive", func() {
				So(err, ShouldNotBeNil)
				So(client.token, ShouldBeEmpty)

				_, _ = svc.Organizations(ctx)
				So(client.orgCalls, ShouldEqual, 1)
			})
		})
	})
}

func TestServiceAdjustmentFactor(t *testing.T) {
	Convey("Given a service", t, func() {
		client := &fakeClient{snapshots: map[string]model.RawSnapshot{"org-1": seasonFixture()}}
		svc := newService(client)
		ctx := context.Background()

		Convey("When setting an in-range factor", func() {
			err := svc.SetAdjustmentFactor(ctx, 75)

			Convey("Then it should take effect", func() {
				So(err, ShouldBeNil)
				So(svc.AdjustmentFactor(), ShouldEqual, 75)
			})
		})

		Convey("When setting an out-of-range factor", func() {
			err := svc.SetAdjustmentFactor(ctx, 101)

			Convey("Then the error should be ErrFactorOutOfRange", func() {
				So(errors.Is(err, service.ErrFactorOutOfRange), ShouldBeTrue)
				So(svc.AdjustmentFactor(), ShouldNotEqual, 101)
			})
		})
	})
}
