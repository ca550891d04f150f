package upstream_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gamechanger-stats/seasonstats/internal/adapters/upstream"
	"github.com/gamechanger-stats/seasonstats/internal/domain/model"
)

// fakeUpstream serves a one-organization, one-team season fixture.
func fakeUpstream(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/me/teams", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`[
			{"organizations": [
				{"organization_id": "org-1", "status": "active"},
				{"organization_id": "org-2", "status": "inactive"}
			]},
			{"organizations": [
				{"organization_id": "org-1", "status": "active"}
			]}
		]`))
	})
	mux.HandleFunc("/organizations/org-1", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"id": "org-1", "name": "Riverside Little League", "sport": "baseball",
			"season_name": "Spring", "season_year": 2024,
			"city": "Riverside", "state": "CA", "type": "league"
		}`))
	})
	mux.HandleFunc("/organizations/org-1/avatar_image", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"full_media_url": "https://cdn.example.com/org-1.png"}`))
	})
	mux.HandleFunc("/organizations/org-1/teams", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[
			{"root_team_id": "team-1", "name": "Hawks", "team_public_id": "pub-1"},
			{"name": "No Root Team"}
		]`))
	})
	mux.HandleFunc("/teams/team-1/avatar_image", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"full_media_url": "https://cdn.example.com/team-1.png"}`))
	})
	mux.HandleFunc("/teams/team-1/season_stats", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"stats_data": {"players": {
			"p-1": {"stats": {
				"offense": {"GP": 10, "AB": 30, "H": 12, "1B": 8, "2B": 2, "3B": 1, "HR": 1,
					"RBI": 9, "BB": 4, "HBP": 1, "SF": 1, "SO": 5},
				"defense": {"GP:P": 3, "IP": 5.667, "H": 4, "R": 3, "ER": 3, "BB": 2, "SO": 7,
					"S%": "0.645", "PO": 6, "A": 10, "E": 2, "DP": 1, "GP:F": 10}
			}},
			"p-2": {"stats": {
				"offense": {"AB": 5, "H": 1}
			}},
			"p-ghost": {"stats": {
				"offense": {"AB": 8, "H": 3}
			}}
		}}}`))
	})
	mux.HandleFunc("/teams/pub-1/public-players", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[
			{"id": "p-1", "first_name": "Jordan", "last_name": "Lee", "number": 12},
			{"id": "p-2", "first_name": "Unknown", "last_name": "Player", "number": "7"}
		]`))
	})
	mux.HandleFunc("/organizations/org-1/team_records", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[
			{"team_id": "team-1",
				"overall": {"wins": 7, "losses": 2, "ties": 1},
				"runs": {"scored": 58, "allowed": 31}},
			{"team_id": "team-elsewhere",
				"overall": {"wins": 1, "losses": 0, "ties": 0},
				"runs": {"scored": 4, "allowed": 2}}
		]`))
	})

	return httptest.NewServer(mux)
}

func TestClientOrganizations(t *testing.T) {
	Convey("Given an upstream with one active organization", t, func() {
		srv := fakeUpstream(t)
		defer srv.Close()

		client := upstream.New("good-token", upstream.WithBaseURL(srv.URL))

		Convey("When listing organizations", func() {
			orgs, err := client.Organizations(context.Background())

			Convey("Then only the active organization should be returned, once", func() {
				So(err, ShouldBeNil)
				So(orgs, ShouldHaveLength, 1)
				So(orgs[0], ShouldResemble, model.Organization{
					ID:         "org-1",
					Name:       "Riverside Little League",
					Sport:      "baseball",
					SeasonName: "Spring",
					SeasonYear: 2024,
					City:       "Riverside",
					State:      "CA",
					Type:       "league",
					AvatarURL:  "https://cdn.example.com/org-1.png",
				})
			})
		})

		Convey("When the token is wrong", func() {
			client.SetToken("bad-token")
			_, err := client.Organizations(context.Background())

			Convey("Then the error should be ErrUnauthorized", func() {
				So(errors.Is(err, upstream.ErrUnauthorized), ShouldBeTrue)
			})
		})
	})
}

func TestClientAuthSniffing(t *testing.T) {
	Convey("Given an upstream that answers 200 with an auth-failure body", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"missing_authentication": true, "message": "missing user authentication"}`))
		}))
		defer srv.Close()

		client := upstream.New("stale-token", upstream.WithBaseURL(srv.URL))

		Convey("When verifying a token", func() {
			err := client.VerifyToken(context.Background(), "stale-token")

			Convey("Then the soft failure should surface as ErrUnauthorized", func() {
				So(errors.Is(err, upstream.ErrUnauthorized), ShouldBeTrue)
			})
		})
	})
}

func TestClientSnapshot(t *testing.T) {
	Convey("Given an upstream with one team of season stats", t, func() {
		srv := fakeUpstream(t)
		defer srv.Close()

		client := upstream.New("good-token",
			upstream.WithBaseURL(srv.URL),
			upstream.WithConcurrency(2),
		)

		Convey("When assembling the organization snapshot", func() {
			snap, err := client.Snapshot(context.Background(), "org-1")

			Convey("Then fetching should succeed", func() {
				So(err, ShouldBeNil)
			})

			Convey("Then unrostered and unknown players should be dropped", func() {
				// p-2 resolves to "Unknown Player", p-ghost has no roster entry.
				So(snap.Batting, ShouldHaveLength, 1)
				So(snap.Batting[0].Name, ShouldEqual, "Jordan Lee")
				So(snap.Batting[0].Number, ShouldEqual, "12")
			})

			Convey("Then the batting line should carry reconstructed plate appearances", func() {
				line := snap.Batting[0]
				So(line.AtBats, ShouldEqual, 30)
				// 30 AB + 4 BB + 1 HBP + 1 SF = 36.
				So(line.PlateAppearances, ShouldEqual, 36)
				So(line.Hits, ShouldEqual, 12)
				So(line.HomeRuns, ShouldEqual, 1)
			})

			Convey("Then the pitching line should carry scorer-notation innings", func() {
				So(snap.Pitching, ShouldHaveLength, 1)
				line := snap.Pitching[0]
				// 5.667 decimal innings is five and two-thirds.
				So(line.InningsPitched, ShouldEqual, "5.2")
				// The strike ratio is served as a string and parses loosely.
				So(line.StrikeRatio, ShouldAlmostEqual, 0.645, 1e-9)
				So(line.Wins, ShouldEqual, 0)
				So(line.Losses, ShouldEqual, 0)
			})

			Convey("Then the fielding line should count successful chances", func() {
				So(snap.Fielding, ShouldHaveLength, 1)
				line := snap.Fielding[0]
				// 6 PO + 10 A = 16 opportunities; errors tracked separately.
				So(line.Opportunities, ShouldEqual, 16)
				So(line.Errors, ShouldEqual, 2)
			})

			Convey("Then team records outside the organization fetch should be dropped", func() {
				So(snap.Teams, ShouldHaveLength, 1)
				team := snap.Teams[0]
				So(team.TeamID, ShouldEqual, "team-1")
				So(team.GamesPlayed, ShouldEqual, 10)
				So(team.Wins, ShouldEqual, 7)
				So(team.RunsScored, ShouldEqual, 58)
			})
		})
	})
}
