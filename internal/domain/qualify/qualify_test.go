package qualify_test

import (
	"errors"
	"testing"

	"github.com/gamechanger-stats/seasonstats/internal/domain/model"
	"github.com/gamechanger-stats/seasonstats/internal/domain/qualify"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLeagueAverage(t *testing.T) {
	Convey("Given denominator values", t, func() {
		Convey("When some records have a zero denominator", func() {
			Convey("Then zeros are excluded from the population, not averaged in", func() {
				// Only 110 and 55 count: (110 + 55) / 2 = 82.5
				So(qualify.LeagueAverage([]float64{110, 0, 55, 0}), ShouldEqual, 82.5)
			})
		})

		Convey("When the qualifying subset is empty", func() {
			So(qualify.LeagueAverage(nil), ShouldEqual, 0)
			So(qualify.LeagueAverage([]float64{0, 0}), ShouldEqual, 0)
		})
	})
}

func TestCompute(t *testing.T) {
	Convey("Given a record set with PA values 110 and 55", t, func() {
		values := []float64{110, 55}

		Convey("When the percentage is 20", func() {
			th, err := qualify.Compute("batting", qualify.PlateAppearances, values, 20)

			Convey("Then the minimum is 20% of the 82.5 average", func() {
				So(err, ShouldBeNil)
				So(th.Average, ShouldEqual, 82.5)
				So(th.Minimum, ShouldEqual, 16.5)
			})

			Convey("And both records qualify against it", func() {
				So(110.0, ShouldBeGreaterThanOrEqualTo, th.Minimum)
				So(55.0, ShouldBeGreaterThanOrEqualTo, th.Minimum)
			})
		})

		Convey("When the percentage is 0", func() {
			th, err := qualify.Compute("batting", qualify.PlateAppearances, values, 0)
			So(err, ShouldBeNil)
			So(th.Minimum, ShouldEqual, 0)
		})

		Convey("When the percentage increases", func() {
			Convey("Then the minimum never decreases", func() {
				prev := -1.0
				for pct := 0.0; pct <= 100; pct += 5 {
					th, err := qualify.Compute("batting", qualify.PlateAppearances, values, pct)
					So(err, ShouldBeNil)
					So(th.Minimum, ShouldBeGreaterThanOrEqualTo, prev)
					prev = th.Minimum
				}
			})
		})

		Convey("When the percentage is out of range", func() {
			Convey("Then it is an explicit error, never a silent clamp", func() {
				_, err := qualify.Compute("batting", qualify.PlateAppearances, values, -1)
				So(errors.Is(err, qualify.ErrPercentOutOfRange), ShouldBeTrue)

				_, err = qualify.Compute("batting", qualify.PlateAppearances, values, 100.5)
				So(errors.Is(err, qualify.ErrPercentOutOfRange), ShouldBeTrue)
			})
		})
	})
}

func TestCategoryThresholds(t *testing.T) {
	Convey("Given derived records per category", t, func() {
		Convey("When computing the batting threshold", func() {
			records := []model.BattingRecord{
				{BattingLine: model.BattingLine{PlateAppearances: 110}},
				{BattingLine: model.BattingLine{PlateAppearances: 55}},
				{BattingLine: model.BattingLine{PlateAppearances: 0}},
			}
			th, err := qualify.Batting(records, 20)
			So(err, ShouldBeNil)
			So(th.Denominator, ShouldEqual, qualify.PlateAppearances)
			So(th.Minimum, ShouldEqual, 16.5)
		})

		Convey("When computing the pitching threshold", func() {
			Convey("Then partial innings count as thirds", func() {
				records := []model.PitchingRecord{
					{Innings: 6},
					{Innings: 3},
				}
				th, err := qualify.Pitching(records, 50)
				So(err, ShouldBeNil)
				So(th.Average, ShouldEqual, 4.5)
				So(th.Minimum, ShouldEqual, 2.25)
			})
		})

		Convey("When computing the fielding threshold", func() {
			records := []model.FieldingRecord{
				{FieldingLine: model.FieldingLine{Opportunities: 40}},
				{FieldingLine: model.FieldingLine{Opportunities: 20}},
			}
			th, err := qualify.Fielding(records, 20)
			So(err, ShouldBeNil)
			So(th.Average, ShouldEqual, 30)
			So(th.Minimum, ShouldEqual, 6)
		})

		Convey("When every record has a zero denominator", func() {
			th, err := qualify.Batting([]model.BattingRecord{{}}, 20)
			So(err, ShouldBeNil)
			So(th.Average, ShouldEqual, 0)
			So(th.Minimum, ShouldEqual, 0)
		})
	})
}
