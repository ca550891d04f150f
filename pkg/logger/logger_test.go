package logger_test

import (
	"context"
	"testing"

	"github.com/gamechanger-stats/seasonstats/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInitAndLevels(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("When fetching it", func() {
			l := logger.Get()
			So(l, ShouldNotBeNil)

			Convey("Then logging does not panic at any level", func() {
				ctx := context.Background()
				So(func() {
					l.Debug(ctx, "debug", logger.String("k", "v"))
					l.Info(ctx, "info", logger.Int("n", 1))
					l.Warn(ctx, "warn", logger.Float64("f", 1.5))
					l.Error(ctx, "error", logger.Any("v", struct{}{}))
				}, ShouldNotPanic)
			})
		})

		Convey("When deriving a named logger", func() {
			So(logger.Named("cache"), ShouldNotBeNil)
		})

		Convey("When parsing level strings", func() {
			So(logger.SetLevelString("debug"), ShouldBeNil)
			So(logger.SetLevelString("WARN"), ShouldBeNil)
			So(logger.SetLevelString(""), ShouldBeNil)
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
		})
	})
}
