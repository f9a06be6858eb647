package logger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/gavel/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("When fetching the global instance", func() {
			l := logger.Get()

			Convey("Then it is usable at every level", func() {
				So(l, ShouldNotBeNil)
				ctx := context.Background()
				So(func() {
					l.Debug(ctx, "debug line", logger.String("k", "v"))
					l.Info(ctx, "info line", logger.Int("n", 1))
					l.Warn(ctx, "warn line", logger.Float64("f", 1.5))
					l.Error(ctx, "error line", logger.Error(errors.New("boom")))
				}, ShouldNotPanic)
			})
		})

		Convey("When deriving a named logger", func() {
			named := logger.Named("pipeline")

			Convey("Then the derived logger is independent and usable", func() {
				So(named, ShouldNotBeNil)
				So(func() {
					named.Info(context.Background(), "named line")
				}, ShouldNotPanic)

				nested := named.Named("stage")
				So(nested, ShouldNotBeNil)
			})
		})

		Convey("When setting the level by string", func() {
			Convey("Then known levels are accepted", func() {
				for _, level := range []string{"debug", "info", "warn", "error"} {
					So(logger.SetLevelString(level), ShouldBeNil)
				}
			})

			Convey("Then an unknown level is refused", func() {
				So(logger.SetLevelString("chatty"), ShouldNotBeNil)
			})
		})

		Convey("When constructing fields", func() {
			Convey("Then each constructor keeps its key and value", func() {
				So(logger.String("k", "v").Key, ShouldEqual, "k")
				So(logger.Int("n", 3).Value, ShouldEqual, 3)
				So(logger.Bool("b", true).Value, ShouldEqual, true)
				So(logger.Duration("d", time.Second).Value, ShouldEqual, time.Second)
				So(logger.Any("a", []int{1}).Key, ShouldEqual, "a")
				So(logger.Error(errors.New("boom")).Key, ShouldEqual, "error")
			})
		})
	})
}
