package noise_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/gavel/internal/domain/model"
	"github.com/okian/gavel/internal/domain/noise"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDuplicateWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	Convey("Given a filter with the default duplicate window", t, func() {
		f := noise.New()

		Convey("When one submitter repeats the same complaint within the window", func() {
			first := sharpBug("bug-1", "sub-1", "export button crashes the app on big reports", now.Add(-time.Hour))
			second := sharpBug("bug-2", "sub-1", "export button crashes the app on big reports", now)

			signals := f.Reduce(ctx, []model.RawInput{first, second})

			Convey("Then the repeat is merged, not double counted", func() {
				So(f.Counters().DuplicatesMerged, ShouldEqual, 1)
				So(signals, ShouldHaveLength, 1)
				So(signals[0].Frequency, ShouldEqual, 1)
			})
		})

		Convey("When the repeat is trivially reworded", func() {
			first := sharpBug("bug-1", "sub-1", "Export button crashes the app on big reports", now.Add(-time.Hour))
			second := sharpBug("bug-2", "sub-1", "export button crashes the app on big reports!!", now)

			f.Reduce(ctx, []model.RawInput{first, second})

			Convey("Then case and punctuation do not defeat the check", func() {
				So(f.Counters().DuplicatesMerged, ShouldEqual, 1)
			})
		})

		Convey("When two different submitters file the same report", func() {
			first := sharpBug("bug-1", "sub-1", "export button crashes the app on big reports", now.Add(-time.Hour))
			second := sharpBug("bug-2", "sub-2", "export button crashes the app on big reports", now)

			signals := f.Reduce(ctx, []model.RawInput{first, second})

			Convey("Then both count; corroboration is not duplication", func() {
				So(f.Counters().DuplicatesMerged, ShouldEqual, 0)
				So(signals, ShouldHaveLength, 1)
				So(signals[0].Frequency, ShouldEqual, 2)
				So(signals[0].AffectedUsers, ShouldEqual, 2)
			})
		})

		Convey("When the repeat falls outside the window", func() {
			first := sharpBug("bug-1", "sub-1", "export button crashes the app on big reports", now.Add(-25*time.Hour))
			second := sharpBug("bug-2", "sub-1", "export button crashes the app on big reports", now)

			f.Reduce(ctx, []model.RawInput{first, second})

			Convey("Then it counts as a fresh submission", func() {
				So(f.Counters().DuplicatesMerged, ShouldEqual, 0)
			})
		})

		Convey("When the same text recurs in a different category", func() {
			first := sharpBug("bug-1", "sub-1", "export button crashes the app on big reports", now.Add(-time.Hour))
			second := sharpBug("bug-2", "sub-1", "export button crashes the app on big reports", now)
			second.Category = model.CategoryComplaint

			f.Reduce(ctx, []model.RawInput{first, second})

			Convey("Then the window does not cross categories", func() {
				So(f.Counters().DuplicatesMerged, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a filter with a lowered similarity threshold", t, func() {
		f := noise.New(noise.WithDupeSimilarity(0.3))

		Convey("When a loosely related repeat arrives from the same submitter", func() {
			first := sharpBug("bug-1", "sub-1", "export button crashes the app", now.Add(-time.Hour))
			second := sharpBug("bug-2", "sub-1", "export button also hangs the app sometimes", now)

			f.Reduce(ctx, []model.RawInput{first, second})

			Convey("Then the looser threshold flags it", func() {
				So(f.Counters().DuplicatesMerged, ShouldEqual, 1)
			})
		})
	})
}
