package evidence_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/gavel/internal/domain/evidence"
	"github.com/okian/gavel/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func buildSealed() model.EvidenceBundle {
	b := evidence.NewBuilder()
	So(b.RecordInput("pipeline", "in-1", "modify", "content", "submitter-long-id"), ShouldBeNil)
	So(b.AddStage("FILTER", "passed"), ShouldBeNil)
	So(b.Complete("approved", []string{"QUALITY_THRESHOLD"}), ShouldBeNil)
	bundle, err := b.Build()
	So(err, ShouldBeNil)
	return bundle
}

func TestValidate(t *testing.T) {
	Convey("Given a freshly sealed bundle", t, func() {
		bundle := buildSealed()

		Convey("When validated", func() {
			Convey("Then it passes", func() {
				So(evidence.Validate(bundle), ShouldBeNil)
			})
		})

		Convey("When a required field is blanked", func() {
			Convey("Then a missing output hash fails", func() {
				mutated := bundle
				mutated.OutputHash = ""
				So(errors.Is(evidence.Validate(mutated), evidence.ErrIncompleteBundle), ShouldBeTrue)
			})

			Convey("Then a missing validator signature fails", func() {
				mutated := bundle
				mutated.ValidatorSig = ""
				So(errors.Is(evidence.Validate(mutated), evidence.ErrIncompleteBundle), ShouldBeTrue)
			})

			Convey("Then an empty trace fails", func() {
				mutated := bundle
				mutated.ProcessTrace.Stages = nil
				So(errors.Is(evidence.Validate(mutated), evidence.ErrIncompleteBundle), ShouldBeTrue)
			})

			Convey("Then a zero timestamp fails", func() {
				mutated := bundle
				mutated.Timestamp = time.Time{}
				So(errors.Is(evidence.Validate(mutated), evidence.ErrIncompleteBundle), ShouldBeTrue)
			})
		})
	})

	Convey("Given a builder whose clock runs ahead", t, func() {
		b := evidence.NewBuilder(evidence.WithClock(func() time.Time {
			return time.Now().Add(2 * time.Hour)
		}))
		So(b.RecordInput("pipeline", "in-1", "modify", "content", "s"), ShouldBeNil)
		So(b.AddStage("FILTER", "passed"), ShouldBeNil)
		So(b.Complete("approved", nil), ShouldBeNil)
		bundle, err := b.Build()
		So(err, ShouldBeNil)

		Convey("When the sealed bundle is validated against wall time", func() {
			Convey("Then the future timestamp is rejected", func() {
				So(evidence.Validate(bundle), ShouldEqual, evidence.ErrFutureTimestamp)
			})
		})
	})
}

func TestVerifyIntegrity(t *testing.T) {
	Convey("Given a freshly sealed bundle", t, func() {
		bundle := buildSealed()

		Convey("When the integrity hash is recomputed without changes", func() {
			Convey("Then recomputation is idempotent", func() {
				So(evidence.IntegrityHash(bundle), ShouldEqual, bundle.IntegrityHash)
				So(evidence.VerifyIntegrity(bundle), ShouldBeTrue)
				So(evidence.VerifyIntegrity(bundle), ShouldBeTrue)
			})
		})

		Convey("When any sealed field changes", func() {
			Convey("Then a changed decision breaks integrity", func() {
				mutated := bundle
				mutated.ProcessTrace.Decision = "rejected"
				So(evidence.VerifyIntegrity(mutated), ShouldBeFalse)
			})

			Convey("Then a changed content hash breaks integrity", func() {
				mutated := bundle
				mutated.InputLog.ContentHash = evidence.PositionalHash("other content")
				So(evidence.VerifyIntegrity(mutated), ShouldBeFalse)
			})

			Convey("Then a shifted timestamp breaks integrity", func() {
				mutated := bundle
				mutated.Timestamp = mutated.Timestamp.Add(time.Second)
				So(evidence.VerifyIntegrity(mutated), ShouldBeFalse)
			})

			Convey("Then a changed stage result breaks integrity", func() {
				mutated := bundle
				mutated.ProcessTrace.Stages = append([]model.StageTrace(nil), bundle.ProcessTrace.Stages...)
				mutated.ProcessTrace.Stages[0].Result = "tampered"
				So(evidence.VerifyIntegrity(mutated), ShouldBeFalse)
			})
		})
	})
}
