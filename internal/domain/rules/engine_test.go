package rules_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/gavel/internal/domain/evidence"
	"github.com/okian/gavel/internal/domain/model"
	"github.com/okian/gavel/internal/domain/rules"
	. "github.com/smartystreets/goconvey/convey"
)

func completeDraft() model.EvidenceDraft {
	b := evidence.NewBuilder()
	So(b.RecordInput("test", "in-1", "modify", "content", "submitter-abc"), ShouldBeNil)
	So(b.AddStage("FILTER", "passed"), ShouldBeNil)
	return b.Draft()
}

func admissibleProposal(createdAt time.Time) model.Proposal {
	return model.Proposal{
		ID:             "prop-1",
		Signal:         model.PainSignal{Category: model.CategoryBug, Priority: 85},
		TargetModuleID: "core",
		Kind:           model.KindModify,
		CreatedAt:      createdAt,
	}
}

func healthyMetrics() model.ModuleMetrics {
	// 0.4*90 + 0.2*80 + 0.2*(100-10) + 0.2*70 = 84
	return model.ModuleMetrics{
		UserSatisfaction: 90,
		ReuseRate:        80,
		FailureRate:      10,
		OutcomeImpact:    70,
	}
}

func TestQualityScore(t *testing.T) {
	Convey("Given the composite module quality score", t, func() {
		base := healthyMetrics()

		Convey("When computed for a healthy module", func() {
			So(rules.QualityScore(base), ShouldAlmostEqual, 84, 0.001)
		})

		Convey("When user satisfaction rises", func() {
			better := base
			better.UserSatisfaction += 5

			Convey("Then the score rises with it", func() {
				So(rules.QualityScore(better), ShouldBeGreaterThan, rules.QualityScore(base))
			})
		})

		Convey("When the failure rate rises", func() {
			worse := base
			worse.FailureRate += 20

			Convey("Then the score drops", func() {
				So(rules.QualityScore(worse), ShouldBeLessThan, rules.QualityScore(base))
			})
		})
	})
}

func TestEvaluate(t *testing.T) {
	ctx := context.Background()

	Convey("Given an engine with the default rule parameters", t, func() {
		e := rules.New()
		pastCooling := time.Now().Add(-25 * time.Hour)

		Convey("When every rule passes", func() {
			v := e.Evaluate(ctx, rules.Evaluation{
				Proposal: admissibleProposal(pastCooling),
				Metrics:  healthyMetrics(),
				System:   model.SystemContext{TotalModules: 100, ScarceTierModules: 8},
				Evidence: completeDraft(),
			})

			Convey("Then the proposal is approved", func() {
				So(v.Status, ShouldEqual, model.StatusApproved)
				So(v.Reason, ShouldEqual, "all rules passed")
				So(v.Violations, ShouldBeEmpty)
				So(v.Rules, ShouldHaveLength, 4)
				So(v.QualityScore, ShouldAlmostEqual, 84, 0.001)
			})
		})

		Convey("When the target module quality sits below the bar", func() {
			v := e.Evaluate(ctx, rules.Evaluation{
				Proposal: admissibleProposal(pastCooling),
				Metrics:  model.ModuleMetrics{UserSatisfaction: 30, ReuseRate: 20, FailureRate: 60, OutcomeImpact: 25},
				Evidence: completeDraft(),
			})

			Convey("Then the proposal is rejected with the quality violation", func() {
				So(v.Status, ShouldEqual, model.StatusRejected)
				So(v.Violations, ShouldContain, model.RuleQualityThreshold)
				So(v.Reason, ShouldContainSubstring, model.RuleQualityThreshold)
			})
		})

		Convey("When the proposal creates a new module", func() {
			p := admissibleProposal(pastCooling)
			p.Kind = model.KindCreate

			v := e.Evaluate(ctx, rules.Evaluation{
				Proposal: p,
				Metrics:  model.ModuleMetrics{},
				Evidence: completeDraft(),
			})

			Convey("Then no quality bar applies; nothing exists to measure", func() {
				So(v.Threshold, ShouldEqual, 0)
				So(v.Violations, ShouldNotContain, model.RuleQualityThreshold)
				So(v.Status, ShouldEqual, model.StatusApproved)
			})
		})

		Convey("When the originating signal is below the admission gate", func() {
			p := admissibleProposal(pastCooling)
			p.Signal.Priority = 40

			v := e.Evaluate(ctx, rules.Evaluation{
				Proposal: p,
				Metrics:  healthyMetrics(),
				Evidence: completeDraft(),
			})

			Convey("Then the proposal is rejected for signal validity", func() {
				So(v.Status, ShouldEqual, model.StatusRejected)
				So(v.Violations, ShouldContain, model.RuleSignalValidity)
			})
		})

		Convey("When the evidence record is incomplete", func() {
			v := e.Evaluate(ctx, rules.Evaluation{
				Proposal: admissibleProposal(pastCooling),
				Metrics:  healthyMetrics(),
				Evidence: model.EvidenceDraft{},
			})

			Convey("Then the proposal is rejected for missing evidence", func() {
				So(v.Status, ShouldEqual, model.StatusRejected)
				So(v.Violations, ShouldContain, model.RuleEvidenceComplete)
			})
		})

		Convey("When only the cooling-off period is unmet", func() {
			v := e.Evaluate(ctx, rules.Evaluation{
				Proposal: admissibleProposal(time.Now().Add(-time.Hour)),
				Metrics:  healthyMetrics(),
				Evidence: completeDraft(),
			})

			Convey("Then the proposal is pending with the remaining wait", func() {
				So(v.Status, ShouldEqual, model.StatusPending)
				So(v.Violations, ShouldResemble, []string{model.RuleCoolingOff})
				So(v.WaitRemaining, ShouldBeGreaterThan, 22*time.Hour)
				So(v.WaitRemaining, ShouldBeLessThanOrEqualTo, 23*time.Hour)
			})
		})

		Convey("When a security-critical proposal is fresh", func() {
			p := admissibleProposal(time.Now())
			p.Flags = []string{model.FlagSecurityCritical}

			v := e.Evaluate(ctx, rules.Evaluation{
				Proposal: p,
				Metrics:  healthyMetrics(),
				Evidence: completeDraft(),
			})

			Convey("Then the cooling-off period is waived", func() {
				So(v.Status, ShouldEqual, model.StatusApproved)
			})
		})

		Convey("When cooling-off and quality both fail", func() {
			v := e.Evaluate(ctx, rules.Evaluation{
				Proposal: admissibleProposal(time.Now()),
				Metrics:  model.ModuleMetrics{},
				Evidence: completeDraft(),
			})

			Convey("Then rejection wins over pending", func() {
				So(v.Status, ShouldEqual, model.StatusRejected)
				So(v.Violations, ShouldContain, model.RuleQualityThreshold)
				So(v.Violations, ShouldContain, model.RuleCoolingOff)
			})
		})

		Convey("When a promotion targets the scarce tier", func() {
			p := admissibleProposal(pastCooling)
			p.Kind = model.KindPromote
			p.TargetTier = model.TierScarce

			Convey("And the tier is exactly at the cap", func() {
				v := e.Evaluate(ctx, rules.Evaluation{
					Proposal: p,
					Metrics:  healthyMetrics(),
					System:   model.SystemContext{TotalModules: 100, ScarceTierModules: 10},
					Evidence: completeDraft(),
				})

				Convey("Then the promotion is allowed", func() {
					So(v.Status, ShouldEqual, model.StatusApproved)
					So(v.Rules, ShouldHaveLength, 5)
				})
			})

			Convey("And the tier is over the cap", func() {
				v := e.Evaluate(ctx, rules.Evaluation{
					Proposal: p,
					Metrics:  healthyMetrics(),
					System:   model.SystemContext{TotalModules: 100, ScarceTierModules: 11},
					Evidence: completeDraft(),
				})

				Convey("Then the promotion is rejected for scarcity", func() {
					So(v.Status, ShouldEqual, model.StatusRejected)
					So(v.Violations, ShouldContain, model.RuleScarcityCap)
				})
			})

			Convey("And the module counts are unavailable", func() {
				v := e.Evaluate(ctx, rules.Evaluation{
					Proposal: p,
					Metrics:  healthyMetrics(),
					System:   model.SystemContext{},
					Evidence: completeDraft(),
				})

				Convey("Then the rule fails closed", func() {
					So(v.Status, ShouldEqual, model.StatusRejected)
					So(v.Violations, ShouldContain, model.RuleScarcityCap)
				})
			})
		})

		Convey("When a non-promotion runs in an over-cap system", func() {
			v := e.Evaluate(ctx, rules.Evaluation{
				Proposal: admissibleProposal(pastCooling),
				Metrics:  healthyMetrics(),
				System:   model.SystemContext{TotalModules: 100, ScarceTierModules: 50},
				Evidence: completeDraft(),
			})

			Convey("Then scarcity never applies", func() {
				So(v.Status, ShouldEqual, model.StatusApproved)
				So(v.Rules, ShouldHaveLength, 4)
			})
		})
	})

	Convey("Given an unresolvable target module", t, func() {
		e := rules.New()
		v := e.RejectUnknownModule(admissibleProposal(time.Now()))

		Convey("Then the short-circuit verdict rejects without running rules", func() {
			So(v.Status, ShouldEqual, model.StatusRejected)
			So(v.Reason, ShouldEqual, rules.ReasonModuleNotFound)
			So(v.Rules, ShouldBeEmpty)
		})
	})
}
