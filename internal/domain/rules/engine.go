// Package rules evaluates proposals against the five fixed admission
// rules and assembles verdicts.
package rules

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okian/gavel/internal/domain/model"
)

// Version identifies the ruleset reported in batch summaries.
const Version = "ruleset/v1"

// Default rule parameters.
const (
	// defaultQualityBar is the "promote to at least Stable" bar applied
	// to every change kind except "create".
	defaultQualityBar  = 60.0
	defaultCoolingOff  = 24 * time.Hour
	defaultScarcityCap = 0.10
	defaultSignalFloor = 50.0
)

// Quality score weights over module metrics.
const (
	qualitySatisfactionWeight = 0.4
	qualityReuseWeight        = 0.2
	qualityFailureWeight      = 0.2
	qualityOutcomeWeight      = 0.2
	failureScale              = 100.0
)

// ReasonModuleNotFound is the short-circuit reason for an unresolvable
// target module.
const ReasonModuleNotFound = "module not found"

// Evaluation is the input shape for one proposal evaluation.
type Evaluation struct {
	Proposal model.Proposal
	Metrics  model.ModuleMetrics
	System   model.SystemContext
	Evidence model.EvidenceDraft
}

// Engine checks proposals against the five admission rules. Stateless
// between calls; safe to share across batches.
type Engine struct {
	qualityBar  float64
	coolingOff  time.Duration
	scarcityCap float64
	signalFloor float64
	clock       func() time.Time
}

// New creates an Engine with the default rule parameters.
func New(opts ...Option) *Engine {
	e := &Engine{
		qualityBar:  defaultQualityBar,
		coolingOff:  defaultCoolingOff,
		scarcityCap: defaultScarcityCap,
		signalFloor: defaultSignalFloor,
		clock:       time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// CoolingOff returns the configured cooling-off period.
func (e *Engine) CoolingOff() time.Duration {
	return e.coolingOff
}

// QualityScore computes the composite module quality score.
func QualityScore(m model.ModuleMetrics) float64 {
	return qualitySatisfactionWeight*m.UserSatisfaction +
		qualityReuseWeight*m.ReuseRate +
		qualityFailureWeight*(failureScale-m.FailureRate) +
		qualityOutcomeWeight*m.OutcomeImpact
}

// RejectUnknownModule returns the short-circuit verdict for a proposal
// whose target module cannot be resolved. No rules run.
func (e *Engine) RejectUnknownModule(p model.Proposal) model.Verdict {
	return model.Verdict{
		ProposalID:  p.ID,
		Status:      model.StatusRejected,
		Reason:      ReasonModuleNotFound,
		EvaluatedAt: e.clock(),
	}
}

// Evaluate runs every applicable rule independently and assembles the
// verdict: no failures is Approved, a lone cooling-off failure is
// Pending with the remaining wait, anything else is Rejected with every
// failing rule's reason joined.
func (e *Engine) Evaluate(_ context.Context, in Evaluation) model.Verdict {
	now := e.clock()

	threshold := e.qualityBar
	if in.Proposal.Kind == model.KindCreate {
		// Nothing exists yet to hold to a quality bar.
		threshold = 0
	}
	score := QualityScore(in.Metrics)

	results := make([]model.RuleResult, 0, 5)
	results = append(results, check(model.RuleQualityThreshold, score >= threshold,
		fmt.Sprintf("quality score %.1f below threshold %.1f", score, threshold)))

	// Pipeline-created proposals always carry a vetted signal; this rule
	// exists so a direct caller bypassing the filter is still checked.
	results = append(results, check(model.RuleSignalValidity,
		in.Proposal.Signal.Priority >= e.signalFloor,
		fmt.Sprintf("originating signal priority %.1f below admission gate %.1f",
			in.Proposal.Signal.Priority, e.signalFloor)))

	results = append(results, check(model.RuleEvidenceComplete, in.Evidence.Complete(),
		"evidence record incomplete"))

	elapsed := now.Sub(in.Proposal.CreatedAt)
	exempt := in.Proposal.HasFlag(model.FlagSecurityCritical) ||
		in.Proposal.HasFlag(model.FlagLegalCompliance)
	results = append(results, check(model.RuleCoolingOff, exempt || elapsed >= e.coolingOff,
		fmt.Sprintf("cooling-off period not elapsed (%.1fh of %.1fh)",
			elapsed.Hours(), e.coolingOff.Hours())))

	// Scarcity only constrains promotions into the scarce tier.
	if in.Proposal.Kind == model.KindPromote && in.Proposal.TargetTier == model.TierScarce {
		results = append(results, e.checkScarcity(in.System))
	}

	verdict := model.Verdict{
		ProposalID:   in.Proposal.ID,
		QualityScore: score,
		Threshold:    threshold,
		Rules:        results,
		EvaluatedAt:  now,
	}

	var reasons []string
	coolingOnly := true
	for _, r := range results {
		if r.Passed {
			continue
		}
		verdict.Violations = append(verdict.Violations, r.Code)
		reasons = append(reasons, r.Code+": "+r.Reason)
		if r.Code != model.RuleCoolingOff {
			coolingOnly = false
		}
	}

	switch {
	case len(verdict.Violations) == 0:
		verdict.Status = model.StatusApproved
		verdict.Reason = "all rules passed"
	case coolingOnly:
		verdict.Status = model.StatusPending
		wait := e.coolingOff - elapsed
		if wait < 0 {
			wait = 0
		}
		verdict.WaitRemaining = wait
		verdict.Reason = strings.Join(reasons, "; ")
	default:
		verdict.Status = model.StatusRejected
		verdict.Reason = strings.Join(reasons, "; ")
	}
	return verdict
}

func (e *Engine) checkScarcity(sys model.SystemContext) model.RuleResult {
	if sys.TotalModules <= 0 {
		return check(model.RuleScarcityCap, false, "module counts unavailable")
	}
	ratio := float64(sys.ScarceTierModules) / float64(sys.TotalModules)
	return check(model.RuleScarcityCap, ratio <= e.scarcityCap,
		fmt.Sprintf("scarce tier at %.1f%% exceeds %.1f%% cap", ratio*failureScale, e.scarcityCap*failureScale))
}

// check builds a rule result; the reason is kept only on failure.
func check(code string, passed bool, failReason string) model.RuleResult {
	r := model.RuleResult{Code: code, Passed: passed}
	if !passed {
		r.Reason = failReason
	}
	return r
}
