package model

import "time"

// Status is the terminal admissibility decision of one evaluation.
// Pending is terminal for the current batch only; a re-submission after
// the wait period is a new evaluation, not a transition.
type Status string

// Verdict statuses.
const (
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusPending  Status = "pending"
)

// Rule codes reported in verdicts.
const (
	RuleQualityThreshold = "QUALITY_THRESHOLD"
	RuleSignalValidity   = "SIGNAL_VALIDITY"
	RuleEvidenceComplete = "EVIDENCE_COMPLETE"
	RuleCoolingOff       = "COOLING_OFF"
	RuleScarcityCap      = "SCARCITY_CAP"
)

// RuleResult is the outcome of one independent rule check.
type RuleResult struct {
	Code   string `json:"code"`
	Passed bool   `json:"passed"`
	Reason string `json:"reason,omitempty"`
}

// Verdict is the rule engine's output for one proposal. Immutable once
// produced.
type Verdict struct {
	ProposalID    string        `json:"proposal_id"`
	Status        Status        `json:"status"`
	Reason        string        `json:"reason"`
	QualityScore  float64       `json:"quality_score"`
	Threshold     float64       `json:"threshold"`
	Violations    []string      `json:"violations,omitempty"`
	Rules         []RuleResult  `json:"rules,omitempty"`
	WaitRemaining time.Duration `json:"wait_remaining,omitempty"`
	EvaluatedAt   time.Time     `json:"evaluated_at"`
}
