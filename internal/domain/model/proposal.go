package model

import "time"

// ChangeKind is the kind of change a proposal asks for.
type ChangeKind string

// Known change kinds.
const (
	KindPromote ChangeKind = "promote"
	KindDemote  ChangeKind = "demote"
	KindModify  ChangeKind = "modify"
	KindDelete  ChangeKind = "delete"
	KindCreate  ChangeKind = "create"
)

// TierScarce is the capped, most-privileged module tier. Promotions
// into it are subject to the scarcity rule.
const TierScarce = "scarce"

// Emergency flags that bypass the cooling-off period.
const (
	FlagSecurityCritical = "security-critical"
	FlagLegalCompliance  = "legal-compliance"
)

// Proposal is a candidate change derived from a high-priority pain
// signal. Read-only after the ranker creates it.
type Proposal struct {
	ID             string     `json:"id"`
	Signal         PainSignal `json:"signal"`
	TargetModuleID string     `json:"target_module_id"`
	Kind           ChangeKind `json:"kind"`
	TargetTier     string     `json:"target_tier,omitempty"`
	Description    string     `json:"description"`
	ExpectedImpact float64    `json:"expected_impact"`
	Flags          []string   `json:"flags,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// HasFlag reports whether the proposal carries the given emergency flag.
func (p Proposal) HasFlag(flag string) bool {
	for _, f := range p.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// ModuleMetrics are the quality inputs for a proposal's target module,
// supplied by the module registry at evaluation time.
type ModuleMetrics struct {
	UserSatisfaction float64 `json:"user_satisfaction"`
	ReuseRate        float64 `json:"reuse_rate"`
	FailureRate      float64 `json:"failure_rate"`
	OutcomeImpact    float64 `json:"outcome_impact"`
}
