package model

import "time"

// InputLog is the first evidence field: what entered the pipeline.
// Content is stored as a positional hash and the submitter is masked.
// This is a privacy boundary, not a cryptographic one.
type InputLog struct {
	Source      string    `json:"source"`
	InputID     string    `json:"input_id"`
	Kind        string    `json:"kind"`
	ContentHash string    `json:"content_hash"`
	Submitter   string    `json:"submitter,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// StageTrace is one step of the process trace.
type StageTrace struct {
	Name   string    `json:"name"`
	Result string    `json:"result"`
	At     time.Time `json:"at"`
}

// ProcessTrace is the second evidence field: the stages a proposal went
// through and the decision they produced.
type ProcessTrace struct {
	Stages       []StageTrace `json:"stages"`
	Decision     string       `json:"decision"`
	RulesApplied []string     `json:"rules_applied,omitempty"`
}

// EvidenceBundle is the fixed 5-field auditable record required before
// an approved verdict may be acted on, plus an integrity hash over the
// other fields. The builder seals it; no field changes afterwards.
type EvidenceBundle struct {
	InputLog      InputLog     `json:"input_log"`
	ProcessTrace  ProcessTrace `json:"process_trace"`
	OutputHash    string       `json:"output_hash"`
	Timestamp     time.Time    `json:"timestamp"`
	ValidatorSig  string       `json:"validator_sig"`
	IntegrityHash string       `json:"integrity_hash"`
}

// EvidenceDraft is the evaluation-time view of an in-progress bundle,
// checked by the evidence-completeness rule before sealing.
type EvidenceDraft struct {
	InputLog     *InputLog
	ProcessTrace *ProcessTrace
	OutputHash   string
	Timestamp    time.Time
	ValidatorSig string
}

// Complete reports whether all five bundle inputs are present.
func (d EvidenceDraft) Complete() bool {
	return d.InputLog != nil && d.InputLog.InputID != "" &&
		d.ProcessTrace != nil && len(d.ProcessTrace.Stages) > 0 &&
		d.OutputHash != "" &&
		d.ValidatorSig != "" &&
		!d.Timestamp.IsZero()
}
