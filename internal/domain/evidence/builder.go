// Package evidence constructs and validates the fixed 5-field auditable
// bundle required before an approved verdict may be acted on.
package evidence

import (
	"time"

	"github.com/okian/gavel/internal/domain/model"
)

// defaultSystemTag is mixed into validator signatures.
const defaultSystemTag = "gavel/validator"

// Builder assembles one bundle through the ordered protocol
// RecordInput -> AddStage* -> Complete -> Build. Each step may run once,
// in that order; violations are construction errors, not admissibility
// failures, and abort the batch.
type Builder struct {
	clock     func() time.Time
	systemTag string

	input     *model.InputLog
	trace     model.ProcessTrace
	completed bool
	sealed    bool
}

// NewBuilder creates a Builder for a single bundle.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		clock:     time.Now,
		systemTag: defaultSystemTag,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// RecordInput records what entered the pipeline. Content is stored as a
// positional hash and the submitter is masked; raw text never enters
// the audit record.
func (b *Builder) RecordInput(source, id, kind, content, submitter string) error {
	switch {
	case b.sealed:
		return ErrSealed
	case b.input != nil:
		return ErrInputRecorded
	}

	b.input = &model.InputLog{
		Source:      source,
		InputID:     id,
		Kind:        kind,
		ContentHash: PositionalHash(content),
		Submitter:   MaskIdentifier(submitter),
		RecordedAt:  b.clock(),
	}
	return nil
}

// AddStage appends one stage to the process trace.
func (b *Builder) AddStage(name, result string) error {
	switch {
	case b.sealed:
		return ErrSealed
	case b.completed:
		return ErrCompleted
	}

	b.trace.Stages = append(b.trace.Stages, model.StageTrace{
		Name:   name,
		Result: result,
		At:     b.clock(),
	})
	return nil
}

// Complete closes the process trace with the decision and the rules
// that produced it.
func (b *Builder) Complete(decision string, rulesApplied []string) error {
	switch {
	case b.sealed:
		return ErrSealed
	case b.completed:
		return ErrCompleted
	}

	b.trace.Decision = decision
	b.trace.RulesApplied = append([]string(nil), rulesApplied...)
	b.completed = true
	return nil
}

// Draft returns the evaluation-time view of the in-progress bundle so
// the evidence-completeness rule can inspect it before sealing.
func (b *Builder) Draft() model.EvidenceDraft {
	draft := model.EvidenceDraft{Timestamp: b.clock()}
	if b.input != nil {
		in := *b.input
		draft.InputLog = &in
	}
	if len(b.trace.Stages) > 0 {
		trace := cloneTrace(b.trace)
		draft.ProcessTrace = &trace
	}
	if b.input != nil && len(b.trace.Stages) > 0 {
		draft.OutputHash = outputHash(*b.input, b.trace)
		draft.ValidatorSig = validatorSig(b.input.InputID, draft.Timestamp, b.systemTag)
	}
	return draft
}

// Build seals the bundle: it computes the output hash, the validator
// signature, and the integrity hash over everything else. Sealing is
// one-way; the builder refuses further use afterwards.
func (b *Builder) Build() (model.EvidenceBundle, error) {
	switch {
	case b.sealed:
		return model.EvidenceBundle{}, ErrSealed
	case b.input == nil:
		return model.EvidenceBundle{}, ErrInputLogMissing
	case !b.completed || len(b.trace.Stages) == 0:
		return model.EvidenceBundle{}, ErrProcessTraceMissing
	}

	ts := b.clock()
	bundle := model.EvidenceBundle{
		InputLog:     *b.input,
		ProcessTrace: cloneTrace(b.trace),
		OutputHash:   outputHash(*b.input, b.trace),
		Timestamp:    ts,
		ValidatorSig: validatorSig(b.input.InputID, ts, b.systemTag),
	}
	bundle.IntegrityHash = IntegrityHash(bundle)

	b.sealed = true
	return bundle, nil
}

func cloneTrace(trace model.ProcessTrace) model.ProcessTrace {
	return model.ProcessTrace{
		Stages:       append([]model.StageTrace(nil), trace.Stages...),
		Decision:     trace.Decision,
		RulesApplied: append([]string(nil), trace.RulesApplied...),
	}
}
