// Package app wires the pipeline stages into the batch orchestrator.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/gavel/internal/adapters/mq/queue"
	"github.com/okian/gavel/internal/adapters/repository"
	"github.com/okian/gavel/internal/domain/evidence"
	"github.com/okian/gavel/internal/domain/model"
	"github.com/okian/gavel/internal/domain/noise"
	"github.com/okian/gavel/internal/domain/rank"
	"github.com/okian/gavel/internal/domain/rules"
	"github.com/okian/gavel/pkg/logger"
	"github.com/okian/gavel/pkg/metrics"
)

// Stage names recorded in evidence traces.
const (
	stageFilter   = "FILTER"
	stageEvaluate = "EVALUATE"
	stageApprove  = "APPROVE"
)

// evidenceSource tags pipeline-built input logs.
const evidenceSource = "pipeline"

// Pipeline drives one batch end to end: noise filter -> signal ranker
// -> per-proposal rule evaluation and evidence -> partitioned result.
//
// A Pipeline owns per-batch accumulator state (the filter counters and
// the execution queue). Run serializes batches on one instance; for
// parallel batches use one Pipeline per worker instead of sharing.
type Pipeline struct {
	mu sync.Mutex

	filter *noise.Filter
	ranker *rank.Ranker
	engine *rules.Engine
	source repository.Source
	queue  queue.Queue
	clock  func() time.Time
	logger logger.Logger
}

// New constructs a Pipeline with default components. A metrics source
// must be supplied via WithSource before Run is called.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		filter: noise.New(),
		ranker: rank.New(),
		engine: rules.New(),
		queue:  queue.NewInMemoryQueue(),
		clock:  time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = logger.Get().Named("pipeline")
	}
	if p.source == nil {
		p.source = repository.NewInMemoryStore()
	}

	return p
}

// Run processes one batch start to finish and always returns a complete
// BatchResult; individual-record problems never fail the call. The only
// caller-visible failure modes are an empty input list and an evidence
// construction error, which indicates a builder bug and aborts the
// batch.
func (p *Pipeline) Run(ctx context.Context, inputs []model.RawInput, sys model.SystemContext) (model.BatchResult, error) {
	if len(inputs) == 0 {
		metrics.RecordBatchFailure()
		return model.BatchResult{}, ErrInvalidBatch
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	start := p.clock()
	p.filter.Reset()

	signals := p.filter.Reduce(ctx, inputs)
	proposals := p.ranker.Rank(ctx, signals)

	result := model.BatchResult{
		Approved: []model.ApprovedItem{},
		Rejected: []model.RejectedItem{},
		Pending:  []model.PendingItem{},
	}

	for i := range proposals {
		proposal := proposals[i]

		verdict, bundle, sealed, err := p.adjudicate(ctx, proposal, sys)
		if err != nil {
			metrics.RecordBatchFailure()
			return model.BatchResult{}, fmt.Errorf("evidence construction for proposal %s: %w", proposal.ID, err)
		}
		metrics.RecordVerdict(string(verdict.Status))

		switch verdict.Status {
		case model.StatusApproved:
			if !sealed {
				// Integrity failure: fatal for the item, invisible to
				// the rest of the batch.
				continue
			}
			item := model.ApprovedItem{
				Proposal: proposal,
				Verdict:  verdict,
				Evidence: bundle,
				Order:    len(result.Approved) + 1,
			}
			result.Approved = append(result.Approved, item)
			if !p.queue.Enqueue(ctx, item) {
				p.logger.Warn(ctx, "execution queue rejected approved item",
					logger.String("proposalID", proposal.ID),
				)
			}
		case model.StatusPending:
			result.Pending = append(result.Pending, model.PendingItem{
				Proposal:        proposal,
				Verdict:         verdict,
				WaitRemainingMS: verdict.WaitRemaining.Milliseconds(),
			})
		default:
			result.Rejected = append(result.Rejected, model.RejectedItem{
				Proposal: proposal,
				Verdict:  verdict,
				Reason:   verdict.Reason,
			})
		}
	}

	counters := p.filter.Counters()
	discardRate := 1 - float64(len(proposals))/float64(len(inputs))
	result.Summary = model.Summary{
		TotalInputs:        len(inputs),
		NoiseRemoved:       counters.NoiseRejected,
		DuplicatesMerged:   counters.DuplicatesMerged,
		ProposalsGenerated: len(proposals),
		ApprovedCount:      len(result.Approved),
		RejectedCount:      len(result.Rejected),
		PendingCount:       len(result.Pending),
		DiscardRate:        discardRate,
		RulesetVersion:     rules.Version,
	}

	metrics.RecordInputsReceived(counters.Received)
	metrics.RecordNoiseRejected(counters.NoiseRejected)
	metrics.RecordDuplicatesMerged(counters.DuplicatesMerged)
	metrics.RecordSignalsDropped(counters.SignalsDropped)
	metrics.RecordSignalsEmitted(len(signals))
	metrics.RecordProposalsCreated(len(proposals))
	metrics.UpdateDiscardRate(discardRate)
	metrics.RecordBatchProcessed()
	metrics.RecordBatchDuration(float64(p.clock().Sub(start).Milliseconds()))
	metrics.UpdateLastBatchUnix(float64(p.clock().Unix()))

	p.logger.Info(ctx, "batch complete",
		logger.Int("inputs", len(inputs)),
		logger.Int("signals", len(signals)),
		logger.Int("proposals", len(proposals)),
		logger.Int("approved", len(result.Approved)),
		logger.Int("rejected", len(result.Rejected)),
		logger.Int("pending", len(result.Pending)),
		logger.Float64("discardRate", discardRate),
	)

	return result, nil
}

// adjudicate evaluates one proposal and, when approved, seals its
// evidence bundle before the item may surface anywhere. The returned
// error is a construction error only; admissibility and resolution
// failures are folded into the verdict.
func (p *Pipeline) adjudicate(ctx context.Context, proposal model.Proposal, sys model.SystemContext) (model.Verdict, model.EvidenceBundle, bool, error) {
	var none model.EvidenceBundle

	builder := evidence.NewBuilder(evidence.WithClock(p.clock))
	if err := builder.RecordInput(evidenceSource, proposal.ID, string(proposal.Kind), proposal.Description, ""); err != nil {
		return model.Verdict{}, none, false, err
	}
	if err := builder.AddStage(stageFilter, fmt.Sprintf("signal priority %.1f", proposal.Signal.Priority)); err != nil {
		return model.Verdict{}, none, false, err
	}

	moduleMetrics, err := p.source.Resolve(ctx, proposal.TargetModuleID)
	if err != nil {
		p.logger.Debug(ctx, "target module unresolvable",
			logger.String("proposalID", proposal.ID),
			logger.String("moduleID", proposal.TargetModuleID),
		)
		return p.engine.RejectUnknownModule(proposal), none, false, nil
	}

	evalStart := time.Now()
	verdict := p.engine.Evaluate(ctx, rules.Evaluation{
		Proposal: proposal,
		Metrics:  moduleMetrics,
		System:   sys,
		Evidence: builder.Draft(),
	})
	metrics.RecordEvaluationLatency(float64(time.Since(evalStart).Milliseconds()))

	if verdict.Status != model.StatusApproved {
		return verdict, none, false, nil
	}

	rulesApplied := make([]string, 0, len(verdict.Rules))
	for _, r := range verdict.Rules {
		rulesApplied = append(rulesApplied, r.Code)
	}

	if err := builder.AddStage(stageEvaluate, verdict.Reason); err != nil {
		return verdict, none, false, err
	}
	if err := builder.AddStage(stageApprove, "admitted for execution"); err != nil {
		return verdict, none, false, err
	}
	if err := builder.Complete(string(verdict.Status), rulesApplied); err != nil {
		return verdict, none, false, err
	}

	bundle, err := builder.Build()
	if err != nil {
		return verdict, none, false, err
	}
	metrics.RecordEvidenceSealed()

	if err := evidence.Validate(bundle); err != nil {
		metrics.RecordIntegrityFailure()
		p.logger.Error(ctx, "sealed bundle failed validation; dropping item",
			logger.String("proposalID", proposal.ID),
			logger.Error(err),
		)
		return verdict, none, false, nil
	}
	if !evidence.VerifyIntegrity(bundle) {
		metrics.RecordIntegrityFailure()
		p.logger.Error(ctx, "sealed bundle failed integrity check; dropping item",
			logger.String("proposalID", proposal.ID),
		)
		return verdict, none, false, nil
	}

	return verdict, bundle, true, nil
}

// DequeueNext drains the oldest approved item from the execution queue.
func (p *Pipeline) DequeueNext(ctx context.Context) (model.ApprovedItem, bool) {
	return p.queue.DequeueNext(ctx)
}

// QueueLen returns the number of approved items awaiting execution.
func (p *Pipeline) QueueLen(ctx context.Context) int {
	return p.queue.Len(ctx)
}

// Stats returns pipeline statistics for monitoring surfaces.
func (p *Pipeline) Stats(ctx context.Context) map[string]interface{} {
	counters := p.filter.Counters()
	return map[string]interface{}{
		"queueLength":      p.queue.Len(ctx),
		"received":         counters.Received,
		"noiseRejected":    counters.NoiseRejected,
		"duplicatesMerged": counters.DuplicatesMerged,
		"signalsDropped":   counters.SignalsDropped,
		"rulesetVersion":   rules.Version,
	}
}
