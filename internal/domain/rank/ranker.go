// Package rank merges same-category pain signals, ranks them, and emits
// proposals for the highest-priority tail of a batch.
package rank

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/okian/gavel/internal/domain/model"
)

// Default selection policy.
const (
	defaultSelectionFraction = 0.10
	defaultProposalFloor     = 70.0

	// highIntensityThreshold routes non-bug signals to a "modify"
	// proposal when the pain is severe enough.
	highIntensityThreshold = 80.0

	// defaultModuleID owns every category without an explicit route.
	defaultModuleID = "ui"

	maxExpectedImpact = 100.0
)

// Ranker turns merged signals into proposals. Stateless between calls;
// one instance can serve many batches.
type Ranker struct {
	selectionFraction float64
	proposalFloor     float64
	routing           map[model.Category]string
	defaultModule     string
	clock             func() time.Time
	newID             func() string
}

// New creates a Ranker with the default selection policy.
func New(opts ...Option) *Ranker {
	r := &Ranker{
		selectionFraction: defaultSelectionFraction,
		proposalFloor:     defaultProposalFloor,
		routing: map[model.Category]string{
			model.CategoryBug: "core",
		},
		defaultModule: defaultModuleID,
		clock:         time.Now,
		newID:         uuid.NewString,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Merge folds same-category signals into one. Intensity, actionability
// and affected users take the max across merged signals, frequency
// sums, and priority is recomputed from the folded fields — the fold is
// associative and commutative, so merge order never changes the result.
func Merge(signals []model.PainSignal) []model.PainSignal {
	byCategory := make(map[model.Category]model.PainSignal)
	for _, sig := range signals {
		acc, ok := byCategory[sig.Category]
		if !ok {
			acc = sig
			acc.SourceIDs = append([]string(nil), sig.SourceIDs...)
			byCategory[sig.Category] = acc
			continue
		}
		acc.Intensity = math.Max(acc.Intensity, sig.Intensity)
		acc.Actionability = math.Max(acc.Actionability, sig.Actionability)
		acc.Frequency += sig.Frequency
		if sig.AffectedUsers > acc.AffectedUsers {
			acc.AffectedUsers = sig.AffectedUsers
		}
		acc.SourceIDs = append(acc.SourceIDs, sig.SourceIDs...)
		byCategory[sig.Category] = acc
	}

	merged := make([]model.PainSignal, 0, len(byCategory))
	for _, sig := range byCategory {
		sig.Priority = model.SignalPriority(sig.Intensity, sig.Frequency, sig.AffectedUsers, sig.Actionability)
		merged = append(merged, sig)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Category < merged[j].Category
	})
	return merged
}

// Rank merges signals, keeps the top selection fraction by priority, and
// emits one proposal per surviving signal. Candidates inside the top
// fraction but below the proposal floor are silently dropped.
func (r *Ranker) Rank(ctx context.Context, signals []model.PainSignal) []model.Proposal {
	merged := Merge(signals)
	if len(merged) == 0 {
		return nil
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Priority > merged[j].Priority
	})

	candidates := int(math.Ceil(float64(len(merged)) * r.selectionFraction))
	if candidates < 1 {
		candidates = 1
	}
	if candidates > len(merged) {
		candidates = len(merged)
	}

	proposals := make([]model.Proposal, 0, candidates)
	for _, sig := range merged[:candidates] {
		if ctx.Err() != nil {
			break
		}
		if sig.Priority < r.proposalFloor {
			continue
		}
		proposals = append(proposals, r.propose(sig))
	}
	return proposals
}

// propose builds the single proposal for a surviving signal.
func (r *Ranker) propose(sig model.PainSignal) model.Proposal {
	// Bug and high-intensity pain always targets an existing module;
	// only feature pressure below that bar asks for something new.
	kind := model.KindModify
	switch {
	case sig.Category == model.CategoryBug || sig.Intensity > highIntensityThreshold:
		kind = model.KindModify
	case sig.Category == model.CategoryFeature:
		kind = model.KindCreate
	}

	impact := sig.Priority
	if impact > maxExpectedImpact {
		impact = maxExpectedImpact
	}

	return model.Proposal{
		ID:             r.newID(),
		Signal:         sig,
		TargetModuleID: r.route(sig.Category),
		Kind:           kind,
		Description: fmt.Sprintf("%s pressure: %d submissions from %d submitters (priority %.1f)",
			sig.Category, sig.Frequency, sig.AffectedUsers, sig.Priority),
		ExpectedImpact: impact,
		CreatedAt:      r.clock(),
	}
}

func (r *Ranker) route(category model.Category) string {
	if module, ok := r.routing[category]; ok {
		return module
	}
	return r.defaultModule
}
