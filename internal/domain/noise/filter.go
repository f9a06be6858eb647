// Package noise reduces a batch of raw inputs to category-level pain
// signals, discarding low-information and near-duplicate records.
package noise

import (
	"context"
	"math"
	"sort"

	"github.com/okian/gavel/internal/domain/model"
)

// Default admission thresholds.
const (
	defaultNoiseFloor  = 30.0
	defaultSignalFloor = 50.0

	// emotionSpecificityFloor rejects pure venting: "emotion" records
	// below this specificity are not actionable.
	emotionSpecificityFloor = 20.0

	// Vague negativity: complaints below this specificity with sentiment
	// below the negativity floor carry no usable information.
	complaintSpecificityFloor = 30.0
	complaintNegativityFloor  = -50.0
)

// Noise score weights.
const (
	noiseSpecificityWeight = 0.4
	noiseSentimentWeight   = 0.3
	noiseUrgencyWeight     = 0.3
	sentimentScale         = 100.0
	intensityDivisor       = 2.0
)

// Counters are the per-batch running totals behind the discard-rate
// statistic. They must be reset at the start of every batch.
type Counters struct {
	Received         int
	NoiseRejected    int
	DuplicatesMerged int
	SignalsDropped   int
}

// Filter scores and discards raw inputs, then aggregates the survivors
// into pain signals. A Filter holds per-batch state and must not be
// shared across concurrent batches.
type Filter struct {
	noiseFloor  float64
	signalFloor float64
	window      *dupeWindow
	counters    Counters
}

// New creates a Filter with the default admission policy.
func New(opts ...Option) *Filter {
	f := &Filter{
		noiseFloor:  defaultNoiseFloor,
		signalFloor: defaultSignalFloor,
		window:      newDupeWindow(defaultDupeWindow, defaultDupeSimilarity),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Reset clears the per-batch counters and the duplicate window.
func (f *Filter) Reset() {
	f.counters = Counters{}
	f.window.reset()
}

// Counters returns a copy of the per-batch counters.
func (f *Filter) Counters() Counters {
	return f.counters
}

// Reduce runs the admission tests over inputs and aggregates survivors
// into at most one pain signal per category. Signals below the priority
// gate are dropped here, the second admission gate after the per-record
// tests.
func (f *Filter) Reduce(ctx context.Context, inputs []model.RawInput) []model.PainSignal {
	f.counters.Received += len(inputs)

	groups := make(map[model.Category][]model.RawInput)
	for _, in := range inputs {
		if ctx.Err() != nil {
			break
		}
		if !f.admit(in) {
			f.counters.NoiseRejected++
			continue
		}
		if f.window.seen(in) {
			f.counters.DuplicatesMerged++
			continue
		}
		if NoiseScore(in) < f.noiseFloor {
			f.counters.NoiseRejected++
			continue
		}
		groups[in.Category] = append(groups[in.Category], in)
	}

	signals := make([]model.PainSignal, 0, len(groups))
	for category, members := range groups {
		sig := aggregate(category, members)
		if sig.Priority < f.signalFloor {
			f.counters.SignalsDropped++
			continue
		}
		signals = append(signals, sig)
	}

	// Map iteration order is random; keep the output stable.
	sort.Slice(signals, func(i, j int) bool {
		return signals[i].Category < signals[j].Category
	})
	return signals
}

// admit applies the category-specific admission tests.
func (f *Filter) admit(in model.RawInput) bool {
	switch in.Category {
	case model.CategoryEmotion:
		if in.Specificity < emotionSpecificityFloor {
			return false
		}
	case model.CategoryComplaint:
		if in.Specificity < complaintSpecificityFloor && in.Sentiment < complaintNegativityFloor {
			return false
		}
	}
	return true
}

// NoiseScore is the per-record information score. Neutral sentiment
// scores higher than either extreme: strong emotion in both directions
// tends to carry less actionable content.
func NoiseScore(in model.RawInput) float64 {
	return noiseSpecificityWeight*in.Specificity +
		noiseSentimentWeight*(sentimentScale-math.Abs(in.Sentiment)) +
		noiseUrgencyWeight*in.Urgency
}

// aggregate folds one category group into a pain signal.
func aggregate(category model.Category, members []model.RawInput) model.PainSignal {
	var intensitySum, specificitySum float64
	submitters := make(map[string]struct{}, len(members))
	ids := make([]string, 0, len(members))

	for _, in := range members {
		intensitySum += (math.Abs(in.Sentiment) + in.Urgency) / intensityDivisor
		specificitySum += in.Specificity
		submitters[in.SubmitterID] = struct{}{}
		ids = append(ids, in.ID)
	}

	n := float64(len(members))
	sig := model.PainSignal{
		Category:      category,
		SourceIDs:     ids,
		Intensity:     intensitySum / n,
		Frequency:     len(members),
		AffectedUsers: len(submitters),
		Actionability: specificitySum / n,
	}
	sig.Priority = model.SignalPriority(sig.Intensity, sig.Frequency, sig.AffectedUsers, sig.Actionability)
	return sig
}
