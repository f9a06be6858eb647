// Package batchgen produces synthetic input batches for load and
// acceptance testing of the admission pipeline.
package batchgen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/okian/gavel/internal/domain/model"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	profileDivisor     = 8
)

// Constants for score generation ranges.
const (
	sharpBugSpecMin      = 70.0
	sharpBugSpecRange    = 30.0
	sharpBugUrgMin       = 60.0
	sharpBugUrgRange     = 40.0
	vagueSpecMax         = 18.0
	ventSentMin          = -100.0
	ventSentRange        = 30.0
	featureSpecMin       = 50.0
	featureSpecRange     = 40.0
	questionUrgMax       = 30.0
	suggestionSpecMin    = 35.0
	suggestionSpecRange  = 45.0
	mildSentimentSpread  = 80.0
	angryComplaintSent   = -60.0
	angryComplaintSpread = -40.0
)

// Profile cases driving the batch mix. The remaining draw is an angry
// but specific complaint.
const (
	caseSharpBug = iota
	caseDuplicateBug
	caseVagueComplaint
	caseEmotionalVent
	caseFeatureAsk
	caseQuestion
	caseSuggestion
)

// Default batch shape.
const (
	defaultNumInputs     = 100
	defaultNumSubmitters = 40
	defaultTotalModules  = 100
	defaultScarceModules = 8
)

// bug content repeated across submitters so the filter merges a real
// cluster instead of scattered one-offs.
const sharedBugContent = "export button crashes the app when the report has more than one page"

// Generator builds randomized input batches.
type Generator struct {
	numInputs     int
	numSubmitters int
	totalModules  int
	scarceModules int
	clock         func() time.Time
}

// New constructs a Generator with defaults.
func New(opts ...Option) *Generator {
	g := &Generator{
		numInputs:     defaultNumInputs,
		numSubmitters: defaultNumSubmitters,
		totalModules:  defaultTotalModules,
		scarceModules: defaultScarceModules,
		clock:         time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func randomCase() int {
	n, _ := rand.Int(rand.Reader, big.NewInt(profileDivisor))
	return int(n.Int64())
}

// Batch generates one input batch plus the system context that goes
// with it.
func (g *Generator) Batch(ctx context.Context) ([]model.RawInput, model.SystemContext) {
	submitters := make([]string, g.numSubmitters)
	for i := range submitters {
		submitters[i] = uuid.New().String()
	}

	now := g.clock().UTC()
	inputs := make([]model.RawInput, 0, g.numInputs)

	for i := 0; i < g.numInputs; i++ {
		select {
		case <-ctx.Done():
			return inputs, g.systemContext()
		default:
		}
		submitter := submitters[i%len(submitters)]
		inputs = append(inputs, g.generate(i, submitter, now))
	}

	return inputs, g.systemContext()
}

func (g *Generator) systemContext() model.SystemContext {
	return model.SystemContext{
		TotalModules:      g.totalModules,
		ScarceTierModules: g.scarceModules,
	}
}

func (g *Generator) generate(index int, submitter string, now time.Time) model.RawInput {
	in := model.RawInput{
		ID:          fmt.Sprintf("input_%d_%s", index, uuid.New().String()),
		SubmitterID: submitter,
		SubmittedAt: now.Add(-time.Duration(index) * time.Second),
	}

	switch randomCase() {
	case caseSharpBug:
		in.Category = model.CategoryBug
		in.Content = fmt.Sprintf("saving a draft with tag %d loses the attachment list", index)
		in.Sentiment = -mildSentimentSpread * getRandomFloat()
		in.Urgency = sharpBugUrgMin + sharpBugUrgRange*getRandomFloat()
		in.Specificity = sharpBugSpecMin + sharpBugSpecRange*getRandomFloat()
	case caseDuplicateBug:
		in.Category = model.CategoryBug
		in.Content = sharedBugContent
		in.Sentiment = -mildSentimentSpread * getRandomFloat()
		in.Urgency = sharpBugUrgMin + sharpBugUrgRange*getRandomFloat()
		in.Specificity = sharpBugSpecMin + sharpBugSpecRange*getRandomFloat()
	case caseVagueComplaint:
		in.Category = model.CategoryComplaint
		in.Content = "this whole thing feels off lately"
		in.Sentiment = angryComplaintSent + angryComplaintSpread*getRandomFloat()
		in.Urgency = questionUrgMax * getRandomFloat()
		in.Specificity = vagueSpecMax * getRandomFloat()
	case caseEmotionalVent:
		in.Category = model.CategoryEmotion
		in.Content = "i hate everything about today"
		in.Sentiment = ventSentMin + ventSentRange*getRandomFloat()
		in.Urgency = questionUrgMax * getRandomFloat()
		in.Specificity = vagueSpecMax * getRandomFloat()
	case caseFeatureAsk:
		in.Category = model.CategoryFeature
		in.Content = fmt.Sprintf("add a keyboard shortcut for jumping to section %d", index%9)
		in.Sentiment = mildSentimentSpread * getRandomFloat()
		in.Urgency = sharpBugUrgMin * getRandomFloat()
		in.Specificity = featureSpecMin + featureSpecRange*getRandomFloat()
	case caseQuestion:
		in.Category = model.CategoryQuestion
		in.Content = "where did the archive view move to"
		in.Sentiment = mildSentimentSpread * (getRandomFloat() - 0.5)
		in.Urgency = questionUrgMax * getRandomFloat()
		in.Specificity = suggestionSpecMin * getRandomFloat()
	case caseSuggestion:
		in.Category = model.CategorySuggestion
		in.Content = fmt.Sprintf("group notifications by thread instead of by time, batch %d", index%5)
		in.Sentiment = mildSentimentSpread * getRandomFloat()
		in.Urgency = questionUrgMax + questionUrgMax*getRandomFloat()
		in.Specificity = suggestionSpecMin + suggestionSpecRange*getRandomFloat()
	default:
		in.Category = model.CategoryComplaint
		in.Content = fmt.Sprintf("search result page %d keeps reordering while loading", index%7)
		in.Sentiment = angryComplaintSent * getRandomFloat()
		in.Urgency = sharpBugUrgMin + sharpBugUrgRange*getRandomFloat()
		in.Specificity = featureSpecMin + featureSpecRange*getRandomFloat()
	}

	return in
}
