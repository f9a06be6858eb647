package noise

import (
	"strings"
	"sync"
	"time"

	"github.com/okian/gavel/internal/domain/model"
)

// Defaults for near-duplicate detection.
const (
	defaultDupeWindow     = 24 * time.Hour
	defaultDupeSimilarity = 0.8
)

const wordTrimCutset = ".,;:!?\"'()[]"

// submissionKey scopes the duplicate window to one submitter and
// category.
type submissionKey struct {
	submitter string
	category  model.Category
}

type pastSubmission struct {
	words map[string]struct{}
	at    time.Time
}

// dupeWindow tracks recent submissions per submitter and category and
// flags near-duplicates by word-set Jaccard similarity.
type dupeWindow struct {
	mu         sync.Mutex
	window     time.Duration
	similarity float64
	recent     map[submissionKey][]pastSubmission
}

func newDupeWindow(window time.Duration, similarity float64) *dupeWindow {
	return &dupeWindow{
		window:     window,
		similarity: similarity,
		recent:     make(map[submissionKey][]pastSubmission),
	}
}

func (w *dupeWindow) reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.recent = make(map[submissionKey][]pastSubmission)
}

// seen reports whether in is a near-duplicate of a prior submission from
// the same submitter and category inside the window. The submission is
// recorded either way; expired entries are pruned as a side effect.
func (w *dupeWindow) seen(in model.RawInput) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	key := submissionKey{submitter: in.SubmitterID, category: in.Category}
	words := wordSet(in.Content)

	kept := w.recent[key][:0]
	dup := false
	for _, past := range w.recent[key] {
		if in.SubmittedAt.Sub(past.at) > w.window {
			continue
		}
		kept = append(kept, past)
		if !dup && jaccard(words, past.words) > w.similarity {
			dup = true
		}
	}
	w.recent[key] = append(kept, pastSubmission{words: words, at: in.SubmittedAt})
	return dup
}

// wordSet lowercases content and strips surrounding punctuation so that
// trivially reworded resubmissions still collide.
func wordSet(content string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(content)) {
		word = strings.Trim(word, wordTrimCutset)
		if word != "" {
			set[word] = struct{}{}
		}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	intersection := 0
	for word := range a {
		if _, ok := b[word]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
