// Package model contains the data types passed between pipeline stages.
package model

import "time"

// Category classifies a raw change request at intake.
type Category string

// Known intake categories.
const (
	CategoryComplaint  Category = "complaint"
	CategorySuggestion Category = "suggestion"
	CategoryBug        Category = "bug"
	CategoryFeature    Category = "feature"
	CategoryEmotion    Category = "emotion"
	CategoryQuestion   Category = "question"
)

// RawInput is one submitted change request. Immutable once created;
// produced by the intake layer and consumed only by the noise filter.
type RawInput struct {
	ID          string    `json:"id"`
	SubmitterID string    `json:"submitter_id"`
	Category    Category  `json:"category"`
	Content     string    `json:"content"`
	Sentiment   float64   `json:"sentiment"`   // -100..100
	Urgency     float64   `json:"urgency"`     // 0..100
	Specificity float64   `json:"specificity"` // 0..100
	SubmittedAt time.Time `json:"submitted_at"`
}

// SystemContext summarizes the module landscape a batch is evaluated
// against. The counts are taken as-of admission, so the scarcity rule
// compares them directly against the cap.
type SystemContext struct {
	TotalModules      int `json:"total_modules"`
	ScarceTierModules int `json:"scarce_tier_modules"`
}
