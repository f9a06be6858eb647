package model

import "math"

// Signal priority weights. Frequency and reach enter logarithmically so
// a flood from one submitter cannot drown out a broad but quiet problem.
const (
	priorityIntensityWeight     = 0.25
	priorityFrequencyWeight     = 15.0
	priorityReachWeight         = 15.0
	priorityActionabilityWeight = 0.35
)

// PainSignal aggregates the surviving raw inputs of one category.
// Never mutated after the ranker finishes merging a batch.
type PainSignal struct {
	Category      Category `json:"category"`
	SourceIDs     []string `json:"source_ids"`
	Intensity     float64  `json:"intensity"`
	Frequency     int      `json:"frequency"`
	AffectedUsers int      `json:"affected_users"`
	Actionability float64  `json:"actionability"`
	Priority      float64  `json:"priority"`
}

// SignalPriority computes the composite priority from aggregate fields.
// The filter and the ranker both derive priority through this single
// formula so a merged signal can never drift from its first aggregation.
func SignalPriority(intensity float64, frequency, affectedUsers int, actionability float64) float64 {
	return priorityIntensityWeight*intensity +
		priorityFrequencyWeight*math.Log10(float64(frequency)+1) +
		priorityReachWeight*math.Log10(float64(affectedUsers)+1) +
		priorityActionabilityWeight*actionability
}
