package noise

import "time"

// Option applies a configuration option to the Filter.
type Option func(*Filter)

// WithNoiseFloor sets the minimum per-record noise score admitted.
func WithNoiseFloor(floor float64) Option {
	return func(f *Filter) {
		if floor >= 0 {
			f.noiseFloor = floor
		}
	}
}

// WithSignalFloor sets the minimum priority an aggregated signal needs
// to survive the second admission gate.
func WithSignalFloor(floor float64) Option {
	return func(f *Filter) {
		if floor >= 0 {
			f.signalFloor = floor
		}
	}
}

// WithDupeWindow sets the near-duplicate detection window.
func WithDupeWindow(window time.Duration) Option {
	return func(f *Filter) {
		if window > 0 {
			f.window = newDupeWindow(window, f.window.similarity)
		}
	}
}

// WithDupeSimilarity sets the Jaccard similarity above which a
// submission counts as a duplicate.
func WithDupeSimilarity(similarity float64) Option {
	return func(f *Filter) {
		if similarity > 0 && similarity <= 1 {
			f.window = newDupeWindow(f.window.window, similarity)
		}
	}
}
