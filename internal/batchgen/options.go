package batchgen

import "time"

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithNumInputs sets the batch size.
func WithNumInputs(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.numInputs = n
		}
	}
}

// WithNumSubmitters sets how many distinct submitters the batch draws
// from.
func WithNumSubmitters(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.numSubmitters = n
		}
	}
}

// WithModuleCounts sets the system context module totals.
func WithModuleCounts(total, scarce int) Option {
	return func(g *Generator) {
		if total >= 0 {
			g.totalModules = total
		}
		if scarce >= 0 {
			g.scarceModules = scarce
		}
	}
}

// WithClock sets the time source.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) {
		if clock != nil {
			g.clock = clock
		}
	}
}
