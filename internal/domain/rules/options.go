package rules

import "time"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithQualityBar sets the quality threshold applied to non-create
// change kinds.
func WithQualityBar(bar float64) Option {
	return func(e *Engine) {
		if bar >= 0 {
			e.qualityBar = bar
		}
	}
}

// WithCoolingOff sets the mandatory wait between proposal creation and
// approval.
func WithCoolingOff(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.coolingOff = d
		}
	}
}

// WithScarcityCap sets the maximum fraction of modules allowed in the
// scarce tier.
func WithScarcityCap(cap float64) Option {
	return func(e *Engine) {
		if cap >= 0 && cap <= 1 {
			e.scarcityCap = cap
		}
	}
}

// WithSignalFloor sets the priority gate the signal-validity rule holds
// originating signals to.
func WithSignalFloor(floor float64) Option {
	return func(e *Engine) {
		if floor >= 0 {
			e.signalFloor = floor
		}
	}
}

// WithClock sets the time source used for cooling-off arithmetic.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}
