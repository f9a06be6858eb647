package rank

import (
	"time"

	"github.com/okian/gavel/internal/domain/model"
)

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithSelectionFraction sets the top fraction of ranked signals taken as
// proposal candidates.
func WithSelectionFraction(fraction float64) Option {
	return func(r *Ranker) {
		if fraction > 0 && fraction <= 1 {
			r.selectionFraction = fraction
		}
	}
}

// WithProposalFloor sets the minimum priority a candidate needs to
// become a proposal.
func WithProposalFloor(floor float64) Option {
	return func(r *Ranker) {
		if floor >= 0 {
			r.proposalFloor = floor
		}
	}
}

// WithModuleRouting sets the category-to-module policy table. The
// fallback module owns every unrouted category.
func WithModuleRouting(routing map[model.Category]string, fallback string) Option {
	return func(r *Ranker) {
		if len(routing) > 0 {
			r.routing = make(map[model.Category]string, len(routing))
			for category, module := range routing {
				r.routing[category] = module
			}
		}
		if fallback != "" {
			r.defaultModule = fallback
		}
	}
}

// WithClock sets the time source used for proposal creation times.
func WithClock(clock func() time.Time) Option {
	return func(r *Ranker) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithIDGenerator sets the proposal id generator.
func WithIDGenerator(newID func() string) Option {
	return func(r *Ranker) {
		if newID != nil {
			r.newID = newID
		}
	}
}
