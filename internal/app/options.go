package app

import (
	"time"

	"github.com/okian/gavel/internal/adapters/mq/queue"
	"github.com/okian/gavel/internal/adapters/repository"
	"github.com/okian/gavel/internal/domain/noise"
	"github.com/okian/gavel/internal/domain/rank"
	"github.com/okian/gavel/internal/domain/rules"
	"github.com/okian/gavel/pkg/logger"
)

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithFilter sets the noise filter instance.
func WithFilter(f *noise.Filter) Option {
	return func(p *Pipeline) {
		if f != nil {
			p.filter = f
		}
	}
}

// WithRanker sets the signal ranker instance.
func WithRanker(r *rank.Ranker) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.ranker = r
		}
	}
}

// WithEngine sets the rule engine instance.
func WithEngine(e *rules.Engine) Option {
	return func(p *Pipeline) {
		if e != nil {
			p.engine = e
		}
	}
}

// WithSource sets the module metrics source.
func WithSource(s repository.Source) Option {
	return func(p *Pipeline) {
		if s != nil {
			p.source = s
		}
	}
}

// WithQueue sets the execution queue.
func WithQueue(q queue.Queue) Option {
	return func(p *Pipeline) {
		if q != nil {
			p.queue = q
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClock sets the time source.
func WithClock(clock func() time.Time) Option {
	return func(p *Pipeline) {
		if clock != nil {
			p.clock = clock
		}
	}
}
