package worker

import "github.com/okian/gavel/pkg/logger"

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithQueueDepth sets the job buffer size.
func WithQueueDepth(depth int) Option {
	return func(p *Pool) {
		if depth > 0 {
			p.jobs = make(chan Job, depth)
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}
