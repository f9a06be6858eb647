// Package worker runs independent batches concurrently. Every worker
// owns a private pipeline instance, so no per-batch accumulator state
// (filter counters, execution queue) is ever shared between batches.
package worker

import (
	"context"
	"runtime"
	"sync"

	"github.com/okian/gavel/internal/domain/model"
	"github.com/okian/gavel/pkg/logger"
)

// defaultDepthMultiplier sizes the job buffer relative to the worker
// count.
const defaultDepthMultiplier = 2

// Job is one batch to process.
type Job struct {
	ID     string
	Inputs []model.RawInput
	System model.SystemContext
}

// Result couples a job with its outcome.
type Result struct {
	JobID string
	Batch model.BatchResult
	Err   error
}

// Runner processes one batch. *app.Pipeline satisfies this.
type Runner interface {
	Run(ctx context.Context, inputs []model.RawInput, sys model.SystemContext) (model.BatchResult, error)
}

// Pool fans batch jobs out to workers.
type Pool struct {
	jobs      chan Job
	results   chan Result
	newRunner func() Runner
	workers   int
	wg        sync.WaitGroup
	logger    logger.Logger

	stopOnce sync.Once
}

// NewPool creates a pool of workers. newRunner is called once per
// worker to build its private pipeline.
func NewPool(workers int, newRunner func() Runner, opts ...Option) *Pool {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	p := &Pool{
		newRunner: newRunner,
		workers:   workers,
		logger:    logger.Get().Named("batch-pool"),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.jobs == nil {
		p.jobs = make(chan Job, workers*defaultDepthMultiplier)
	}
	p.results = make(chan Result, cap(p.jobs))

	return p
}

// Start launches the workers.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(ctx)
	}
}

func (p *Pool) run(ctx context.Context) {
	defer p.wg.Done()

	runner := p.newRunner()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			batch, err := runner.Run(ctx, job.Inputs, job.System)
			if err != nil {
				p.logger.Error(ctx, "batch failed",
					logger.String("jobID", job.ID),
					logger.Error(err),
				)
			}
			select {
			case p.results <- Result{JobID: job.ID, Batch: batch, Err: err}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. Returns false on backpressure or cancellation.
func (p *Pool) Submit(ctx context.Context, job Job) bool {
	select {
	case p.jobs <- job:
		return true
	case <-ctx.Done():
		return false
	default:
		return false
	}
}

// Results returns the channel finished batches arrive on.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Stop closes the job intake and waits for in-flight batches, then
// closes the results channel.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.jobs)
		p.wg.Wait()
		close(p.results)
	})
}
