// Package queue provides the execution queue approved items drain from.
//
// Downstream execution consumes items strictly FIFO via DequeueNext; the
// pipeline is the only producer.
package queue

import (
	"context"
	"sync"

	"github.com/okian/gavel/internal/domain/model"
	"github.com/okian/gavel/pkg/metrics"
)

// defaultQueueCapacity bounds the in-memory queue.
const defaultQueueCapacity = 10_000

// Item is the payload type flowing through the queue.
type Item = model.ApprovedItem

// Queue provides non-blocking enqueue and FIFO drain semantics.
type Queue interface {
	// Enqueue adds an item to the queue.
	// Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, item Item) bool

	// DequeueNext removes and returns the oldest item.
	// Returns false when the queue is empty.
	DequeueNext(ctx context.Context) (Item, bool)

	// Len returns the current number of queued items.
	Len(ctx context.Context) int

	// Close shuts down the queue; no new items can be enqueued.
	Close() error

	// IsClosed reports whether the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	items    chan Item
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates an in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.items = make(chan Item, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)

	return q
}

// Enqueue adds an item to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, item Item) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		return false
	}

	select {
	case q.items <- item:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.items))
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		return false
	default:
		metrics.RecordQueueEnqueueError()
		return false // queue is full
	}
}

// DequeueNext removes and returns the oldest item, FIFO.
func (q *InMemoryQueue) DequeueNext(ctx context.Context) (Item, bool) {
	select {
	case item, ok := <-q.items:
		if !ok {
			return Item{}, false
		}
		metrics.RecordQueueDequeue()
		metrics.UpdateQueueSize(len(q.items))
		return item, true
	case <-ctx.Done():
		return Item{}, false
	default:
		return Item{}, false
	}
}

// Len returns the current number of queued items.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.items)
	metrics.UpdateQueueSize(size)
	return size
}

// Close shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	close(q.items)
	q.closed = true
	return nil
}

// IsClosed reports whether the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
