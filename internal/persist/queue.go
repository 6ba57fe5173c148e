// Package persist applies repository writes in the background.
//
// The ring is updated synchronously by its callers; persistence trails
// behind on a single worker so writes are applied in the order they were
// issued. Enqueueing never blocks.
package persist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/taskring/internal/domain"
)

// ErrClosed is reported for writes issued after Close.
var ErrClosed = errors.New("persist queue closed")

// DefaultTimeout bounds a single repository call.
const DefaultTimeout = 10 * time.Second

// Ensure Queue implements domain.Persister.
var _ domain.Persister = (*Queue)(nil)

type job struct {
	task    domain.Task
	barrier chan struct{} // Closed when reached; set only on Flush jobs
	op      domain.PersistOp
	id      string
}

// Option configures a Queue.
type Option func(*Queue)

// WithLogger logs completed and failed writes.
func WithLogger(l domain.Logger) Option {
	return func(q *Queue) {
		if l != nil {
			q.logger = l
		}
	}
}

// WithFailureHandler is called from the worker goroutine for every failed write.
func WithFailureHandler(fn func(*domain.PersistenceFailure)) Option {
	return func(q *Queue) {
		q.onFailure = fn
	}
}

// WithTimeout bounds each repository call.
func WithTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

// Queue is an unbounded FIFO of repository writes drained by one worker.
// Fields are ordered to minimize memory padding.
type Queue struct {
	repo      domain.TaskRepository
	logger    domain.Logger
	onFailure func(*domain.PersistenceFailure)
	cond      *sync.Cond
	done      chan struct{}
	pending   []job
	mu        sync.Mutex
	timeout   time.Duration
	closed    bool
}

// New starts a Queue writing to repo.
func New(repo domain.TaskRepository, opts ...Option) *Queue {
	q := &Queue{
		repo:    repo,
		logger:  domain.NopLogger{},
		done:    make(chan struct{}),
		timeout: DefaultTimeout,
	}
	q.cond = sync.NewCond(&q.mu)
	for _, opt := range opts {
		opt(q)
	}
	go q.run()
	return q
}

// Save enqueues a repository Save.
func (q *Queue) Save(task domain.Task) {
	q.enqueue(job{op: domain.PersistSave, task: task, id: task.ID})
}

// Update enqueues a repository Update.
func (q *Queue) Update(task domain.Task) {
	q.enqueue(job{op: domain.PersistUpdate, task: task, id: task.ID})
}

// Delete enqueues a repository Delete.
func (q *Queue) Delete(id string) {
	q.enqueue(job{op: domain.PersistDelete, id: id})
}

// Pending returns the number of writes not yet started.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush waits until every write issued before it has been applied.
func (q *Queue) Flush(ctx context.Context) error {
	barrier := make(chan struct{})
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.pending = append(q.pending, job{barrier: barrier})
	q.cond.Signal()
	q.mu.Unlock()

	select {
	case <-barrier:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("flush persist queue: %w", ctx.Err())
	}
}

// Close stops accepting writes and waits for pending ones to finish or for
// ctx to expire.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain persist queue: %w", ctx.Err())
	}
}

func (q *Queue) enqueue(j job) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.fail(j, ErrClosed)
		return
	}
	q.pending = append(q.pending, j)
	q.cond.Signal()
	q.mu.Unlock()
}

func (q *Queue) run() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for len(q.pending) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return
		}
		j := q.pending[0]
		q.pending[0] = job{}
		q.pending = q.pending[1:]
		q.mu.Unlock()

		q.apply(j)
	}
}

func (q *Queue) apply(j job) {
	if j.barrier != nil {
		close(j.barrier)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	var err error
	switch j.op {
	case domain.PersistSave:
		err = q.repo.Save(ctx, j.task)
	case domain.PersistUpdate:
		err = q.repo.Update(ctx, j.task)
	case domain.PersistDelete:
		err = q.repo.Delete(ctx, j.id)
	}
	if err != nil {
		q.fail(j, err)
		return
	}
	q.logger.Debug(j.id, "persist", string(j.op)+" ok")
}

func (q *Queue) fail(j job, err error) {
	f := &domain.PersistenceFailure{Op: j.op, TaskID: j.id, Err: err}
	q.logger.Error(j.id, "persist", f.Error())
	if q.onFailure != nil {
		q.onFailure(f)
	}
}
