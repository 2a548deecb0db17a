// Package queue holds active pipeline jobs and enforces single-flight
// processing per canonical URL.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Queue is an in-memory FIFO of jobs with at most one active (non-terminal)
// job per canonical key. It holds only active work: terminal jobs leave the
// queue immediately, freeing their key for re-submission.
type Queue struct {
	mu     sync.Mutex
	active map[string]*Job
	fifo   []*Job
	wake   chan struct{}

	now func() time.Time
}

func New() *Queue {
	return &Queue{
		active: make(map[string]*Job),
		wake:   make(chan struct{}, 1),
		now:    time.Now,
	}
}

// Enqueue admits url under its canonical key. If an active job already exists
// for the key, that job is returned and created is false: no duplicate work
// is started. Enqueue never blocks.
func (q *Queue) Enqueue(url, key, requestedBy string) (job *Job, created bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if existing, ok := q.active[key]; ok {
		return existing, false
	}

	job = &Job{
		ID:          uuid.New(),
		Key:         key,
		URL:         url,
		RequestedBy: requestedBy,
		SubmittedAt: q.now(),
		State:       StateQueued,
	}
	q.active[key] = job
	q.fifo = append(q.fifo, job)
	q.signal()
	return job, true
}

// Dequeue blocks until a queued job is available or ctx is done. Jobs for
// distinct keys come out in submission order.
func (q *Queue) Dequeue(ctx context.Context) (*Job, error) {
	for {
		q.mu.Lock()
		if len(q.fifo) > 0 {
			job := q.fifo[0]
			q.fifo = q.fifo[1:]
			if len(q.fifo) > 0 {
				// The wake signal coalesces; re-arm it for other waiters.
				q.signal()
			}
			q.mu.Unlock()
			return job, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.wake:
		}
	}
}

// Advance moves an active job to a non-terminal pipeline state.
func (q *Queue) Advance(job *Job, state State) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if state.Terminal() {
		panic("queue: Advance called with terminal state")
	}
	job.State = state
}

// Complete marks the job done and releases its key.
func (q *Queue) Complete(job *Job, outputPath string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	job.State = StateDone
	job.OutputPath = outputPath
	delete(q.active, job.Key)
}

// Fail marks the job failed and releases its key.
func (q *Queue) Fail(job *Job, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	job.State = StateFailed
	job.Err = err
	delete(q.active, job.Key)
}

// Len returns the number of active jobs (queued plus in-flight).
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.active)
}

func (q *Queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}
