package queue

import (
	"time"

	"github.com/google/uuid"
)

// State is a job's position in the pipeline.
type State string

const (
	StateQueued      State = "queued"
	StateDownloading State = "downloading"
	StateEncoding    State = "encoding"
	StatePublishing  State = "publishing"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// Terminal reports whether the state ends a job's lifetime in the queue.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// Job is one unit of pipeline work. Its identity for deduplication is Key,
// the canonical form of the requested URL.
//
// State, OutputPath and Err are owned by the Queue: they change only through
// Advance/Complete/Fail while the job is active, and are stable once the job
// reaches a terminal state.
type Job struct {
	ID          uuid.UUID
	Key         string
	URL         string
	RequestedBy string
	SubmittedAt time.Time

	State      State
	OutputPath string
	Err        error
}
