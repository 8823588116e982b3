// Package mutation tracks the lifecycle of outbound requests.
//
// A Tracker is bound to one logical action (sending a chat turn, running a
// budget analysis, ...) and moves Idle -> Pending -> Success|Error. Terminal
// states stay until the next submission. Every submission takes a sequence
// number; only the resolution carrying the latest issued number is accepted,
// so the most recent submission always owns the terminal state no matter in
// which order the responses arrive.
package mutation

import (
	"context"
	"sync"

	"github.com/longkey1/fincoach/internal/transport"
)

// Status is the lifecycle position of a Tracker.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// State is a snapshot of a Tracker.
type State[T any] struct {
	Status Status
	Seq    uint64 // sequence of the submission this state belongs to

	// Set when Status is StatusSuccess.
	Data T

	// Set when Status is StatusError.
	Err     error
	Kind    transport.Kind
	Message string
}

// IsTerminal reports whether the state is Success or Error.
func (s State[T]) IsTerminal() bool {
	return s.Status == StatusSuccess || s.Status == StatusError
}

// Tracker is the lifecycle state machine of one logical action.
// It is safe for concurrent use.
type Tracker[T any] struct {
	name string

	mu    sync.Mutex
	seq   uint64
	state State[T]
}

// New creates an idle Tracker for the named action.
func New[T any](name string) *Tracker[T] {
	return &Tracker[T]{name: name}
}

// Name returns the action the tracker is bound to.
func (t *Tracker[T]) Name() string {
	return t.name
}

// State returns the current snapshot.
func (t *Tracker[T]) State() State[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// IsPending reports whether a submission is in flight.
func (t *Tracker[T]) IsPending() bool {
	return t.State().Status == StatusPending
}

// Begin enters Pending for a new submission and returns its sequence number.
// The previous result snapshot is discarded.
func (t *Tracker[T]) Begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.state = State[T]{Status: StatusPending, Seq: t.seq}
	return t.seq
}

// Succeed resolves submission seq with data. It returns false, leaving the
// state untouched, when a later submission has been issued since.
func (t *Tracker[T]) Succeed(seq uint64, data T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.seq {
		return false
	}
	t.state = State[T]{Status: StatusSuccess, Seq: seq, Data: data}
	return true
}

// Fail resolves submission seq with err, following the same acceptance rule
// as Succeed.
func (t *Tracker[T]) Fail(seq uint64, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.seq {
		return false
	}
	t.state = State[T]{
		Status:  StatusError,
		Seq:     seq,
		Err:     err,
		Kind:    transport.KindOf(err),
		Message: err.Error(),
	}
	return true
}

// Resolve dispatches to Succeed or Fail depending on err.
func (t *Tracker[T]) Resolve(seq uint64, data T, err error) bool {
	if err != nil {
		return t.Fail(seq, err)
	}
	return t.Succeed(seq, data)
}

// Run submits fn and blocks until it returns. The call's own result is
// returned even when a later submission shadows it on the tracker; accepted
// reports whether it became the tracker's terminal state.
func (t *Tracker[T]) Run(ctx context.Context, fn func(context.Context) (T, error)) (data T, accepted bool, err error) {
	seq := t.Begin()
	data, err = fn(ctx)
	accepted = t.Resolve(seq, data, err)
	return data, accepted, err
}
