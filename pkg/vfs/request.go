package vfs

import (
	"fmt"

	"github.com/google/uuid"
)

// RequestState tracks the lifecycle of a read request.
type RequestState int

const (
	// RequestPending means the request has been created but not resolved.
	// Because every layer resolves requests synchronously inside
	// PreadSubmit, this state is never observable outside the submitting
	// layer itself.
	RequestPending RequestState = iota

	// RequestDone means the read completed and a byte count is stored.
	RequestDone

	// RequestFailed means the read failed and an error is stored.
	RequestFailed
)

// Request represents one in-flight read issued through the submit/collect
// protocol.
//
// Lifecycle: Created -> Resolved(done|failed) -> Collected. A request is
// resolved exactly once, always before PreadSubmit returns it, and collected
// exactly once. There is no cancellation: once submitted, the underlying read
// has already run to completion.
//
// The ID exists for log correlation between submit and collect sites.
type Request struct {
	ID uuid.UUID

	state    RequestState
	count    int
	err      error
	consumed bool
}

// NewRequest creates an unresolved request with a fresh ID.
func NewRequest() *Request {
	return &Request{ID: uuid.New()}
}

// State returns the request's current lifecycle state.
func (r *Request) State() RequestState {
	return r.state
}

// Resolve stores the outcome of the read and marks the request done or
// failed. The stored error is propagated unchanged by Collect; nothing is
// swallowed or downgraded.
//
// Panics if the request was already resolved (programmer error: the
// resolved-at-most-once invariant is load-bearing for collect semantics).
func (r *Request) Resolve(count int, err error) {
	if r.state != RequestPending {
		panic(fmt.Sprintf("vfs: request %s resolved twice", r.ID))
	}

	if err != nil {
		r.state = RequestFailed
		r.err = err
		return
	}

	r.state = RequestDone
	r.count = count
}

// Collect returns the stored outcome and consumes the request.
//
// Returns:
//   - the stored byte count on success
//   - the stored error, unchanged, if the read failed
//   - ErrRequestNotResolved if the request was never resolved
//   - ErrRequestConsumed on a second collect
func (r *Request) Collect() (int, error) {
	if r.consumed {
		return 0, fmt.Errorf("request %s: %w", r.ID, ErrRequestConsumed)
	}
	if r.state == RequestPending {
		return 0, fmt.Errorf("request %s: %w", r.ID, ErrRequestNotResolved)
	}

	r.consumed = true

	if r.state == RequestFailed {
		return 0, r.err
	}
	return r.count, nil
}
