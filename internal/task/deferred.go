package task

import (
	"context"

	"github.com/google/uuid"
)

// Deferred is a handle to a submitted job. It resolves exactly once, when
// the job finishes on a worker, and any number of callers may Wait on it.
type Deferred struct {
	id    uuid.UUID
	done  chan struct{}
	value any
	err   error
}

func newDeferred() *Deferred {
	return &Deferred{
		id:   uuid.New(),
		done: make(chan struct{}),
	}
}

// ID returns the job's unique identifier, used for log correlation.
func (d *Deferred) ID() uuid.UUID {
	return d.id
}

// resolve records the outcome and releases all waiters. It must be called
// exactly once, by the worker that executed the job.
func (d *Deferred) resolve(value any, err error) {
	d.value = value
	d.err = err
	close(d.done)
}

// Wait blocks until the job finishes or ctx is done. When the job finished
// first it returns the job's result; otherwise it returns ctx.Err() and the
// job keeps running to completion on its worker.
func (d *Deferred) Wait(ctx context.Context) (any, error) {
	select {
	case <-d.done:
		return d.value, d.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
