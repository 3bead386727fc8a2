// Package workers provides the long-running pieces of the peer: a
// single-consumer event loop that serializes every call into the sync
// subsystem, and a Workers aggregate that runs several workers until the
// first one fails or the context ends.
package workers

import (
	"context"
	"time"
)

// Worker is the interface that must be implemented by any background worker.
// Run blocks until ctx is done or the worker fails.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// Timer is a pending delayed call.
type Timer interface {
	// Stop prevents the call from running and reports whether it was still
	// pending.
	Stop() bool
}

// Scheduler runs fn after d on the event loop.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}
