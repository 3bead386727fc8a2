package workers

import "errors"

var (
	// ErrLoopStopped is returned for work posted after the loop exited.
	ErrLoopStopped = errors.New("event loop stopped")
)
