package registry

import "errors"

var (
	// ErrPersistList is returned when the active bucket list cannot be
	// written. The in-memory list has already been replaced at that point.
	ErrPersistList = errors.New("failed to persist bucket list")

	// ErrPersistVersion is returned when a commit cannot write the synced
	// version or the protocol marker.
	ErrPersistVersion = errors.New("failed to persist synced version")

	// ErrInvalidate is returned when stale data cannot be removed at load.
	ErrInvalidate = errors.New("failed to invalidate stale buckets")
)
