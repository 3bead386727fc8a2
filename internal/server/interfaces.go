package server

import "context"

// Server defines the lifecycle contract for transport servers managed by
// this package.
type Server interface {
	// Run serves requests until ctx is done, then shuts down gracefully.
	// It returns an error only when serving fails.
	Run(ctx context.Context) error
}
