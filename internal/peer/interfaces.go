// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package peer

import "context"

// Runner defines the minimal lifecycle contract for the peer application.
type Runner interface {
	// Run starts the application and blocks until ctx is done or a worker
	// fails.
	Run(ctx context.Context) error
}
