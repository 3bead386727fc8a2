// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors for requests rejected before reaching the service layer.
var (
	// ErrInvalidBucketID is returned for a bucket id path segment that is not
	// a number between 0 and 255.
	ErrInvalidBucketID = errors.New("invalid bucket id")

	// ErrEmptyPacket is returned for a packet request without a body.
	ErrEmptyPacket = errors.New("empty packet")

	// ErrBodyTooLarge is returned when the request body exceeds the largest
	// inbox a peer can have.
	ErrBodyTooLarge = errors.New("request body too large")
)
