// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// PersistentStore is the key/value blob storage of the peer. Values are
// bounded by a per-key capacity; backends may additionally enforce a total
// quota and fail writes with ErrStorageFull.
type PersistentStore interface {
	// Exists reports whether a value is stored under key.
	Exists(ctx context.Context, key Key) (bool, error)

	// Read returns at most maxLen bytes stored under key, or ErrNotFound.
	Read(ctx context.Context, key Key, maxLen int) ([]byte, error)

	// Write replaces the value under key.
	Write(ctx context.Context, key Key, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key Key) error

	// SizeOf returns the size of the value under key, 0 when absent.
	SizeOf(ctx context.Context, key Key) (int, error)
}
