// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

// Key addresses one value in a PersistentStore.
type Key uint32

// Reserved keys for sync bookkeeping. Bucket content lives at
// BucketKey(id), which never collides with these.
const (
	KeyBucketList      Key = 1000
	KeySyncVersion     Key = 1001
	KeyProtocolVersion Key = 1002

	bucketKeyBase Key = 2000
)

// MaxValueSize is the per-key capacity of the peer's storage.
const MaxValueSize = 256

// BucketKey returns the key under which the content of bucket id is stored.
func BucketKey(id uint8) Key {
	return bucketKeyBase + Key(id)
}
