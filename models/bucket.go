// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// MaxActiveBuckets is the upper bound on the number of buckets a peer keeps
// active at the same time.
const MaxActiveBuckets = 15

// ProtocolVersion is the wire/storage format marker persisted next to the
// synced data. Bump it whenever the packet layout or the persisted record
// layout changes; peers holding data written under another marker drop it
// and re-sync from scratch.
const ProtocolVersion uint16 = 1

// BucketMetadata identifies one bucket and carries a small flag field that is
// interpreted by higher layers only.
type BucketMetadata struct {
	ID    uint8 `json:"id"`
	Flags uint8 `json:"flags"`
}

// BucketList is the ordered set of active buckets announced by the last start
// packet. Order is transmission order; ids are unique.
type BucketList []BucketMetadata

// Find returns the metadata for id and whether it is present.
func (l BucketList) Find(id uint8) (BucketMetadata, bool) {
	for _, b := range l {
		if b.ID == id {
			return b, true
		}
	}
	return BucketMetadata{}, false
}

// Contains reports whether id is part of the list.
func (l BucketList) Contains(id uint8) bool {
	_, ok := l.Find(id)
	return ok
}

// IDs returns bucket ids in list order.
func (l BucketList) IDs() []uint8 {
	ids := make([]uint8, 0, len(l))
	for _, b := range l {
		ids = append(ids, b.ID)
	}
	return ids
}

// Clone returns a copy that does not share the backing array.
func (l BucketList) Clone() BucketList {
	if l == nil {
		return BucketList{}
	}
	out := make(BucketList, len(l))
	copy(out, l)
	return out
}

// Bucket is one bucket's full content as held by the companion.
type Bucket struct {
	ID   uint8  `json:"id"`
	Data []byte `json:"data"`
}

// BucketUpdate is what a companion transmits for one sync session: the
// version the peer ends up at, the full active list, and the buckets whose
// content changed since the peer's version.
type BucketUpdate struct {
	ToVersion     uint16           `json:"to_version"`
	ActiveBuckets []BucketMetadata `json:"active_buckets"`
	Buckets       []Bucket         `json:"buckets"`
}
