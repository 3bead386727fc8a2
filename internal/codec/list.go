package codec

import (
	"fmt"

	"github.com/MKhiriev/bucket-sync/models"
)

// EncodeBucketList encodes the persisted form of an active bucket list:
// a count byte followed by one (id, flags) pair per bucket.
func EncodeBucketList(list models.BucketList) ([]byte, error) {
	if len(list) > models.MaxActiveBuckets {
		return nil, fmt.Errorf("encode %d buckets: %w", len(list), ErrTooManyBuckets)
	}

	buf := make([]byte, 0, 1+len(list)*bucketPairSize)
	buf = append(buf, byte(len(list)))
	for _, b := range list {
		buf = append(buf, b.ID, b.Flags)
	}
	return buf, nil
}

// DecodeBucketList is the inverse of EncodeBucketList. Trailing bytes after
// the announced pairs are ignored.
func DecodeBucketList(buf []byte) (models.BucketList, error) {
	if len(buf) < 1 {
		return nil, fmt.Errorf("bucket list is empty: %w", ErrShortBuffer)
	}

	count := int(buf[0])
	if count > models.MaxActiveBuckets {
		return nil, fmt.Errorf("bucket list holds %d buckets: %w", count, ErrTooManyBuckets)
	}
	if len(buf) < 1+count*bucketPairSize {
		return nil, fmt.Errorf("bucket list needs %d bytes, got %d: %w", 1+count*bucketPairSize, len(buf), ErrShortBuffer)
	}

	list := make(models.BucketList, 0, count)
	for i := 0; i < count; i++ {
		pos := 1 + i*bucketPairSize
		meta := models.BucketMetadata{ID: buf[pos], Flags: buf[pos+1]}
		if list.Contains(meta.ID) {
			return nil, fmt.Errorf("bucket %d stored twice: %w", meta.ID, ErrDuplicateBucketID)
		}
		list = append(list, meta)
	}
	return list, nil
}
