package codec

import (
	"fmt"

	"github.com/MKhiriev/bucket-sync/models"
)

const helloSize = 6

// AppendChunk appends one chunk entry to dst.
func AppendChunk(dst []byte, id uint8, payload []byte) ([]byte, error) {
	if len(payload) > 0xFF {
		return dst, fmt.Errorf("bucket %d has %d bytes: %w", id, len(payload), ErrBucketTooLarge)
	}
	dst = append(dst, id, uint8(len(payload)))
	return append(dst, payload...), nil
}

// EncodeStartHeader writes the fixed part of a start packet.
func EncodeStartHeader(status models.SyncStatus, nextVersion uint16, buckets []models.BucketMetadata) ([]byte, error) {
	if len(buckets) > models.MaxActiveBuckets {
		return nil, fmt.Errorf("%d active buckets: %w", len(buckets), ErrTooManyBuckets)
	}

	out := make([]byte, 0, startHeaderSize+len(buckets)*bucketPairSize)
	out = append(out, uint8(status))
	out = append(out, Uint16Bytes(nextVersion)...)
	out = append(out, uint8(len(buckets)))
	for _, b := range buckets {
		out = append(out, b.ID, b.Flags)
	}
	return out, nil
}

// EncodeStart builds a complete start packet.
func EncodeStart(status models.SyncStatus, nextVersion uint16, buckets []models.BucketMetadata, chunks ...models.ChunkEntry) ([]byte, error) {
	out, err := EncodeStartHeader(status, nextVersion, buckets)
	if err != nil {
		return nil, err
	}
	for _, c := range chunks {
		if out, err = AppendChunk(out, c.ID, c.Payload); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodeUpToDate builds the start packet that tells the peer nothing changed.
func EncodeUpToDate() []byte {
	return []byte{uint8(models.StatusUpToDate)}
}

// EncodeContinuation builds a continuation packet.
func EncodeContinuation(status models.SyncStatus, chunks ...models.ChunkEntry) ([]byte, error) {
	if status > models.StatusLastPacket {
		return nil, fmt.Errorf("continuation status %d: %w", status, ErrInvalidStatus)
	}

	out := []byte{uint8(status)}
	var err error
	for _, c := range chunks {
		if out, err = AppendChunk(out, c.ID, c.Payload); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodeHello encodes a hello message as three big-endian uint16 fields.
func EncodeHello(h models.Hello) []byte {
	out := make([]byte, 0, helloSize)
	out = append(out, Uint16Bytes(h.ProtocolVersion)...)
	out = append(out, Uint16Bytes(h.SyncedVersion)...)
	return append(out, Uint16Bytes(h.InboxSize)...)
}

// DecodeHello is the inverse of EncodeHello.
func DecodeHello(buf []byte) (models.Hello, error) {
	if len(buf) != helloSize {
		return models.Hello{}, fmt.Errorf("hello needs %d bytes, got %d: %w", helloSize, len(buf), ErrMalformedPacket)
	}

	var h models.Hello
	h.ProtocolVersion, _ = ReadUint16(buf, 0)
	h.SyncedVersion, _ = ReadUint16(buf, 2)
	h.InboxSize, _ = ReadUint16(buf, 4)
	return h, nil
}
