package codec

import (
	"fmt"
	"io"

	"github.com/MKhiriev/bucket-sync/models"
)

const (
	startHeaderSize  = 4
	bucketPairSize   = 2
	chunkHeaderSize  = 2
	continuationHead = 1
)

// DecodeStartHeader decodes the status, next version and active bucket list
// of a start packet. For a status of models.StatusUpToDate nothing past the
// status byte is inspected.
func DecodeStartHeader(packet []byte) (models.StartHeader, error) {
	if len(packet) < 1 {
		return models.StartHeader{}, fmt.Errorf("start packet is empty: %w", ErrMalformedPacket)
	}

	status := models.SyncStatus(packet[0])
	if status > models.StatusUpToDate {
		return models.StartHeader{}, fmt.Errorf("start packet status %d: %w", packet[0], ErrInvalidStatus)
	}
	if status == models.StatusUpToDate {
		return models.StartHeader{Status: status, ChunkOffset: len(packet)}, nil
	}

	if len(packet) < startHeaderSize {
		return models.StartHeader{}, fmt.Errorf("start header needs %d bytes, got %d: %w",
			startHeaderSize, len(packet), ErrMalformedPacket)
	}

	nextVersion, err := ReadUint16(packet, 1)
	if err != nil {
		return models.StartHeader{}, fmt.Errorf("decode next version: %w", err)
	}

	count := int(packet[3])
	if count > models.MaxActiveBuckets {
		return models.StartHeader{}, fmt.Errorf("start packet announces %d buckets: %w", count, ErrTooManyBuckets)
	}

	chunkOffset := startHeaderSize + count*bucketPairSize
	if len(packet) < chunkOffset {
		return models.StartHeader{}, fmt.Errorf("bucket list needs %d bytes, got %d: %w",
			chunkOffset, len(packet), ErrMalformedPacket)
	}

	buckets := make(models.BucketList, 0, count)
	for i := 0; i < count; i++ {
		pos := startHeaderSize + i*bucketPairSize
		meta := models.BucketMetadata{ID: packet[pos], Flags: packet[pos+1]}
		if buckets.Contains(meta.ID) {
			return models.StartHeader{}, fmt.Errorf("bucket %d listed twice: %w", meta.ID, ErrDuplicateBucketID)
		}
		buckets = append(buckets, meta)
	}

	return models.StartHeader{
		Status:      status,
		NextVersion: nextVersion,
		Buckets:     buckets,
		ChunkOffset: chunkOffset,
	}, nil
}

// DecodeContinuationStatus returns the status byte of a continuation packet.
func DecodeContinuationStatus(packet []byte) (models.SyncStatus, error) {
	if len(packet) < continuationHead {
		return 0, fmt.Errorf("continuation packet is empty: %w", ErrMalformedPacket)
	}

	status := models.SyncStatus(packet[0])
	if status > models.StatusLastPacket {
		return 0, fmt.Errorf("continuation packet status %d: %w", packet[0], ErrInvalidStatus)
	}
	return status, nil
}

// ContinuationChunkOffset is where chunk entries begin in a continuation
// packet.
const ContinuationChunkOffset = continuationHead

// ChunkReader walks the chunk entries of a packet one at a time, so callers
// can act on each entry before the next one is decoded.
type ChunkReader struct {
	buf []byte
	pos int
}

// NewChunkReader returns a reader over the chunk region of packet starting at
// offset.
func NewChunkReader(packet []byte, offset int) *ChunkReader {
	if offset > len(packet) {
		offset = len(packet)
	}
	return &ChunkReader{buf: packet, pos: offset}
}

// Next returns the next chunk entry. It returns io.EOF once the packet is
// exhausted and ErrTruncatedChunk if the remaining bytes do not hold a whole
// entry. The returned payload aliases the packet buffer.
func (r *ChunkReader) Next() (models.ChunkEntry, error) {
	if r.pos >= len(r.buf) {
		return models.ChunkEntry{}, io.EOF
	}
	if r.pos+chunkHeaderSize > len(r.buf) {
		return models.ChunkEntry{}, fmt.Errorf("chunk header at %d: %w", r.pos, ErrTruncatedChunk)
	}

	id := r.buf[r.pos]
	size := int(r.buf[r.pos+1])
	start := r.pos + chunkHeaderSize
	end := start + size
	if end > len(r.buf) {
		return models.ChunkEntry{}, fmt.Errorf("chunk for bucket %d needs %d bytes, %d left: %w",
			id, size, len(r.buf)-start, ErrTruncatedChunk)
	}

	r.pos = end
	return models.ChunkEntry{ID: id, Payload: r.buf[start:end]}, nil
}

// Offset is the position of the next undecoded byte.
func (r *ChunkReader) Offset() int {
	return r.pos
}

// DecodeChunks decodes every chunk entry of packet from offset on.
func DecodeChunks(packet []byte, offset int) ([]models.ChunkEntry, error) {
	r := NewChunkReader(packet, offset)

	var entries []models.ChunkEntry
	for {
		entry, err := r.Next()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}
}
