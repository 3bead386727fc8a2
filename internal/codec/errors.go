package codec

import "errors"

var (
	// ErrShortBuffer is returned when a fixed-width field runs past the end
	// of the buffer.
	ErrShortBuffer = errors.New("buffer too short")

	// ErrMalformedPacket is returned when a packet header cannot be decoded.
	ErrMalformedPacket = errors.New("malformed packet")

	// ErrInvalidStatus is returned for a status byte that is not allowed in
	// the given packet kind.
	ErrInvalidStatus = errors.New("invalid sync status")

	// ErrTooManyBuckets is returned when a start packet announces more than
	// models.MaxActiveBuckets buckets.
	ErrTooManyBuckets = errors.New("too many active buckets")

	// ErrDuplicateBucketID is returned when a start packet lists the same
	// bucket id twice.
	ErrDuplicateBucketID = errors.New("duplicate bucket id")

	// ErrTruncatedChunk is returned when a chunk entry declares more payload
	// than the packet holds.
	ErrTruncatedChunk = errors.New("truncated chunk entry")

	// ErrBucketTooLarge is returned by the packet builder when one bucket
	// cannot fit into any packet.
	ErrBucketTooLarge = errors.New("bucket does not fit into a packet")
)
