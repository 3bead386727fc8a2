package bucketsync

import "errors"

var (
	// ErrMalformedPacket wraps every codec error for a packet that could
	// not be decoded. For start packets nothing has been changed yet.
	ErrMalformedPacket = errors.New("malformed sync packet")

	// ErrNotSyncing is returned for a continuation packet while Idle.
	ErrNotSyncing = errors.New("continuation packet without a running sync")

	// ErrStorage is returned when a storage write aborted the packet. The
	// session stays in Syncing.
	ErrStorage = errors.New("storage failure while applying packet")

	// ErrUnknownPacketKind is returned by HandlePacket for a packet that is
	// neither a start nor a continuation packet.
	ErrUnknownPacketKind = errors.New("unknown packet kind")
)
