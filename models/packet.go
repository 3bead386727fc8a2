// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// SyncStatus is the leading status byte of every sync packet.
type SyncStatus uint8

const (
	// StatusMorePackets means continuation packets follow.
	StatusMorePackets SyncStatus = 0
	// StatusLastPacket means this packet completes the sync session.
	StatusLastPacket SyncStatus = 1
	// StatusUpToDate means nothing changed; only valid in start packets.
	StatusUpToDate SyncStatus = 2
)

func (s SyncStatus) String() string {
	switch s {
	case StatusMorePackets:
		return "more_packets"
	case StatusLastPacket:
		return "last_packet"
	case StatusUpToDate:
		return "up_to_date"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// PacketKind tells start packets from continuation packets. The transport
// knows which one it delivers (separate routes or subjects), the payload
// itself does not carry it.
type PacketKind uint8

const (
	PacketStart PacketKind = iota + 1
	PacketContinuation
)

func (k PacketKind) String() string {
	switch k {
	case PacketStart:
		return "start"
	case PacketContinuation:
		return "continuation"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Packet is one whole application packet as delivered by the transport.
type Packet struct {
	Kind    PacketKind
	Payload []byte
}

// StartHeader is the decoded fixed part of a start packet. ChunkOffset is the
// byte offset at which chunk entries begin.
type StartHeader struct {
	Status      SyncStatus
	NextVersion uint16
	Buckets     BucketList
	ChunkOffset int
}

// ChunkEntry is one bucket content update inside a packet.
type ChunkEntry struct {
	ID      uint8
	Payload []byte
}

// Hello is sent by the peer on startup and after reconnecting so the
// companion knows which version to compute a delta from.
type Hello struct {
	ProtocolVersion uint16
	SyncedVersion   uint16
	InboxSize       uint16
}
