// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transports between a bucket-sync peer and its
// companion.
//
// [CompanionAdapter] carries peer → companion messages (the hello that asks
// for a delta). It ships as an HTTP/REST implementation
// ([NewHTTPCompanionAdapter]) and a NATS implementation ([NewNATSTransport])
// that also delivers companion → peer packets from the bus.
//
// [PeerAPI] is the other direction over HTTP, used by the companion tool to
// push packets into a peer ([NewPeerClient]).
//
// Send failures are reported as *models.SendError so the link layer can tell
// a busy companion from an unreachable one.
package adapter

import (
	"context"

	"github.com/MKhiriev/bucket-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// CompanionAdapter delivers peer → companion messages.
type CompanionAdapter interface {
	// Send delivers one message. A failure is returned as *models.SendError
	// (possibly wrapped) whose Kind describes what went wrong.
	Send(ctx context.Context, data []byte) error
}

// PacketSink receives what a bus transport picks up for the peer.
type PacketSink interface {
	// ReceivePacket hands one whole packet to the peer.
	ReceivePacket(ctx context.Context, pkt models.Packet) error

	// ConnectionChanged reports the state of the underlying connection.
	ConnectionChanged(ctx context.Context, connected bool)
}

// PeerAPI is the HTTP API of a running peer as seen by a companion.
type PeerAPI interface {
	// SendPacket pushes one packet to the route matching pkt.Kind.
	SendPacket(ctx context.Context, pkt models.Packet) error

	// Status fetches the peer status snapshot.
	Status(ctx context.Context) (models.PeerStatus, error)

	// Bucket fetches the raw content of one active bucket. A missing bucket
	// yields [ErrNotFound].
	Bucket(ctx context.Context, id uint8) ([]byte, error)

	// SetConnection reports connectivity to the peer out of band.
	SetConnection(ctx context.Context, connected bool) error

	// RequestAutoClose asks the peer to close its UI once syncing is done.
	RequestAutoClose(ctx context.Context) error
}
