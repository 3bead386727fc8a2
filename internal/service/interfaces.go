package service

import (
	"context"

	"github.com/MKhiriev/bucket-sync/models"
)

// PeerService is the entry point into a running peer. Every method is safe
// for concurrent use; calls are serialized onto the peer's event loop.
type PeerService interface {
	// ReceivePacket hands one packet from the companion to the sync
	// protocol.
	ReceivePacket(ctx context.Context, pkt models.Packet) error

	// ConnectionChanged reports transport connectivity.
	ConnectionChanged(ctx context.Context, connected bool)

	// ReportSendOutcome applies the outcome of a send that completed out of
	// band.
	ReportSendOutcome(ctx context.Context, kind models.SendErrorKind) error

	// RequestAutoClose closes the UI now, or once the running sync ends.
	RequestAutoClose(ctx context.Context) error

	// SendHello tells the companion which version this peer holds.
	SendHello(ctx context.Context) error

	// Status returns a snapshot of the peer.
	Status(ctx context.Context) (models.PeerStatus, error)

	// Bucket returns the content of an active bucket. ok is false when the
	// bucket is not active or holds no data.
	Bucket(ctx context.Context, id uint8) (data []byte, ok bool, err error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.VersionInfo
}
