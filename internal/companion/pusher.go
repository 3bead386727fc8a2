package companion

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/MKhiriev/bucket-sync/internal/adapter"
	"github.com/MKhiriev/bucket-sync/internal/codec"
	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/internal/validators"
	"github.com/MKhiriev/bucket-sync/models"
)

// Pusher sends bucket updates to one peer.
type Pusher struct {
	peer       adapter.PeerAPI
	bufferSize int
	logger     *logger.Logger
}

func NewPusher(peer adapter.PeerAPI, bufferSize int, log *logger.Logger) (*Pusher, error) {
	if bufferSize <= 0 {
		return nil, ErrBufferTooSmall
	}
	return &Pusher{peer: peer, bufferSize: bufferSize, logger: log}, nil
}

// Push asks the peer for its synced version and sends what it is missing.
func (p *Pusher) Push(ctx context.Context, update models.BucketUpdate) (int, error) {
	status, err := p.peer.Status(ctx)
	if err != nil {
		return 0, fmt.Errorf("get peer status: %w", err)
	}
	return p.Sync(ctx, update, status.SyncedVersion, 0)
}

// Sync sends update to a peer that is at syncedVersion. A peer already at
// update.ToVersion gets a single up-to-date packet. inboxSize, when
// positive, further limits the packet size. Sync returns how many packets
// were delivered and stops at the first rejected one.
func (p *Pusher) Sync(ctx context.Context, update models.BucketUpdate, syncedVersion uint16, inboxSize int) (int, error) {
	log := p.logger.With().Uint16("synced_version", syncedVersion).Uint16("to_version", update.ToVersion).Logger()

	var packets []models.Packet
	if syncedVersion == update.ToVersion {
		packets = []models.Packet{{Kind: models.PacketStart, Payload: codec.EncodeUpToDate()}}
	} else {
		bufferSize := p.bufferSize
		if inboxSize > 0 && inboxSize < bufferSize {
			bufferSize = inboxSize
		}

		var err error
		if packets, err = codec.BuildPackets(update, -1, bufferSize); err != nil {
			return 0, fmt.Errorf("build packets: %w", err)
		}
	}

	for i, pkt := range packets {
		if err := p.peer.SendPacket(ctx, pkt); err != nil {
			log.Err(err).Int("packet", i).Stringer("kind", pkt.Kind).Msg("packet was not accepted")
			return i, fmt.Errorf("send packet %d of %d: %w", i+1, len(packets), err)
		}
	}

	log.Info().Int("packets", len(packets)).Msg("update delivered")
	return len(packets), nil
}

// LoadUpdate reads a JSON encoded models.BucketUpdate from path and
// validates it. Bucket data is base64 as usual for []byte in JSON.
func LoadUpdate(ctx context.Context, path string) (models.BucketUpdate, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.BucketUpdate{}, fmt.Errorf("read update file: %w", err)
	}

	var update models.BucketUpdate
	if err = json.Unmarshal(raw, &update); err != nil {
		return models.BucketUpdate{}, fmt.Errorf("decode update file: %w", err)
	}
	if err = validators.NewBucketUpdateValidator(0).Validate(ctx, update); err != nil {
		return models.BucketUpdate{}, fmt.Errorf("invalid update file: %w", err)
	}
	return update, nil
}
