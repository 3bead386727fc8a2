package codec

import (
	"fmt"

	"github.com/MKhiriev/bucket-sync/models"
)

// BuildPackets splits update into one start packet followed by as many
// continuation packets as needed so that none exceeds bufferSize bytes.
//
// firstBudget is the number of bytes available for chunk entries in the
// start packet after its header; callers that embed the start packet into a
// larger message pass what is left. A negative firstBudget means the start
// packet gets the same budget as any other packet.
//
// The last packet carries models.StatusLastPacket, all others
// models.StatusMorePackets.
func BuildPackets(update models.BucketUpdate, firstBudget, bufferSize int) ([]models.Packet, error) {
	header, err := EncodeStartHeader(models.StatusMorePackets, update.ToVersion, update.ActiveBuckets)
	if err != nil {
		return nil, err
	}
	if firstBudget < 0 {
		firstBudget = bufferSize - len(header)
	}

	for _, b := range update.Buckets {
		if len(b.Data) > 0xFF || chunkHeaderSize+len(b.Data) > bufferSize-continuationHead {
			return nil, fmt.Errorf("bucket %d (%d bytes) with buffer %d: %w", b.ID, len(b.Data), bufferSize, ErrBucketTooLarge)
		}
	}

	remaining := update.Buckets
	n := fitCount(remaining, firstBudget)

	start := header
	for _, b := range remaining[:n] {
		if start, err = AppendChunk(start, b.ID, b.Data); err != nil {
			return nil, err
		}
	}
	remaining = remaining[n:]
	if len(remaining) == 0 {
		start[0] = uint8(models.StatusLastPacket)
	}

	packets := []models.Packet{{Kind: models.PacketStart, Payload: start}}

	for len(remaining) > 0 {
		n = fitCount(remaining, bufferSize-continuationHead)

		status := models.StatusMorePackets
		if n == len(remaining) {
			status = models.StatusLastPacket
		}

		next := []byte{uint8(status)}
		for _, b := range remaining[:n] {
			if next, err = AppendChunk(next, b.ID, b.Data); err != nil {
				return nil, err
			}
		}
		packets = append(packets, models.Packet{Kind: models.PacketContinuation, Payload: next})
		remaining = remaining[n:]
	}

	return packets, nil
}

func fitCount(buckets []models.Bucket, budget int) int {
	count := 0
	for _, b := range buckets {
		size := chunkHeaderSize + len(b.Data)
		if size > budget {
			break
		}
		budget -= size
		count++
	}
	return count
}
