package http

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/bucket-sync/internal/bucketsync"
	"github.com/MKhiriev/bucket-sync/internal/codec"
	"github.com/MKhiriev/bucket-sync/internal/link"
	"github.com/MKhiriev/bucket-sync/internal/store"
	"github.com/MKhiriev/bucket-sync/internal/workers"
	"github.com/MKhiriev/bucket-sync/models"
)

func TestReceivePacket_PassesKindAndPayload(t *testing.T) {
	peer := &fakePeerService{}
	router := newTestRouter(t, peer)

	rr := serve(router, http.MethodPost, "/api/packets/start", "\x01\x00\x07\x00")
	require.Equal(t, http.StatusNoContent, rr.Code)
	rr = serve(router, http.MethodPost, "/api/packets/next", "\x01\x03\x01\xaa")
	require.Equal(t, http.StatusNoContent, rr.Code)

	assert.Equal(t, []models.Packet{
		{Kind: models.PacketStart, Payload: []byte{0x01, 0x00, 0x07, 0x00}},
		{Kind: models.PacketContinuation, Payload: []byte{0x01, 0x03, 0x01, 0xaa}},
	}, peer.packets)
}

func TestReceivePacket_EmptyBody(t *testing.T) {
	peer := &fakePeerService{}
	rr := serve(newTestRouter(t, peer), http.MethodPost, "/api/packets/start", "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, peer.packets)
}

func TestReceivePacket_BodyTooLarge(t *testing.T) {
	peer := &fakePeerService{}
	rr := serve(newTestRouter(t, peer), http.MethodPost, "/api/packets/next", strings.Repeat("x", link.MaxInboxSize+1))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Empty(t, peer.packets)
}

func TestReceivePacket_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"malformed", fmt.Errorf("%w: %w", bucketsync.ErrMalformedPacket, codec.ErrTooManyBuckets), http.StatusBadRequest},
		{"continuation while idle", bucketsync.ErrNotSyncing, http.StatusConflict},
		{"storage full", fmt.Errorf("%w: bucket 3: %w", bucketsync.ErrStorage, store.ErrStorageFull), http.StatusInsufficientStorage},
		{"storage query", fmt.Errorf("%w: %w", bucketsync.ErrStorage, store.ErrExecutingQuery), http.StatusInsufficientStorage},
		{"above inbox size", fmt.Errorf("%w: 300 > 256", link.ErrPacketTooLarge), http.StatusRequestEntityTooLarge},
		{"loop stopped", workers.ErrLoopStopped, http.StatusServiceUnavailable},
		{"anything else", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			peer := &fakePeerService{packetErr: tt.err}
			rr := serve(newTestRouter(t, peer), http.MethodPost, "/api/packets/start", "\x00")
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}
