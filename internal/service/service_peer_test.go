package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/bucket-sync/internal/bucketsync"
	"github.com/MKhiriev/bucket-sync/internal/codec"
	"github.com/MKhiriev/bucket-sync/internal/config"
	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/internal/notify"
	"github.com/MKhiriev/bucket-sync/internal/store"
	"github.com/MKhiriev/bucket-sync/models"
)

// chanSender forwards every sent message to a channel.
type chanSender struct {
	sent chan []byte
	err  error
}

func newChanSender() *chanSender {
	return &chanSender{sent: make(chan []byte, 16)}
}

func (s *chanSender) Send(_ context.Context, data []byte) error {
	s.sent <- data
	return s.err
}

func (s *chanSender) next(t *testing.T) models.Hello {
	t.Helper()
	select {
	case data := <-s.sent:
		hello, err := codec.DecodeHello(data)
		require.NoError(t, err)
		return hello
	case <-time.After(2 * time.Second):
		t.Fatal("no message sent")
		return models.Hello{}
	}
}

type countingUI struct {
	mu     sync.Mutex
	closed int
}

func (u *countingUI) CloseAll() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.closed++
}

func (u *countingUI) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.closed
}

func testPeerConfig() config.PeerConfig {
	return *config.NewPeerConfig(&config.StructuredConfig{
		Workers: config.Workers{ReconnectDelay: 10 * time.Millisecond},
		Adapter: config.Adapter{CompanionURL: "http://companion"},
	})
}

type peerFixture struct {
	peer   *Peer
	sender *chanSender
	ui     *countingUI
	store  *store.MemoryStore
}

func startPeer(t *testing.T, st *store.MemoryStore, cfg config.PeerConfig) *peerFixture {
	t.Helper()
	f := &peerFixture{sender: newChanSender(), ui: &countingUI{}, store: st}

	p, err := NewPeer(context.Background(), PeerDeps{
		Store:    st,
		Sender:   f.sender,
		Notifier: notify.New(),
		UI:       f.ui,
	}, cfg, logger.Nop())
	require.NoError(t, err)
	f.peer = p

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return f
}

func startPacket(t *testing.T, status models.SyncStatus, version uint16, buckets []models.BucketMetadata, chunks ...models.ChunkEntry) models.Packet {
	t.Helper()
	payload, err := codec.EncodeStart(status, version, buckets, chunks...)
	require.NoError(t, err)
	return models.Packet{Kind: models.PacketStart, Payload: payload}
}

func TestNewPeer_RequiresStoreAndSender(t *testing.T) {
	_, err := NewPeer(context.Background(), PeerDeps{Sender: newChanSender()}, testPeerConfig(), logger.Nop())
	assert.ErrorIs(t, err, ErrNoStore)

	_, err = NewPeer(context.Background(), PeerDeps{Store: store.NewMemoryStore(0, 0)}, testPeerConfig(), logger.Nop())
	assert.ErrorIs(t, err, ErrNoSender)
}

func TestPeer_HelloOnStartup(t *testing.T) {
	f := startPeer(t, store.NewMemoryStore(0, 0), testPeerConfig())

	hello := f.sender.next(t)
	assert.Equal(t, models.Hello{ProtocolVersion: models.ProtocolVersion, SyncedVersion: 0, InboxSize: 4096}, hello)
}

func TestPeer_FullSyncThenStatus(t *testing.T) {
	ctx := context.Background()
	f := startPeer(t, store.NewMemoryStore(0, 0), testPeerConfig())
	f.sender.next(t)

	buckets := []models.BucketMetadata{{ID: 3, Flags: 1}, {ID: 5, Flags: 0}}
	require.NoError(t, f.peer.ReceivePacket(ctx, startPacket(t, models.StatusMorePackets, 7, buckets, models.ChunkEntry{ID: 3, Payload: []byte{0xAA, 0xBB}})))

	status, err := f.peer.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "syncing", status.State)
	assert.True(t, status.Syncing)
	assert.Equal(t, uint16(7), status.PendingVersion)
	assert.Equal(t, uint16(0), status.SyncedVersion)

	next, err := codec.EncodeContinuation(models.StatusLastPacket, models.ChunkEntry{ID: 5, Payload: []byte{0x01}})
	require.NoError(t, err)
	require.NoError(t, f.peer.ReceivePacket(ctx, models.Packet{Kind: models.PacketContinuation, Payload: next}))

	status, err = f.peer.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "idle", status.State)
	assert.False(t, status.Syncing)
	assert.Equal(t, uint16(7), status.SyncedVersion)
	assert.True(t, status.Connected)
	assert.Equal(t, []models.BucketStatus{{ID: 3, Flags: 1, Size: 2}, {ID: 5, Size: 1}}, status.Buckets)

	data, ok, err := f.peer.Bucket(ctx, 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{0xAA, 0xBB}, data)

	_, ok, err = f.peer.Bucket(ctx, 9)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPeer_StateSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore(0, 0)

	f := startPeer(t, st, testPeerConfig())
	f.sender.next(t)
	require.NoError(t, f.peer.ReceivePacket(ctx, startPacket(t, models.StatusLastPacket, 12,
		[]models.BucketMetadata{{ID: 1}}, models.ChunkEntry{ID: 1, Payload: []byte("hi")})))

	again := startPeer(t, st, testPeerConfig())
	assert.Equal(t, uint16(12), again.sender.next(t).SyncedVersion)
}

func TestPeer_ContinuationWhileIdle(t *testing.T) {
	f := startPeer(t, store.NewMemoryStore(0, 0), testPeerConfig())

	err := f.peer.ReceivePacket(context.Background(), models.Packet{Kind: models.PacketContinuation, Payload: []byte{1}})
	assert.ErrorIs(t, err, bucketsync.ErrNotSyncing)
}

func TestPeer_ReconnectSendsHelloAgain(t *testing.T) {
	ctx := context.Background()
	f := startPeer(t, store.NewMemoryStore(0, 0), testPeerConfig())
	f.sender.next(t)

	f.peer.ConnectionChanged(ctx, false)
	f.peer.ConnectionChanged(ctx, true)

	assert.Equal(t, uint16(4096), f.sender.next(t).InboxSize)
}

func TestPeer_SendFailureIsReported(t *testing.T) {
	ctx := context.Background()
	f := startPeer(t, store.NewMemoryStore(0, 0), testPeerConfig())
	f.sender.next(t)

	require.NoError(t, f.peer.ReportSendOutcome(ctx, models.SendBusy))

	status, err := f.peer.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.SendError)
	assert.True(t, status.Connected)
}

func TestPeer_HelloFailureIsReturned(t *testing.T) {
	f := startPeer(t, store.NewMemoryStore(0, 0), testPeerConfig())
	f.sender.next(t)
	f.sender.err = &models.SendError{Kind: models.SendNotConnected}

	err := f.peer.SendHello(context.Background())
	f.sender.next(t)

	var sendErr *models.SendError
	require.True(t, errors.As(err, &sendErr))

	status, err := f.peer.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestPeer_AutoCloseWaitsForSync(t *testing.T) {
	ctx := context.Background()
	f := startPeer(t, store.NewMemoryStore(0, 0), testPeerConfig())
	f.sender.next(t)

	require.NoError(t, f.peer.ReceivePacket(ctx, startPacket(t, models.StatusMorePackets, 2, []models.BucketMetadata{{ID: 1}})))
	require.NoError(t, f.peer.RequestAutoClose(ctx))
	assert.Zero(t, f.ui.count())

	next, err := codec.EncodeContinuation(models.StatusLastPacket)
	require.NoError(t, err)
	require.NoError(t, f.peer.ReceivePacket(ctx, models.Packet{Kind: models.PacketContinuation, Payload: next}))
	assert.Equal(t, 1, f.ui.count())
}
