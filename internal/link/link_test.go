package link

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/bucket-sync/internal/notify"
	"github.com/MKhiriev/bucket-sync/internal/workers"
	"github.com/MKhiriev/bucket-sync/models"
)

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeScheduler records timers and fires them on demand.
type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) workers.Timer {
	t := &fakeTimer{delay: d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) fireAll() {
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			t.fn()
		}
	}
}

type stubSender struct {
	err  error
	sent [][]byte
}

func (s *stubSender) Send(_ context.Context, data []byte) error {
	s.sent = append(s.sent, data)
	return s.err
}

type stubHandler struct {
	packets []models.Packet
	err     error
}

func (h *stubHandler) HandlePacket(_ context.Context, pkt models.Packet) error {
	h.packets = append(h.packets, pkt)
	return h.err
}

type fixture struct {
	link      *Link
	sender    *stubSender
	handler   *stubHandler
	scheduler *fakeScheduler
	notifier  *notify.Notifier
	events    []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		sender:    &stubSender{},
		handler:   &stubHandler{},
		scheduler: &fakeScheduler{},
		notifier:  notify.New(),
	}
	f.notifier.SetConnectionChanged(func(c bool) { f.events = append(f.events, fmt.Sprintf("connected %t", c)) })
	f.notifier.SetSendingNowChanged(func(s bool) { f.events = append(f.events, fmt.Sprintf("sending %t", s)) })
	f.notifier.SetSendingError(func() { f.events = append(f.events, "send error") })
	f.notifier.SetReconnectRequired(func() { f.events = append(f.events, "reconnect") })
	f.link = New(f.sender, f.handler, f.notifier, f.scheduler, 0, 0)
	return f
}

func (f *fixture) registerFinished(name string) {
	f.notifier.RegisterSendFinished(func(ok bool) { f.events = append(f.events, fmt.Sprintf("%s finished %t", name, ok)) })
}

func TestLink_Defaults(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.link.Connected())
	assert.False(t, f.link.Sending())
	assert.False(t, f.link.SendErrorSeen())
	assert.Equal(t, MaxInboxSize, f.link.InboxSize())

	capped := New(f.sender, f.handler, f.notifier, f.scheduler, 0, 10000)
	assert.Equal(t, MaxInboxSize, capped.InboxSize())
	small := New(f.sender, f.handler, f.notifier, f.scheduler, 0, 512)
	assert.Equal(t, 512, small.InboxSize())
}

func TestLink_SendSuccess(t *testing.T) {
	f := newFixture(t)
	f.registerFinished("a")
	f.registerFinished("b")

	require.NoError(t, f.link.Send(context.Background(), []byte{1, 2}))

	assert.Equal(t, [][]byte{{1, 2}}, f.sender.sent)
	assert.Equal(t, []string{"sending true", "sending false", "a finished true", "b finished true"}, f.events)
	assert.False(t, f.link.Sending())
	assert.False(t, f.link.SendErrorSeen())
	assert.Zero(t, f.notifier.PendingSendFinished())
}

func TestLink_SendFailureIsSticky(t *testing.T) {
	f := newFixture(t)
	f.sender.err = &models.SendError{Kind: models.SendBusy}
	f.registerFinished("a")

	err := f.link.Send(context.Background(), []byte{1})

	assert.Error(t, err)
	assert.Equal(t, []string{"sending true", "sending false", "a finished false", "send error"}, f.events)
	assert.True(t, f.link.SendErrorSeen())
	assert.True(t, f.link.Connected())

	f.sender.err = nil
	require.NoError(t, f.link.Send(context.Background(), []byte{1}))
	assert.True(t, f.link.SendErrorSeen(), "flag survives later successes")
}

func TestLink_AllSendFailedKinds(t *testing.T) {
	kinds := []models.SendErrorKind{
		models.SendBusy, models.SendRejected, models.SendNotRunning, models.SendInvalidArgs,
		models.SendBufferOverflow, models.SendAlreadyReleased, models.SendCallbackConflict,
		models.SendNotRegistered, models.SendOutOfMemory, models.SendClosed,
		models.SendInternalError, models.SendInvalidState,
	}
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			f := newFixture(t)
			f.link.OnSendOutcome(context.Background(), kind)
			assert.True(t, f.link.SendErrorSeen())
			assert.True(t, f.link.Connected())
		})
	}
}

func TestLink_LinkDownOutcome(t *testing.T) {
	for _, kind := range []models.SendErrorKind{models.SendNotConnected, models.SendTimeout} {
		t.Run(kind.String(), func(t *testing.T) {
			f := newFixture(t)
			f.registerFinished("a")

			f.link.OnSendOutcome(context.Background(), kind)

			assert.Equal(t, []string{"sending false", "a finished false", "connected false"}, f.events)
			assert.False(t, f.link.Connected())
			assert.False(t, f.link.SendErrorSeen())
		})
	}
}

func TestLink_PlainErrorCountsAsInternal(t *testing.T) {
	assert.Equal(t, models.SendInternalError, KindOf(errors.New("boom")))
	assert.Equal(t, models.SendTimeout, KindOf(fmt.Errorf("wrapped: %w", &models.SendError{Kind: models.SendTimeout})))
	assert.Equal(t, models.SendOK, KindOf(nil))
}

func TestLink_SendWhileSending(t *testing.T) {
	f := newFixture(t)
	f.link.sending = true

	assert.ErrorIs(t, f.link.Send(context.Background(), []byte{1}), ErrSendInProgress)
	assert.Empty(t, f.sender.sent)
}

func TestLink_ReconnectIsDelayed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.link.OnConnectionChanged(ctx, false)
	f.events = nil

	f.link.OnConnectionChanged(ctx, true)

	require.Len(t, f.scheduler.timers, 1)
	assert.Equal(t, DefaultReconnectDelay, f.scheduler.timers[0].delay)
	assert.True(t, f.link.ReconnectPending())
	assert.Equal(t, []string{"connected true"}, f.events, "re-sync is not requested immediately")

	f.scheduler.fireAll()
	assert.Equal(t, []string{"connected true", "reconnect"}, f.events)
	assert.False(t, f.link.ReconnectPending())
}

func TestLink_ReconnectCancelledByDisconnect(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.link.OnConnectionChanged(ctx, false)
	f.link.OnConnectionChanged(ctx, true)

	f.link.OnConnectionChanged(ctx, false)
	assert.True(t, f.scheduler.timers[0].stopped)
	assert.False(t, f.link.ReconnectPending())

	f.scheduler.fireAll()
	assert.NotContains(t, f.events, "reconnect")
}

func TestLink_ConnectedWhileConnectedDoesNotSchedule(t *testing.T) {
	f := newFixture(t)

	f.link.OnConnectionChanged(context.Background(), true)

	assert.Empty(t, f.scheduler.timers)
	assert.Equal(t, []string{"connected true"}, f.events)
}

func TestLink_PacketImpliesConnection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.link.OnConnectionChanged(ctx, false)
	f.events = nil

	pkt := models.Packet{Kind: models.PacketStart, Payload: []byte{2}}
	require.NoError(t, f.link.OnPacketReceived(ctx, pkt))

	assert.True(t, f.link.Connected())
	assert.Equal(t, []string{"connected true"}, f.events)
	assert.Equal(t, []models.Packet{pkt}, f.handler.packets)
	assert.Empty(t, f.scheduler.timers, "an implicit connect does not schedule a re-sync")
}

func TestLink_PacketTooLarge(t *testing.T) {
	f := newFixture(t)
	small := New(f.sender, f.handler, f.notifier, f.scheduler, 0, 4)

	err := small.OnPacketReceived(context.Background(), models.Packet{Kind: models.PacketStart, Payload: make([]byte, 5)})

	assert.ErrorIs(t, err, ErrPacketTooLarge)
	assert.Empty(t, f.handler.packets)
}

func TestLink_HandlerErrorIsReturned(t *testing.T) {
	f := newFixture(t)
	f.handler.err = errors.New("rejected")

	err := f.link.OnPacketReceived(context.Background(), models.Packet{Kind: models.PacketContinuation, Payload: []byte{1}})
	assert.ErrorIs(t, err, f.handler.err)
}
