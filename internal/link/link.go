// Package link tracks the state of the channel to the companion: whether it
// is connected, whether a send is in flight, and whether a send ever failed.
// It turns transport outcomes into notifications and schedules the delayed
// re-sync request after the channel comes back.
package link

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/internal/workers"
	"github.com/MKhiriev/bucket-sync/models"
)

// MaxInboxSize caps the advertised inbox size.
const MaxInboxSize = 4096

// DefaultReconnectDelay is how long to wait after a reconnect before asking
// the companion for a re-sync. Packets sent right after the channel comes
// back tend to be dropped.
const DefaultReconnectDelay = time.Second

var (
	// ErrSendInProgress is returned by Send while another send is in flight.
	ErrSendInProgress = errors.New("another send is in progress")

	// ErrPacketTooLarge is returned for packets bigger than the inbox.
	ErrPacketTooLarge = errors.New("packet exceeds inbox size")
)

// Sender delivers one message to the companion. A failed send returns a
// *models.SendError; any other error counts as an internal error.
type Sender interface {
	Send(ctx context.Context, data []byte) error
}

// PacketHandler consumes received packets.
type PacketHandler interface {
	HandlePacket(ctx context.Context, pkt models.Packet) error
}

// Events receives link notifications.
type Events interface {
	FireSendFinished(ok bool)
	FireSendingError()
	FireConnectionChanged(connected bool)
	FireSendingNowChanged(sending bool)
	FireReconnectRequired()
}

// Link is not safe for concurrent use; it lives on the event loop.
type Link struct {
	sender    Sender
	handler   PacketHandler
	events    Events
	scheduler workers.Scheduler
	delay     time.Duration
	inboxSize int

	connected bool
	sending   bool
	sendError bool
	reconnect workers.Timer
}

// New returns a link that starts out connected. inboxSize is capped at
// MaxInboxSize; a zero delay means DefaultReconnectDelay.
func New(sender Sender, handler PacketHandler, events Events, scheduler workers.Scheduler, delay time.Duration, inboxSize int) *Link {
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}
	if inboxSize <= 0 || inboxSize > MaxInboxSize {
		inboxSize = MaxInboxSize
	}
	return &Link{
		sender:    sender,
		handler:   handler,
		events:    events,
		scheduler: scheduler,
		delay:     delay,
		inboxSize: inboxSize,
		connected: true,
	}
}

// Send hands data to the sender and reports the outcome through
// OnSendOutcome. The returned error is the sender's.
func (l *Link) Send(ctx context.Context, data []byte) error {
	if l.sending {
		return ErrSendInProgress
	}

	l.sending = true
	l.events.FireSendingNowChanged(true)

	err := l.sender.Send(ctx, data)
	l.OnSendOutcome(ctx, KindOf(err))
	return err
}

// OnSendOutcome applies the outcome of a send. Success and failure both
// drain the send-finished batch.
func (l *Link) OnSendOutcome(ctx context.Context, kind models.SendErrorKind) {
	log := logger.FromContext(ctx)

	l.sending = false
	l.events.FireSendingNowChanged(false)

	switch kind.Classify() {
	case models.ClassSuccess:
		l.events.FireSendFinished(true)
	case models.ClassSendFailed:
		log.Warn().Str("func", "Link.OnSendOutcome").Stringer("outcome", kind).Msg("send failed")
		l.events.FireSendFinished(false)
		l.sendError = true
		l.events.FireSendingError()
	case models.ClassLinkDown:
		log.Warn().Str("func", "Link.OnSendOutcome").Stringer("outcome", kind).Msg("link down")
		l.events.FireSendFinished(false)
		l.setConnected(ctx, false)
	}
}

// OnConnectionChanged handles a connectivity event from the transport.
func (l *Link) OnConnectionChanged(ctx context.Context, connected bool) {
	l.setConnected(ctx, connected)
}

// OnPacketReceived forwards a packet to the handler. Receiving anything
// proves the channel is up.
func (l *Link) OnPacketReceived(ctx context.Context, pkt models.Packet) error {
	if !l.connected {
		l.connected = true
		l.events.FireConnectionChanged(true)
	}

	if len(pkt.Payload) > l.inboxSize {
		return fmt.Errorf("%w: %d > %d", ErrPacketTooLarge, len(pkt.Payload), l.inboxSize)
	}
	return l.handler.HandlePacket(ctx, pkt)
}

func (l *Link) setConnected(ctx context.Context, connected bool) {
	log := logger.FromContext(ctx)

	switch {
	case connected && !l.connected:
		l.cancelReconnect()
		log.Info().Str("func", "Link.setConnected").Dur("delay", l.delay).Msg("link restored, scheduling re-sync")
		l.reconnect = l.scheduler.AfterFunc(l.delay, func() {
			l.reconnect = nil
			l.events.FireReconnectRequired()
		})
	case !connected:
		if l.cancelReconnect() {
			log.Info().Str("func", "Link.setConnected").Msg("link lost, re-sync cancelled")
		}
	}

	l.connected = connected
	l.events.FireConnectionChanged(connected)
}

func (l *Link) cancelReconnect() bool {
	if l.reconnect == nil {
		return false
	}
	stopped := l.reconnect.Stop()
	l.reconnect = nil
	return stopped
}

// Connected reports the last known connectivity.
func (l *Link) Connected() bool { return l.connected }

// Sending reports whether a send is in flight.
func (l *Link) Sending() bool { return l.sending }

// SendErrorSeen reports whether any send failed while the link was up.
func (l *Link) SendErrorSeen() bool { return l.sendError }

// ReconnectPending reports whether a re-sync request is scheduled.
func (l *Link) ReconnectPending() bool { return l.reconnect != nil }

// InboxSize is the largest packet this peer accepts.
func (l *Link) InboxSize() int { return l.inboxSize }

// KindOf extracts the send outcome from err.
func KindOf(err error) models.SendErrorKind {
	if err == nil {
		return models.SendOK
	}
	var sendErr *models.SendError
	if errors.As(err, &sendErr) {
		return sendErr.Kind
	}
	return models.SendInternalError
}
