package adapter

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/MKhiriev/bucket-sync/internal/config"
	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/models"
)

// Subject suffixes under the configured subject prefix.
const (
	subjectStart = ".start"
	subjectNext  = ".next"
	subjectHello = ".hello"
)

// NATSTransport moves packets over a NATS bus. Companions publish start and
// continuation packets on <subject>.start and <subject>.next; the peer
// publishes its messages on <subject>.hello.
type NATSTransport struct {
	url     string
	subject string
	timeout time.Duration

	sink   PacketSink
	conn   atomic.Pointer[nats.Conn]
	logger *logger.Logger
}

// NewNATSTransport returns a transport for adapterCfg.NATSURL. Nothing is
// dialed until Run. The transport is also the peer's sender, so the sink is
// attached afterwards with SetSink.
func NewNATSTransport(adapterCfg config.Adapter, log *logger.Logger) *NATSTransport {
	return &NATSTransport{
		url:     adapterCfg.NATSURL,
		subject: adapterCfg.NATSSubject,
		timeout: adapterCfg.RequestTimeout,
		logger:  log,
	}
}

// SetSink attaches the receiver of packets and connection events. It must be
// called before Run.
func (t *NATSTransport) SetSink(sink PacketSink) {
	t.sink = sink
}

// Run connects, subscribes to the packet subjects and blocks until ctx is
// done. NATS reconnects on its own; disconnects and reconnects are reported
// to the sink.
func (t *NATSTransport) Run(ctx context.Context) error {
	if t.sink == nil {
		return ErrNoSink
	}

	conn, err := nats.Connect(t.url,
		nats.Name("bucket-sync-peer"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			t.logger.Warn().Err(err).Str("func", "NATSTransport.Run").Msg("nats disconnected")
			t.sink.ConnectionChanged(ctx, false)
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			t.logger.Info().Str("func", "NATSTransport.Run").Str("url", c.ConnectedUrl()).Msg("nats reconnected")
			t.sink.ConnectionChanged(ctx, true)
		}),
	)
	if err != nil {
		return fmt.Errorf("connect to nats: %w", err)
	}
	t.conn.Store(conn)
	defer t.conn.Store(nil)

	subs := make([]*nats.Subscription, 0, 2)
	for _, route := range []struct {
		subject string
		kind    models.PacketKind
	}{
		{t.subject + subjectStart, models.PacketStart},
		{t.subject + subjectNext, models.PacketContinuation},
	} {
		kind := route.kind
		sub, err := conn.Subscribe(route.subject, func(msg *nats.Msg) {
			t.handleMsg(ctx, kind, msg)
		})
		if err != nil {
			conn.Close()
			return fmt.Errorf("subscribe %s: %w", route.subject, err)
		}
		subs = append(subs, sub)
	}

	t.logger.Info().Str("func", "NATSTransport.Run").Str("subject", t.subject).Msg("nats transport started")

	<-ctx.Done()

	for _, sub := range subs {
		_ = sub.Unsubscribe()
	}
	if err = conn.Drain(); err != nil {
		conn.Close()
	}
	return nil
}

func (t *NATSTransport) handleMsg(ctx context.Context, kind models.PacketKind, msg *nats.Msg) {
	payload := make([]byte, len(msg.Data))
	copy(payload, msg.Data)

	err := t.sink.ReceivePacket(ctx, models.Packet{Kind: kind, Payload: payload})
	if err != nil {
		t.logger.Warn().Err(err).Str("func", "NATSTransport.handleMsg").Stringer("kind", kind).Msg("packet rejected")
	}

	if msg.Reply == "" {
		return
	}
	var reply []byte
	if err != nil {
		reply = []byte(err.Error())
	}
	if err = msg.Respond(reply); err != nil {
		t.logger.Debug().Err(err).Str("func", "NATSTransport.handleMsg").Msg("reply failed")
	}
}

// Send implements [CompanionAdapter] by publishing data on <subject>.hello
// and flushing so that connection problems surface here.
func (t *NATSTransport) Send(ctx context.Context, data []byte) error {
	conn := t.conn.Load()
	if conn == nil {
		return &models.SendError{Kind: models.SendNotConnected}
	}

	if err := conn.Publish(t.subject+subjectHello, data); err != nil {
		return &models.SendError{Kind: sendKindFromNATS(err), Err: err}
	}

	flushCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		flushCtx, cancel = context.WithTimeout(ctx, t.flushTimeout())
		defer cancel()
	}
	if err := conn.FlushWithContext(flushCtx); err != nil {
		return &models.SendError{Kind: sendKindFromNATS(err), Err: err}
	}
	return nil
}

func (t *NATSTransport) flushTimeout() time.Duration {
	if t.timeout > 0 {
		return t.timeout
	}
	return config.DefaultAdapterTimeout
}
