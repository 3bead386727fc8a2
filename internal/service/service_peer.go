package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/bucket-sync/internal/bucketsync"
	"github.com/MKhiriev/bucket-sync/internal/codec"
	"github.com/MKhiriev/bucket-sync/internal/config"
	"github.com/MKhiriev/bucket-sync/internal/link"
	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/internal/notify"
	"github.com/MKhiriev/bucket-sync/internal/registry"
	"github.com/MKhiriev/bucket-sync/internal/store"
	"github.com/MKhiriev/bucket-sync/internal/workers"
	"github.com/MKhiriev/bucket-sync/models"
)

// PeerDeps are the collaborators of a peer. UI and Errors may be nil.
type PeerDeps struct {
	Store    store.PersistentStore
	Sender   link.Sender
	Notifier *notify.Notifier
	UI       bucketsync.UICloser
	Errors   bucketsync.ErrorReporter
	IDs      bucketsync.IDGenerator
}

// Peer owns the sync subsystem: registry, protocol and link state all live
// on one event loop.
type Peer struct {
	loop     *workers.Loop
	registry *registry.Registry
	protocol *bucketsync.Protocol
	link     *link.Link
	notifier *notify.Notifier

	logger *logger.Logger
}

// NewPeer loads the registry from deps.Store and wires the protocol and link
// onto a fresh event loop. The loop starts with Run.
func NewPeer(ctx context.Context, deps PeerDeps, cfg config.PeerConfig, log *logger.Logger) (*Peer, error) {
	if deps.Store == nil {
		return nil, ErrNoStore
	}
	if deps.Sender == nil {
		return nil, ErrNoSender
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.New()
	}

	reg := registry.New(deps.Store, deps.Notifier, cfg.Storage.MaxValueSize)
	if err := reg.Load(log.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("load bucket registry: %w", err)
	}

	loop := workers.NewLoop(cfg.Workers.QueueSize, log)
	proto := bucketsync.New(reg, deps.Store, deps.Notifier, deps.UI, deps.Errors, deps.IDs, bucketsync.Options{
		AwaitInitialSync: cfg.UI.AwaitInitialSync,
	})
	lnk := link.New(deps.Sender, proto, deps.Notifier, loop, cfg.Workers.ReconnectDelay, cfg.App.InboxSize)

	p := &Peer{
		loop:     loop,
		registry: reg,
		protocol: proto,
		link:     lnk,
		notifier: deps.Notifier,
		logger:   log,
	}

	// runs on the loop: the reconnect timer is scheduled through it
	deps.Notifier.SetReconnectRequired(func() {
		if err := p.sendHello(log.WithContext(context.Background())); err != nil {
			log.Warn().Err(err).Str("func", "Peer.reconnectRequired").Msg("error sending hello after reconnect")
		}
	})

	log.Info().Str("func", "NewPeer").
		Uint16("synced_version", reg.SyncedVersion()).
		Int("buckets", len(reg.Buckets())).
		Int("inbox_size", lnk.InboxSize()).
		Msg("peer loaded")

	return p, nil
}

// Run runs the event loop until ctx is done and greets the companion once
// the loop is up.
func (p *Peer) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.loop.Run(ctx)
	})
	g.Go(func() error {
		if err := p.SendHello(ctx); err != nil && ctx.Err() == nil {
			p.logger.Warn().Err(err).Str("func", "Peer.Run").Msg("error sending startup hello")
		}
		return nil
	})
	return g.Wait()
}

func (p *Peer) ReceivePacket(ctx context.Context, pkt models.Packet) error {
	return p.loop.Do(ctx, func(ctx context.Context) error {
		return p.link.OnPacketReceived(ctx, pkt)
	})
}

func (p *Peer) ConnectionChanged(ctx context.Context, connected bool) {
	err := p.loop.Do(ctx, func(ctx context.Context) error {
		p.link.OnConnectionChanged(ctx, connected)
		return nil
	})
	if err != nil {
		p.logger.Warn().Err(err).Str("func", "Peer.ConnectionChanged").Bool("connected", connected).Msg("connection event dropped")
	}
}

func (p *Peer) ReportSendOutcome(ctx context.Context, kind models.SendErrorKind) error {
	return p.loop.Do(ctx, func(ctx context.Context) error {
		p.link.OnSendOutcome(ctx, kind)
		return nil
	})
}

func (p *Peer) RequestAutoClose(ctx context.Context) error {
	return p.loop.Do(ctx, func(ctx context.Context) error {
		p.protocol.RequestAutoClose()
		return nil
	})
}

func (p *Peer) SendHello(ctx context.Context) error {
	return p.loop.Do(ctx, p.sendHello)
}

// sendHello must run on the loop. A send already in flight carries an
// equivalent request, so it is not an error.
func (p *Peer) sendHello(ctx context.Context) error {
	hello := models.Hello{
		ProtocolVersion: models.ProtocolVersion,
		SyncedVersion:   p.registry.SyncedVersion(),
		InboxSize:       uint16(p.link.InboxSize()),
	}

	err := p.link.Send(ctx, codec.EncodeHello(hello))
	if errors.Is(err, link.ErrSendInProgress) {
		logger.FromContext(ctx).Debug().Str("func", "Peer.sendHello").Msg("send in progress, hello skipped")
		return nil
	}
	if err != nil {
		return fmt.Errorf("send hello: %w", err)
	}

	logger.FromContext(ctx).Info().Str("func", "Peer.sendHello").Uint16("synced_version", hello.SyncedVersion).Msg("hello sent")
	return nil
}

func (p *Peer) Status(ctx context.Context) (models.PeerStatus, error) {
	var status models.PeerStatus
	err := p.loop.Do(ctx, func(ctx context.Context) error {
		buckets, err := p.registry.Status(ctx)
		if err != nil {
			return err
		}
		status = models.PeerStatus{
			State:          p.protocol.State().String(),
			Syncing:        p.protocol.IsSyncing(),
			SyncedVersion:  p.registry.SyncedVersion(),
			PendingVersion: p.protocol.PendingVersion(),
			Connected:      p.link.Connected(),
			Sending:        p.link.Sending(),
			SendError:      p.link.SendErrorSeen(),
			Buckets:        buckets,
		}
		return nil
	})
	return status, err
}

func (p *Peer) Bucket(ctx context.Context, id uint8) ([]byte, bool, error) {
	var (
		data []byte
		ok   bool
	)
	err := p.loop.Do(ctx, func(ctx context.Context) error {
		var err error
		data, ok, err = p.registry.LoadBucket(ctx, id)
		return err
	})
	return data, ok, err
}
