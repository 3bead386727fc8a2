package peer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/bucket-sync/internal/adapter"
	"github.com/MKhiriev/bucket-sync/internal/config"
	"github.com/MKhiriev/bucket-sync/internal/handler"
	"github.com/MKhiriev/bucket-sync/internal/link"
	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/internal/notify"
	"github.com/MKhiriev/bucket-sync/internal/server"
	"github.com/MKhiriev/bucket-sync/internal/service"
	"github.com/MKhiriev/bucket-sync/internal/store"
	"github.com/MKhiriev/bucket-sync/internal/tui"
	"github.com/MKhiriev/bucket-sync/internal/utils"
	"github.com/MKhiriev/bucket-sync/internal/workers"
	"github.com/MKhiriev/bucket-sync/models"
)

const defaultVersion = "dev"

// App is a fully wired peer process.
type App struct {
	peer    *service.Peer
	workers *workers.Workers
	storage store.PersistentStore
	logger  *logger.Logger
}

// NewApp builds every component of the peer from cfg. The store is opened
// and the bucket registry is loaded before NewApp returns.
func NewApp(ctx context.Context, cfg *config.PeerConfig, build models.AppBuildInfo, log *logger.Logger) (*App, error) {
	storage, err := store.NewStorage(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	app, err := newApp(ctx, cfg, build, storage, log)
	if err != nil {
		closeStorage(storage, log)
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, cfg *config.PeerConfig, build models.AppBuildInfo, storage store.PersistentStore, log *logger.Logger) (*App, error) {
	notifier := newLoggingNotifier(log)

	sender, natsTransport, err := newSender(cfg.Adapter, log)
	if err != nil {
		return nil, err
	}

	deps := service.PeerDeps{
		Store:    storage,
		Sender:   sender,
		Notifier: notifier,
		Errors:   logReporter{logger: log},
		IDs:      utils.NewSessionIDGenerator(),
	}

	var monitor *tui.TUI
	if cfg.UI.Enabled {
		monitor = tui.New(build, log)
		deps.UI = monitor
		deps.Errors = monitor
	}

	peer, err := service.NewPeer(ctx, deps, *cfg, log)
	if err != nil {
		return nil, fmt.Errorf("create peer: %w", err)
	}
	if natsTransport != nil {
		natsTransport.SetSink(peer)
	}

	if cfg.App.Version == "" {
		cfg.App.Version = build.BuildVersion()
	}
	if cfg.App.Version == "" {
		cfg.App.Version = defaultVersion
	}
	appInfo, err := service.NewAppInfoService(cfg.App, build, log)
	if err != nil {
		return nil, fmt.Errorf("create app info service: %w", err)
	}

	handlers, err := handler.NewHandlers(service.NewServices(peer, appInfo), cfg.Server, log)
	if err != nil {
		return nil, fmt.Errorf("create handlers: %w", err)
	}
	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return nil, fmt.Errorf("create server: %w", err)
	}

	ws := []workers.Worker{peer, srv}
	if natsTransport != nil {
		ws = append(ws, natsTransport)
	}
	if monitor != nil {
		ws = append(ws, &uiWorker{ui: monitor, source: peer})
	}

	return &App{
		peer:    peer,
		workers: workers.NewWorkers(ws...),
		storage: storage,
		logger:  log,
	}, nil
}

// Run runs every worker until ctx is done, one of them fails or the monitor
// is closed. The store is closed on return.
func (a *App) Run(ctx context.Context) error {
	defer closeStorage(a.storage, a.logger)

	a.logger.Info().Str("func", "App.Run").Msg("peer is starting")
	err := a.workers.Run(ctx)
	if errors.Is(err, errUIClosed) || errors.Is(err, context.Canceled) {
		err = nil
	}
	a.logger.Info().Str("func", "App.Run").Msg("peer stopped")
	return err
}

// newSender picks the companion transport: NATS when a server URL is
// configured, HTTP otherwise. The NATS transport is returned separately
// because it also has to run as a worker.
func newSender(cfg config.Adapter, log *logger.Logger) (link.Sender, *adapter.NATSTransport, error) {
	if cfg.NATSURL != "" {
		t := adapter.NewNATSTransport(cfg, log)
		return t, t, nil
	}

	httpAdapter, err := adapter.NewHTTPCompanionAdapter(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("create companion adapter: %w", err)
	}
	return httpAdapter, nil, nil
}

func newLoggingNotifier(log *logger.Logger) *notify.Notifier {
	n := notify.New()
	n.SetListChanged(func() {
		log.Info().Msg("bucket list changed")
	})
	n.SetBucketDeleted(func(id uint8) {
		log.WithBucket(id).Info().Msg("bucket deleted")
	})
	n.SetDataChanged(func(meta models.BucketMetadata, _ any) {
		log.WithBucket(meta.ID).Debug().Uint8("flags", meta.Flags).Msg("bucket data changed")
	}, nil)
	n.SetSyncingStatusChanged(func(syncing bool) {
		log.Info().Bool("syncing", syncing).Msg("syncing status changed")
	})
	n.SetSendingError(func() {
		log.Warn().Msg("sending to companion failed")
	})
	n.SetConnectionChanged(func(connected bool) {
		log.Info().Bool("connected", connected).Msg("companion connection changed")
	})
	return n
}

func closeStorage(storage store.PersistentStore, log *logger.Logger) {
	c, ok := storage.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		log.Err(err).Str("func", "peer.closeStorage").Msg("error closing storage")
	}
}
