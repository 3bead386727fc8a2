package companion

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/bucket-sync/internal/codec"
	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/models"
)

const maxHelloBody = 64

// Listener answers peer hellos with the update it holds.
//
// The peer blocks its event loop while a hello is in flight, so the hello
// is acknowledged first and the packets are pushed from Run.
type Listener struct {
	pusher *Pusher
	update models.BucketUpdate
	hellos chan models.Hello
	logger *logger.Logger
}

func NewListener(pusher *Pusher, update models.BucketUpdate, log *logger.Logger) *Listener {
	return &Listener{
		pusher: pusher,
		update: update,
		hellos: make(chan models.Hello, 1),
		logger: log,
	}
}

// Routes returns the companion endpoint the peer sends its messages to.
func (l *Listener) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/api/messages", l.receiveMessage)
	return r
}

func (l *Listener) receiveMessage(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxHelloBody))
	if err != nil {
		http.Error(w, "message too large", http.StatusRequestEntityTooLarge)
		return
	}

	hello, err := codec.DecodeHello(body)
	if err != nil {
		l.logger.Err(err).Str("func", "Listener.receiveMessage").Msg("unknown message")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if hello.ProtocolVersion != models.ProtocolVersion {
		l.logger.Warn().Uint16("protocol_version", hello.ProtocolVersion).Msg(ErrProtocolMismatch.Error())
		http.Error(w, ErrProtocolMismatch.Error(), http.StatusConflict)
		return
	}

	select {
	case l.hellos <- hello:
	default:
		// a push is already queued; it will bring the peer up to date
	}
	w.WriteHeader(http.StatusAccepted)
}

// Run pushes the update for every queued hello until ctx is done.
func (l *Listener) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case hello := <-l.hellos:
			_, err := l.pusher.Sync(ctx, l.update, hello.SyncedVersion, int(hello.InboxSize))
			if err != nil && !errors.Is(err, context.Canceled) {
				l.logger.Err(err).Str("func", "Listener.Run").Msg("error pushing update")
			}
		}
	}
}
