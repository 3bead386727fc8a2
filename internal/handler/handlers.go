package handler

import (
	"github.com/MKhiriev/bucket-sync/internal/config"
	"github.com/MKhiriev/bucket-sync/internal/handler/http"
	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/internal/service"
)

// Handlers groups the inbound surfaces of the peer. The HTTP API is the
// only one, and the companion delivers packets through it.
type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}
	if services == nil || services.PeerService == nil {
		return nil, errNoPeerService
	}

	logger.Info().Str("address", cfg.HTTPAddress).Msg("creating peer API handlers")
	return &Handlers{HTTP: http.NewHandler(services, logger)}, nil
}
