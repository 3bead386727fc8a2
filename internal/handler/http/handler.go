package http

import (
	"github.com/MKhiriev/bucket-sync/internal/link"
	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/internal/service"
)

type Handler struct {
	services *service.Services

	// maxBodySize bounds every request body; packets above the configured
	// inbox size are rejected further down by the peer itself.
	maxBodySize int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:    services,
		maxBodySize: link.MaxInboxSize,
		logger:      logger,
	}
}
