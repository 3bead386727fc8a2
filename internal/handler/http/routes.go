package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	// companion → peer packets
	router.Post("/api/packets/start", h.receiveStartPacket)
	router.Post("/api/packets/next", h.receiveContinuationPacket)

	// link events
	router.Post("/api/connection", h.setConnection)
	router.Post("/api/send-outcome", h.reportSendOutcome)
	router.Post("/api/auto-close", h.requestAutoClose)

	router.Get("/api/status", h.getStatus)
	router.Get("/api/buckets/{id}", h.getBucket)
	router.Get("/api/version", h.getServerVersion)

	router.MethodNotAllowed(notFoundOnWrongMethod(router))

	return router
}
