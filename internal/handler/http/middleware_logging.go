package http

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/internal/utils"
)

// withLogging writes one access log line per request. Rejected packets and
// link events log at warn, server faults at error.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(rw, r)

		log := logger.FromRequest(r)
		var ev *zerolog.Event
		switch {
		case rw.status >= http.StatusInternalServerError:
			ev = log.Error()
		case rw.status >= http.StatusBadRequest:
			ev = log.Warn()
		default:
			ev = log.Info()
		}

		if v := r.Header.Get(utils.ProtocolHeader); v != "" {
			ev = ev.Str("protocol", v)
		}
		ev.Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", rw.status).
			Int64("request_size", r.ContentLength).
			Int("size", rw.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}
