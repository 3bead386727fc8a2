package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/bucket-sync/internal/app"
	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/models"
)

func (h *Handler) receiveStartPacket(w http.ResponseWriter, r *http.Request) {
	h.receivePacket(w, r, models.PacketStart)
}

func (h *Handler) receiveContinuationPacket(w http.ResponseWriter, r *http.Request) {
	h.receivePacket(w, r, models.PacketContinuation)
}

func (h *Handler) receivePacket(w http.ResponseWriter, r *http.Request, kind models.PacketKind) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	payload, err := h.readBody(w, r)
	if err == nil && len(payload) == 0 {
		err = ErrEmptyPacket
	}
	if err != nil {
		log.Err(err).Str("func", "*Handler.receivePacket").Stringer("kind", kind).Msg("error reading packet")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if err = h.services.PeerService.ReceivePacket(ctx, models.Packet{Kind: kind, Payload: payload}); err != nil {
		log.Err(err).Str("func", "*Handler.receivePacket").Stringer("kind", kind).Int("size", len(payload)).Msg(app.MsgPacketRejected)
		http.Error(w, app.MsgPacketRejected+": "+err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, maxErr.Limit)
	}
	return body, err
}
