package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/bucket-sync/internal/app"
	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/models"
)

func (h *Handler) setConnection(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.ConnectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.setConnection").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	h.services.PeerService.ConnectionChanged(r.Context(), req.Connected)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) reportSendOutcome(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.SendOutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.reportSendOutcome").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	kind, err := models.ParseSendErrorKind(req.Error)
	if err != nil {
		log.Err(err).Str("func", "*Handler.reportSendOutcome").Msg("unknown send outcome")
		http.Error(w, app.MsgUnknownSendOutcome+": "+req.Error, http.StatusBadRequest)
		return
	}

	if err = h.services.PeerService.ReportSendOutcome(r.Context(), kind); err != nil {
		log.Err(err).Str("func", "*Handler.reportSendOutcome").Msg("error applying send outcome")
		http.Error(w, app.MsgLinkEventFailed, statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) requestAutoClose(w http.ResponseWriter, r *http.Request) {
	if err := h.services.PeerService.RequestAutoClose(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.requestAutoClose").Msg("error requesting auto-close")
		http.Error(w, app.MsgLinkEventFailed, statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
