package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/bucket-sync/internal/app"
	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/internal/utils"
)

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.services.PeerService.Status(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getStatus").Msg("error getting peer status")
		http.Error(w, app.MsgStatusUnavailable, statusFromError(err))
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}

func (h *Handler) getBucket(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 8)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getBucket").Msg("invalid bucket id")
		http.Error(w, ErrInvalidBucketID.Error(), statusFromError(ErrInvalidBucketID))
		return
	}

	data, ok, err := h.services.PeerService.Bucket(r.Context(), uint8(id))
	if err != nil {
		log.Err(err).Str("func", "*Handler.getBucket").Uint64("bucket_id", id).Msg("error loading bucket")
		http.Error(w, app.MsgBucketUnavailable, statusFromError(err))
		return
	}
	if !ok {
		http.Error(w, app.MsgBucketNotFound, http.StatusNotFound)
		return
	}

	utils.WriteOctets(w, data, http.StatusOK)
}
