package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/bucket-sync/models"
)

func TestSetConnection(t *testing.T) {
	peer := &fakePeerService{}
	router := newTestRouter(t, peer)

	assert.Equal(t, http.StatusNoContent, serve(router, http.MethodPost, "/api/connection", `{"connected":false}`).Code)
	assert.Equal(t, http.StatusNoContent, serve(router, http.MethodPost, "/api/connection", `{"connected":true}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/api/connection", `{"connected":`).Code)

	assert.Equal(t, []bool{false, true}, peer.connection)
}

func TestReportSendOutcome(t *testing.T) {
	peer := &fakePeerService{}
	router := newTestRouter(t, peer)

	assert.Equal(t, http.StatusNoContent, serve(router, http.MethodPost, "/api/send-outcome", `{"error":"busy"}`).Code)
	assert.Equal(t, http.StatusNoContent, serve(router, http.MethodPost, "/api/send-outcome", `{"error":"not_connected"}`).Code)
	assert.Equal(t, http.StatusNoContent, serve(router, http.MethodPost, "/api/send-outcome", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/api/send-outcome", `{"error":"exploded"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/api/send-outcome", `nope`).Code)

	assert.Equal(t, []models.SendErrorKind{models.SendBusy, models.SendNotConnected, models.SendOK}, peer.outcomes)
}

func TestRequestAutoClose(t *testing.T) {
	peer := &fakePeerService{}

	rr := serve(newTestRouter(t, peer), http.MethodPost, "/api/auto-close", "")

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, 1, peer.autoCloses)
}
