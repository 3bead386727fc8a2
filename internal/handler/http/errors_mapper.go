package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/bucket-sync/internal/bucketsync"
	"github.com/MKhiriev/bucket-sync/internal/link"
	"github.com/MKhiriev/bucket-sync/internal/workers"
)

// errorStatuses is checked in order: a storage failure wraps the underlying
// store error and must win over it.
var errorStatuses = []struct {
	err    error
	status int
}{
	{ErrInvalidBucketID, http.StatusBadRequest},
	{ErrEmptyPacket, http.StatusBadRequest},
	{ErrBodyTooLarge, http.StatusRequestEntityTooLarge},

	{bucketsync.ErrMalformedPacket, http.StatusBadRequest},
	{bucketsync.ErrUnknownPacketKind, http.StatusBadRequest},
	{bucketsync.ErrNotSyncing, http.StatusConflict},
	{bucketsync.ErrStorage, http.StatusInsufficientStorage},

	{link.ErrPacketTooLarge, http.StatusRequestEntityTooLarge},
	{link.ErrSendInProgress, http.StatusConflict},

	{workers.ErrLoopStopped, http.StatusServiceUnavailable},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
