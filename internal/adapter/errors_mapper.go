package adapter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/go-resty/resty/v2"
	"github.com/nats-io/nats.go"

	"github.com/MKhiriev/bucket-sync/models"
)

// mapHTTPError turns a non-2xx peer response into one of the package
// sentinels.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case http.StatusRequestEntityTooLarge:
		return fmt.Errorf("%w: %s", ErrPayloadTooLarge, body)
	case http.StatusInsufficientStorage:
		return fmt.Errorf("%w: %s", ErrInsufficientStorage, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}

// sendKindFromStatus classifies a companion response.
func sendKindFromStatus(code int) models.SendErrorKind {
	switch {
	case code >= http.StatusOK && code < http.StatusMultipleChoices:
		return models.SendOK
	case code == http.StatusBadRequest:
		return models.SendInvalidArgs
	case code == http.StatusConflict:
		return models.SendRejected
	case code == http.StatusGone:
		return models.SendClosed
	case code == http.StatusRequestEntityTooLarge:
		return models.SendBufferOverflow
	case code == http.StatusTooManyRequests, code == http.StatusServiceUnavailable:
		return models.SendBusy
	case code == http.StatusGatewayTimeout:
		return models.SendTimeout
	default:
		return models.SendInternalError
	}
}

// sendKindFromTransport classifies a request that never got a response.
func sendKindFromTransport(err error) models.SendErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return models.SendTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.SendTimeout
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return models.SendNotConnected
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return models.SendNotConnected
	}
	return models.SendInternalError
}

// sendKindFromNATS classifies a failed publish.
func sendKindFromNATS(err error) models.SendErrorKind {
	switch {
	case errors.Is(err, nats.ErrConnectionClosed), errors.Is(err, nats.ErrConnectionDraining):
		return models.SendClosed
	case errors.Is(err, nats.ErrConnectionReconnecting), errors.Is(err, nats.ErrNoServers):
		return models.SendNotConnected
	case errors.Is(err, nats.ErrMaxPayload):
		return models.SendBufferOverflow
	case errors.Is(err, nats.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return models.SendTimeout
	case errors.Is(err, nats.ErrBadSubject):
		return models.SendInvalidArgs
	case errors.Is(err, nats.ErrReconnectBufExceeded), errors.Is(err, nats.ErrSlowConsumer):
		return models.SendBusy
	default:
		return models.SendInternalError
	}
}
