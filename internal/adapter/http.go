package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/bucket-sync/internal/config"
	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/internal/utils"
	"github.com/MKhiriev/bucket-sync/models"
)

// messagesPath is where a companion accepts peer messages.
const messagesPath = "/api/messages"

type httpCompanionAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPCompanionAdapter constructs an HTTP/REST implementation of
// [CompanionAdapter] posting to adapterCfg.CompanionURL.
//
// Returns an error if the URL is empty or cannot be parsed.
func NewHTTPCompanionAdapter(adapterCfg config.Adapter, log *logger.Logger) (CompanionAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.CompanionURL)
	if err != nil {
		return nil, fmt.Errorf("invalid companion url: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)
	return &httpCompanionAdapter{client: client, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", ErrInvalidAddress
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Send implements [CompanionAdapter]. It POSTs data as an octet stream to
// /api/messages and classifies the outcome.
func (h *httpCompanionAdapter) Send(ctx context.Context, data []byte) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(data).
		Post(messagesPath)
	if err != nil {
		kind := sendKindFromTransport(err)
		h.logger.Debug().Err(err).Stringer("outcome", kind).Msg("companion send failed")
		return &models.SendError{Kind: kind, Err: err}
	}

	if kind := sendKindFromStatus(resp.StatusCode()); kind != models.SendOK {
		return &models.SendError{Kind: kind, Err: fmt.Errorf("http %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))}
	}
	return nil
}
