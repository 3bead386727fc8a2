package utils

import (
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/bucket-sync/models"
)

// ProtocolHeader carries the bucket-sync protocol version on every request
// between a peer and its companion.
const ProtocolHeader = "X-Bucket-Sync-Protocol"

const userAgent = "bucket-sync"

// HTTPClient is a resty client preconfigured for peer ↔ companion traffic.
// It embeds *resty.Client so callers build requests with R().
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client for baseURL. A zero timeout
// leaves requests bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", userAgent).
		SetHeader(ProtocolHeader, strconv.Itoa(int(models.ProtocolVersion)))
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
