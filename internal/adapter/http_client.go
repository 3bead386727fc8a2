package adapter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/bucket-sync/internal/utils"
	"github.com/MKhiriev/bucket-sync/models"
)

type peerClient struct {
	client *utils.HTTPClient
}

// NewPeerClient returns a [PeerAPI] talking to the peer at address.
func NewPeerClient(address string, timeout time.Duration) (PeerAPI, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid peer address: %w", err)
	}

	return &peerClient{client: utils.NewHTTPClient(baseURL, timeout)}, nil
}

func (p *peerClient) SendPacket(ctx context.Context, pkt models.Packet) error {
	var path string
	switch pkt.Kind {
	case models.PacketStart:
		path = "/api/packets/start"
	case models.PacketContinuation:
		path = "/api/packets/next"
	default:
		return fmt.Errorf("%w: %s", ErrUnknownPacket, pkt.Kind)
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(pkt.Payload).
		Post(path)
	if err != nil {
		return fmt.Errorf("send %s packet: %w", pkt.Kind, err)
	}

	return mapHTTPError(resp)
}

func (p *peerClient) Status(ctx context.Context) (models.PeerStatus, error) {
	var status models.PeerStatus

	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&status).
		Get("/api/status")
	if err != nil {
		return models.PeerStatus{}, fmt.Errorf("status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PeerStatus{}, err
	}

	return status, nil
}

func (p *peerClient) Bucket(ctx context.Context, id uint8) ([]byte, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.Itoa(int(id))).
		Get("/api/buckets/{id}")
	if err != nil {
		return nil, fmt.Errorf("bucket request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

func (p *peerClient) SetConnection(ctx context.Context, connected bool) error {
	return p.postJSON(ctx, "/api/connection", models.ConnectionRequest{Connected: connected})
}

func (p *peerClient) RequestAutoClose(ctx context.Context) error {
	return p.postJSON(ctx, "/api/auto-close", nil)
}

func (p *peerClient) postJSON(ctx context.Context, path string, body any) error {
	req := p.client.R().SetContext(ctx)
	if body != nil {
		req = req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Post(path)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}

	return mapHTTPError(resp)
}
