package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"janconnect/internal/logging"
	"janconnect/internal/report"
)

// Backend accepts a finalized record and returns its tracking id. The
// record the caller hands over is a private copy; backends may annotate
// it freely while marshaling.
type Backend interface {
	Submit(ctx context.Context, rec *report.Record) (trackingID string, err error)
}

// HTTPBackend posts records as JSON to a grievance-intake endpoint.
type HTTPBackend struct {
	endpoint string
	prefix   string
	client   *http.Client
}

// NewHTTPBackend builds a backend for the given endpoint. Every call is
// bounded by timeout in addition to any deadline on the caller's context.
func NewHTTPBackend(endpoint, prefix string, timeout time.Duration) *HTTPBackend {
	return &HTTPBackend{
		endpoint: endpoint,
		prefix:   prefix,
		client:   &http.Client{Timeout: timeout},
	}
}

type submitResponse struct {
	TrackingID string `json:"trackingId"`
	Message    string `json:"message,omitempty"`
}

// Submit implements Backend. When the endpoint acknowledges without
// assigning an id, one is minted locally so the caller always gets a
// referenceable identifier.
func (b *HTTPBackend) Submit(ctx context.Context, rec *report.Record) (string, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logging.SubmitDebug("POST %s (%d bytes)", b.endpoint, len(body))
	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("submission call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("submission rejected: %s: %s", resp.Status, snippet)
	}

	var ack submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil && err != io.EOF {
		return "", fmt.Errorf("unreadable acknowledgement: %w", err)
	}
	if ack.TrackingID == "" {
		ack.TrackingID = NewTrackingID(b.prefix)
		logging.SubmitDebug("endpoint assigned no id, minted %s", ack.TrackingID)
	}
	return ack.TrackingID, nil
}

// SimulatedBackend stands in for the real intake service: it waits a
// fixed delay and then acknowledges with a locally minted id. Used when
// no endpoint is configured.
type SimulatedBackend struct {
	prefix string
	delay  time.Duration
	// Fail, when set, makes every call return this error after the delay.
	Fail error
}

// NewSimulatedBackend builds a simulated backend with the given
// acknowledgement delay.
func NewSimulatedBackend(prefix string, delay time.Duration) *SimulatedBackend {
	return &SimulatedBackend{prefix: prefix, delay: delay}
}

// Submit implements Backend.
func (b *SimulatedBackend) Submit(ctx context.Context, _ *report.Record) (string, error) {
	if b.delay > 0 {
		t := time.NewTimer(b.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-t.C:
		}
	}
	if b.Fail != nil {
		return "", b.Fail
	}
	return NewTrackingID(b.prefix), nil
}
