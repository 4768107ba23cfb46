package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"notamadmin/internal/observability"
)

// ErrWebhookFailed marks transport errors and non-2xx webhook replies.
var ErrWebhookFailed = errors.New("webhook failed")

const (
	webhookWeather = "weather"
	webhookCreated = "created"
	webhookUpdated = "updated"
)

// NewHTTPClient returns the client shared by all outbound webhook calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

type webhookCaller struct {
	client  *http.Client
	metrics *observability.Metrics
}

// do sends req and returns the response body of a 2xx reply.
func (w webhookCaller) do(req *http.Request, webhook string) ([]byte, error) {
	start := time.Now()
	body, err := w.roundTrip(req)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	if w.metrics != nil {
		w.metrics.WebhookRequests.WithLabelValues(webhook, outcome).Inc()
		w.metrics.WebhookDuration.WithLabelValues(webhook).Observe(time.Since(start).Seconds())
	}
	return body, err
}

func (w webhookCaller) roundTrip(req *http.Request) ([]byte, error) {
	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", ErrWebhookFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrWebhookFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status code: %d", ErrWebhookFailed, resp.StatusCode)
	}
	return body, nil
}

func (w webhookCaller) postJSON(ctx context.Context, url, webhook string, payload any) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	_, err = w.do(req, webhook)
	return err
}
