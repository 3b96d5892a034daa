// Package webhook delivers notifications by POSTing JSON to a configured
// HTTP endpoint through the instrumented client (retry, circuit breaker,
// tracing).
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"tasklane/internal/platform/httpclient"
	"tasklane/internal/ports"
)

// Compile-time check.
var _ ports.Notifier = (*Notifier)(nil)

// notification is the wire shape posted to the endpoint.
type notification struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// Notifier posts notifications to the client's base URL.
type Notifier struct {
	client *httpclient.Client
}

// NewNotifier creates a Notifier over an instrumented client.
func NewNotifier(client *httpclient.Client) *Notifier {
	return &Notifier{client: client}
}

// SendNotification implements ports.Notifier. Non-2xx responses are
// reported as errors after the client's retry budget is exhausted.
func (n *Notifier) SendNotification(ctx context.Context, recipient, subject, body string) error {
	payload, err := json.Marshal(notification{
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
	})
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.client.BaseURL(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(ctx, req)
	if resp != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	if err != nil {
		return fmt.Errorf("posting notification: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notification endpoint returned HTTP %d", resp.StatusCode)
	}
	return nil
}
