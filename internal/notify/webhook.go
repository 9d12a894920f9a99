package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// WebhookNotifier posts reminders as JSON to an HTTP endpoint.
//
// It starts pending: the first delivery sends a ping, and a 2xx reply grants
// permission. A 401 or 403 at any point denies it for the process lifetime.
type WebhookNotifier struct {
	url    string
	client *http.Client

	mu    sync.Mutex
	state Capability
}

// NewWebhookNotifier returns a notifier for url. An empty url is unavailable.
func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	state := Pending
	if url == "" {
		state = Unavailable
	}
	return &WebhookNotifier{
		url: url,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
		state: state,
	}
}

type webhookPayload struct {
	Type string `json:"type"`
	*Alert
}

func (n *WebhookNotifier) Capability(context.Context) Capability {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// RequestPermission pings the endpoint unless the outcome is already known.
func (n *WebhookNotifier) RequestPermission(ctx context.Context) (Capability, error) {
	if c := n.Capability(ctx); c != Pending {
		return c, nil
	}
	status, err := n.post(ctx, webhookPayload{Type: "ping"})
	if err != nil {
		return Pending, err
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		n.setState(Denied)
	case status >= 200 && status < 300:
		n.setState(Granted)
	default:
		return Pending, fmt.Errorf("webhook ping: unexpected status %d", status)
	}
	return n.Capability(ctx), nil
}

func (n *WebhookNotifier) Notify(ctx context.Context, a Alert) error {
	status, err := n.post(ctx, webhookPayload{Type: "expiry_reminder", Alert: &a})
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		n.setState(Denied)
		return ErrPermissionDenied
	case status < 200 || status >= 300:
		return fmt.Errorf("webhook notify: unexpected status %d", status)
	}
	return nil
}

func (n *WebhookNotifier) setState(c Capability) {
	n.mu.Lock()
	n.state = c
	n.mu.Unlock()
}

func (n *WebhookNotifier) post(ctx context.Context, p webhookPayload) (int, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return 0, fmt.Errorf("encode webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("webhook request: %w", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
