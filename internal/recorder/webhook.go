package recorder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	d "github.com/fjod/go_storefront/internal/domain"
)

// WebhookRecorder posts the order JSON to a spreadsheet webhook.
type WebhookRecorder struct {
	url    string
	client *http.Client
}

func NewWebhookRecorder(url string, timeout time.Duration) *WebhookRecorder {
	return &WebhookRecorder{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (w *WebhookRecorder) Record(ctx context.Context, order *d.OrderRecord) error {
	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post order record: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrRecordRejected, resp.StatusCode)
	}
	return nil
}
