package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	applog "platano/internal/log"
)

// LogDeliverer writes the event to the process log. It is the default sink
// when no webhook is configured.
type LogDeliverer struct{}

func (LogDeliverer) Deliver(e Event) error {
	applog.Info(nil, "notify.operator", map[string]any{
		"requester_id":   e.RequesterID,
		"requester_name": e.RequesterName,
		"handle":         e.Handle,
		"term":           e.Term,
		"caption":        e.Caption,
		"photo_ref":      e.PhotoRef,
		"at":             e.At.UTC().Format(time.RFC3339),
	})
	return nil
}

// WebhookDeliverer posts the event as JSON to an operator channel endpoint.
type WebhookDeliverer struct {
	URL    string
	Client *http.Client
}

func NewWebhookDeliverer(url string) *WebhookDeliverer {
	return &WebhookDeliverer{URL: url, Client: &http.Client{Timeout: 10 * time.Second}}
}

func (d *WebhookDeliverer) Deliver(e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	resp, err := d.Client.Post(d.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
	return nil
}
