package dispatcher

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/repository/db"
)

// WebhookConfig is the channel.config shape for db.ChannelWebhook.
type WebhookConfig struct {
	URL     string            `json:"url"`
	Secret  string            `json:"secret,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// WebhookNotifier POSTs the alert payload as JSON, HMAC-SHA256-signing the
// body when the channel config carries a secret. Grounded in
// notification-service's dispatcher.WebhookDispatcher for the signing idiom;
// the signature header and timestamp/request-id scheme follow the reference
// WebhookNotifier.
type WebhookNotifier struct {
	client *http.Client
}

// NewWebhookNotifier builds a WebhookNotifier with a 30s request timeout.
func NewWebhookNotifier() *WebhookNotifier {
	return &WebhookNotifier{client: &http.Client{Timeout: 30 * time.Second}}
}

func (n *WebhookNotifier) ValidateConfig(config []byte) error {
	var cfg WebhookConfig
	if err := json.Unmarshal(config, &cfg); err != nil {
		return apperr.Validation(fmt.Sprintf("invalid webhook config: %v", err))
	}
	if cfg.URL == "" {
		return apperr.Validation("webhook url is required")
	}
	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return apperr.Validation("invalid webhook url format")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return apperr.Validation("webhook url must use http or https")
	}
	return nil
}

func (n *WebhookNotifier) Send(ctx context.Context, channel db.NotificationChannel, payload AlertPayload) SendResult {
	var cfg WebhookConfig
	if err := json.Unmarshal(channel.Config, &cfg); err != nil {
		return SendResult{Success: false, ErrorMessage: fmt.Sprintf("invalid webhook config: %v", err)}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return SendResult{Success: false, ErrorMessage: fmt.Sprintf("marshal payload: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.URL, bytes.NewReader(body))
	if err != nil {
		return SendResult{Success: false, ErrorMessage: fmt.Sprintf("create request: %v", err)}
	}
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Rustrak-Timestamp", timestamp)
	req.Header.Set("X-Rustrak-Request-ID", payload.AlertID)
	if cfg.Secret != "" {
		req.Header.Set("X-Rustrak-Signature", "sha256="+generateSignature(cfg.Secret, timestamp, body))
	}
	for k, v := range cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return SendResult{Success: false, ErrorMessage: transportErrorMessage(err, "webhook")}
	}
	defer resp.Body.Close()

	status := int32(resp.StatusCode)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return SendResult{Success: true, HTTPStatus: &status}
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := fmt.Sprintf("HTTP %d", resp.StatusCode)
	if len(respBody) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, string(respBody))
	}
	return SendResult{Success: false, ErrorMessage: msg, HTTPStatus: &status}
}

// generateSignature computes hex(HMAC-SHA256("{timestamp}.{body}", secret)),
// following the reference WebhookNotifier's signing scheme.
func generateSignature(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func transportErrorMessage(err error, target string) string {
	if netErr, ok := err.(interface{ Timeout() bool }); ok && netErr.Timeout() {
		return fmt.Sprintf("request to %s timed out", target)
	}
	return fmt.Sprintf("%s request failed: %v", target, err)
}
