package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/repository/db"
)

// SlackConfig is the channel.config shape for db.ChannelSlack.
type SlackConfig struct {
	WebhookURL string `json:"webhook_url"`
	Channel    string `json:"channel,omitempty"`
	Username   string `json:"username,omitempty"`
	IconEmoji  string `json:"icon_emoji,omitempty"`
}

// SlackNotifier posts Block Kit messages to a Slack incoming webhook.
// Grounded directly in the reference SlackNotifier, including its exact
// host-pinning validation (hooks.slack.com only, to defeat look-alike
// subdomain bypass).
type SlackNotifier struct {
	client *http.Client
}

func NewSlackNotifier() *SlackNotifier {
	return &SlackNotifier{client: &http.Client{Timeout: 30 * time.Second}}
}

func (n *SlackNotifier) ValidateConfig(config []byte) error {
	var cfg SlackConfig
	if err := json.Unmarshal(config, &cfg); err != nil {
		return apperr.Validation(fmt.Sprintf("invalid slack config: %v", err))
	}
	if cfg.WebhookURL == "" {
		return apperr.Validation("slack webhook url is required")
	}
	parsed, err := url.Parse(cfg.WebhookURL)
	if err != nil {
		return apperr.Validation("invalid slack webhook url format")
	}
	if parsed.Scheme != "https" {
		return apperr.Validation("slack webhook url must use https")
	}
	if parsed.Hostname() != "hooks.slack.com" {
		return apperr.Validation("invalid slack webhook url: host must be hooks.slack.com")
	}
	return nil
}

func (n *SlackNotifier) Send(ctx context.Context, channel db.NotificationChannel, payload AlertPayload) SendResult {
	var cfg SlackConfig
	if err := json.Unmarshal(channel.Config, &cfg); err != nil {
		return SendResult{Success: false, ErrorMessage: fmt.Sprintf("invalid slack config: %v", err)}
	}

	message := formatSlackMessage(cfg, payload)
	body, err := json.Marshal(message)
	if err != nil {
		return SendResult{Success: false, ErrorMessage: fmt.Sprintf("marshal payload: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return SendResult{Success: false, ErrorMessage: fmt.Sprintf("create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return SendResult{Success: false, ErrorMessage: transportErrorMessage(err, "slack")}
	}
	defer resp.Body.Close()

	status := int32(resp.StatusCode)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return SendResult{Success: true, HTTPStatus: &status}
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	errMsg := slackErrorMessage(strings.TrimSpace(string(respBody)), resp.StatusCode)
	return SendResult{Success: false, ErrorMessage: errMsg, HTTPStatus: &status}
}

func slackErrorMessage(body string, status int) string {
	switch body {
	case "invalid_token":
		return "invalid Slack webhook URL"
	case "channel_not_found":
		return "Slack channel not found"
	case "channel_is_archived":
		return "Slack channel is archived"
	case "posting_to_general_channel_denied":
		return "cannot post to #general channel"
	case "":
		return fmt.Sprintf("Slack API error: HTTP %d", status)
	default:
		return fmt.Sprintf("Slack API error: %s", body)
	}
}

func formatSlackMessage(cfg SlackConfig, payload AlertPayload) map[string]interface{} {
	username := cfg.Username
	if username == "" {
		username = "Rustrak"
	}
	iconEmoji := cfg.IconEmoji
	if iconEmoji == "" {
		iconEmoji = ":bug:"
	}

	level := ""
	if payload.Issue.Level != nil {
		level = *payload.Issue.Level
	}

	message := map[string]interface{}{
		"username":   username,
		"icon_emoji": iconEmoji,
		"blocks": []map[string]interface{}{
			{
				"type": "header",
				"text": map[string]interface{}{
					"type":  "plain_text",
					"text":  fmt.Sprintf("%s %s in %s", alertEmoji(payload.AlertType), alertTypeDisplay(payload.AlertType), payload.Project.Name),
					"emoji": true,
				},
			},
			{
				"type": "section",
				"text": map[string]interface{}{
					"type": "mrkdwn",
					"text": fmt.Sprintf("%s *<%s|%s>*\n%s", levelEmoji(level), payload.IssueURL, payload.Issue.ShortID, escapeSlackMarkdown(payload.Issue.Title)),
				},
			},
			{
				"type": "context",
				"elements": []map[string]interface{}{
					{
						"type": "mrkdwn",
						"text": fmt.Sprintf("*Events:* %d | *First seen:* %s | *Last seen:* %s",
							payload.Issue.EventCount,
							payload.Issue.FirstSeen.Format("2006-01-02 15:04"),
							payload.Issue.LastSeen.Format("2006-01-02 15:04")),
					},
				},
			},
			{
				"type": "actions",
				"elements": []map[string]interface{}{
					{
						"type":      "button",
						"text":      map[string]interface{}{"type": "plain_text", "text": "View Issue", "emoji": true},
						"url":       payload.IssueURL,
						"action_id": "view_issue",
					},
				},
			},
		},
	}
	if cfg.Channel != "" {
		message["channel"] = cfg.Channel
	}
	return message
}

func levelEmoji(level string) string {
	switch level {
	case "fatal":
		return ":rotating_light:"
	case "error":
		return ":x:"
	case "warning":
		return ":warning:"
	case "info":
		return ":information_source:"
	case "debug":
		return ":mag:"
	default:
		return ":grey_question:"
	}
}

func alertEmoji(alertType db.AlertType) string {
	switch alertType {
	case db.AlertNewIssue:
		return ":new:"
	case db.AlertRegression:
		return ":repeat:"
	case db.AlertUnmute:
		return ":loud_sound:"
	default:
		return ":bell:"
	}
}

func alertTypeDisplay(alertType db.AlertType) string {
	words := strings.Split(strings.ReplaceAll(string(alertType), "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func escapeSlackMarkdown(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	return text
}
