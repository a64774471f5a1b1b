package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/repository/db"
)

// EmailConfig is the channel.config shape for db.ChannelEmail. SMTP
// settings fall back to the notifier's process-level defaults when absent.
type EmailConfig struct {
	Recipients  []string `json:"recipients"`
	SMTPHost    string   `json:"smtp_host,omitempty"`
	SMTPPort    int      `json:"smtp_port,omitempty"`
	SMTPUser    string   `json:"smtp_username,omitempty"`
	SMTPPass    string   `json:"smtp_password,omitempty"`
	FromAddress string   `json:"from_address,omitempty"`
}

// EmailNotifier sends alerts over SMTP, formatting both an HTML and a plain
// text body. Grounded in the reference EmailNotifier's body templates and
// global-SMTP-fallback behavior; delivery itself uses net/smtp (no
// third-party SMTP client appears anywhere in the example pack — see
// DESIGN.md).
type EmailNotifier struct {
	globalHost string
	globalPort int
	globalUser string
	globalPass string
	globalFrom string
}

func NewEmailNotifier(host string, port int, username, password, from string) *EmailNotifier {
	if port == 0 {
		port = 587
	}
	if from == "" {
		from = "alerts@rustrak.local"
	}
	return &EmailNotifier{globalHost: host, globalPort: port, globalUser: username, globalPass: password, globalFrom: from}
}

func (n *EmailNotifier) ValidateConfig(config []byte) error {
	var cfg EmailConfig
	if err := json.Unmarshal(config, &cfg); err != nil {
		return apperr.Validation(fmt.Sprintf("invalid email config: %v", err))
	}
	if len(cfg.Recipients) == 0 {
		return apperr.Validation("at least one email recipient is required")
	}
	for _, r := range cfg.Recipients {
		if !strings.Contains(r, "@") || len(r) < 5 {
			return apperr.Validation(fmt.Sprintf("invalid email address: %s", r))
		}
	}
	if cfg.SMTPHost == "" && n.globalHost == "" {
		return apperr.Validation("SMTP host must be configured either globally or per-channel")
	}
	return nil
}

func (n *EmailNotifier) Send(ctx context.Context, channel db.NotificationChannel, payload AlertPayload) SendResult {
	var cfg EmailConfig
	if err := json.Unmarshal(channel.Config, &cfg); err != nil {
		return SendResult{Success: false, ErrorMessage: fmt.Sprintf("invalid email config: %v", err)}
	}

	host := cfg.SMTPHost
	if host == "" {
		host = n.globalHost
	}
	if host == "" {
		return SendResult{Success: false, ErrorMessage: "SMTP host not configured"}
	}
	port := cfg.SMTPPort
	if port == 0 {
		port = n.globalPort
	}
	from := cfg.FromAddress
	if from == "" {
		from = n.globalFrom
	}
	username := cfg.SMTPUser
	if username == "" {
		username = n.globalUser
	}
	password := cfg.SMTPPass
	if password == "" {
		password = n.globalPass
	}

	subject := fmt.Sprintf("[%s] %s - %s", payload.Project.Name, alertTypeDisplay(payload.AlertType), payload.Issue.ShortID)
	body := formatEmailText(payload)
	message := buildMIMEMessage(from, cfg.Recipients, subject, body, formatEmailHTML(payload))

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	if err := smtp.SendMail(addr, auth, from, cfg.Recipients, message); err != nil {
		return SendResult{Success: false, ErrorMessage: fmt.Sprintf("send email: %v", err)}
	}
	return SendResult{Success: true}
}

func buildMIMEMessage(from string, to []string, subject, textBody, htmlBody string) []byte {
	boundary := "rustrak-alert-boundary"
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n\r\n", boundary, textBody)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n\r\n", boundary, htmlBody)
	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}

func formatEmailText(payload AlertPayload) string {
	return fmt.Sprintf(`%s in %s

%s: %s

Events: %d
First seen: %s
Last seen: %s

View issue: %s

--
This alert was sent by Rustrak for project %s.`,
		alertTypeDisplay(payload.AlertType), payload.Project.Name,
		payload.Issue.ShortID, payload.Issue.Title,
		payload.Issue.EventCount,
		payload.Issue.FirstSeen.Format("2006-01-02 15:04 MST"),
		payload.Issue.LastSeen.Format("2006-01-02 15:04 MST"),
		payload.IssueURL, payload.Project.Name)
}

func formatEmailHTML(payload AlertPayload) string {
	level := ""
	if payload.Issue.Level != nil {
		level = *payload.Issue.Level
	}
	color := emailLevelColor(level)
	return fmt.Sprintf(`<!DOCTYPE html>
<html><body style="font-family:sans-serif;margin:0;padding:20px;background:#f3f4f6;">
<div style="max-width:600px;margin:0 auto;background:#fff;border-radius:8px;overflow:hidden;">
<div style="background:%s;padding:16px 24px;"><h1 style="color:#fff;margin:0;font-size:18px;">%s in %s</h1></div>
<div style="padding:24px;">
<h2 style="margin:0 0 8px 0;"><a href="%s">%s</a></h2>
<p>%s</p>
<p>Events: %d | First seen: %s | Last seen: %s</p>
<a href="%s">View Issue</a>
</div>
</div>
</body></html>`,
		color, htmlEscape(alertTypeDisplay(payload.AlertType)), htmlEscape(payload.Project.Name),
		payload.IssueURL, htmlEscape(payload.Issue.ShortID), htmlEscape(payload.Issue.Title),
		payload.Issue.EventCount,
		payload.Issue.FirstSeen.Format("2006-01-02 15:04 MST"),
		payload.Issue.LastSeen.Format("2006-01-02 15:04 MST"),
		payload.IssueURL)
}

func emailLevelColor(level string) string {
	switch level {
	case "fatal":
		return "#dc2626"
	case "error":
		return "#ef4444"
	case "warning":
		return "#f59e0b"
	case "info":
		return "#3b82f6"
	default:
		return "#6b7280"
	}
}

func htmlEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}
