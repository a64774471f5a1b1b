package dispatcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/repository/db"
)

// NOTE: CreateRule/UpdateRule open a transaction on a real *pgxpool.Pool
// (same constraint noted in internal/digest's tests), and
// Trigger/TriggerNewIssue go through the querier and live notifiers; none of
// those paths is unit-tested here. The pure helpers and the per-notifier
// config validation/formatting below are fully unit-testable.

func TestWebhookValidateConfig(t *testing.T) {
	n := NewWebhookNotifier()

	require.NoError(t, n.ValidateConfig([]byte(`{"url":"https://example.com/hook"}`)))
	require.Error(t, n.ValidateConfig([]byte(`{"url":""}`)))
	require.Error(t, n.ValidateConfig([]byte(`{"url":"ftp://example.com"}`)))
	require.Error(t, n.ValidateConfig([]byte(`not json`)))
}

func TestGenerateSignature_Consistency(t *testing.T) {
	body := []byte(`{"hello":"world"}`)
	sig1 := generateSignature("secret", "1700000000", body)
	sig2 := generateSignature("secret", "1700000000", body)
	assert.Equal(t, sig1, sig2)
	assert.Len(t, sig1, 64) // hex-encoded SHA-256
}

func TestGenerateSignature_ChangesWithSecret(t *testing.T) {
	body := []byte(`{"hello":"world"}`)
	sig1 := generateSignature("secret-a", "1700000000", body)
	sig2 := generateSignature("secret-b", "1700000000", body)
	assert.NotEqual(t, sig1, sig2)
}

func TestGenerateSignature_ChangesWithTimestamp(t *testing.T) {
	body := []byte(`{"hello":"world"}`)
	sig1 := generateSignature("secret", "1700000000", body)
	sig2 := generateSignature("secret", "1700000001", body)
	assert.NotEqual(t, sig1, sig2)
}

func TestSlackValidateConfig(t *testing.T) {
	n := NewSlackNotifier()

	require.NoError(t, n.ValidateConfig([]byte(`{"webhook_url":"https://hooks.slack.com/services/x"}`)))
	require.Error(t, n.ValidateConfig([]byte(`{"webhook_url":""}`)))
	require.Error(t, n.ValidateConfig([]byte(`{"webhook_url":"http://hooks.slack.com/x"}`))) // must be https
	require.Error(t, n.ValidateConfig([]byte(`{"webhook_url":"https://hooks.slack.com.evil.com/x"}`)))
}

func TestEscapeSlackMarkdown(t *testing.T) {
	assert.Equal(t, "a &amp; b", escapeSlackMarkdown("a & b"))
	assert.Equal(t, "&lt;script&gt;", escapeSlackMarkdown("<script>"))
	assert.Equal(t, "foo &amp; &lt;bar&gt;", escapeSlackMarkdown("foo & <bar>"))
}

func TestFormatSlackMessage_Structure(t *testing.T) {
	cfg := SlackConfig{WebhookURL: "https://hooks.slack.com/x", Channel: "#alerts", Username: "TestBot", IconEmoji: ":robot:"}
	payload := testPayload()

	msg := formatSlackMessage(cfg, payload)
	assert.Equal(t, "TestBot", msg["username"])
	assert.Equal(t, ":robot:", msg["icon_emoji"])
	assert.Equal(t, "#alerts", msg["channel"])
	assert.IsType(t, []map[string]interface{}{}, msg["blocks"])
}

func TestEmailValidateConfig(t *testing.T) {
	n := NewEmailNotifier("smtp.example.com", 587, "", "", "")

	require.NoError(t, n.ValidateConfig([]byte(`{"recipients":["a@example.com"]}`)))
	require.Error(t, n.ValidateConfig([]byte(`{"recipients":[]}`)))
	require.Error(t, n.ValidateConfig([]byte(`{"recipients":["not-an-email"]}`)))

	noGlobal := NewEmailNotifier("", 0, "", "", "")
	require.Error(t, noGlobal.ValidateConfig([]byte(`{"recipients":["a@example.com"]}`)))
	require.NoError(t, noGlobal.ValidateConfig([]byte(`{"recipients":["a@example.com"],"smtp_host":"smtp.example.com"}`)))
}

func TestFormatEmailText_ContainsKeyElements(t *testing.T) {
	text := formatEmailText(testPayload())
	assert.Contains(t, text, "Test Project")
	assert.Contains(t, text, "TEST-1")
	assert.Contains(t, text, "TypeError")
	assert.Contains(t, text, "https://example.com/issues/abc-123")
}

func TestFormatEmailHTML_ContainsKeyElements(t *testing.T) {
	html := formatEmailHTML(testPayload())
	assert.Contains(t, html, "Test Project")
	assert.Contains(t, html, "TEST-1")
	assert.Contains(t, html, "View Issue")
}

func TestHTMLEscape(t *testing.T) {
	assert.Equal(t, "&lt;script&gt;", htmlEscape("<script>"))
	assert.Equal(t, "a &amp; b", htmlEscape("a & b"))
	assert.Equal(t, "&quot;quote&quot;", htmlEscape("\"quote\""))
}

func TestBackoffWithJitter_Bounds(t *testing.T) {
	d := backoffWithJitter(1)
	assert.GreaterOrEqual(t, d, 60*time.Second)
	assert.Less(t, d, 67*time.Second) // 60s + up to 10% jitter

	capped := backoffWithJitter(10) // 60*2^9 far exceeds the 3600s cap
	assert.GreaterOrEqual(t, capped, 3600*time.Second)
	assert.Less(t, capped, 3960*time.Second)
}

func TestUpperSlug(t *testing.T) {
	assert.Equal(t, "MY-PROJECT", upperSlug("my-project"))
}

func TestAlertTypeDisplay(t *testing.T) {
	assert.Equal(t, "New Issue", alertTypeDisplay(db.AlertNewIssue))
	assert.Equal(t, "Regression", alertTypeDisplay(db.AlertRegression))
}

func TestValidateChannelConfig_UnknownType(t *testing.T) {
	d := &Dispatcher{notifiers: map[db.ChannelType]Notifier{}}
	err := d.ValidateChannelConfig(db.ChannelType("carrier_pigeon"), []byte(`{}`))
	require.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
}

func testPayload() AlertPayload {
	level := "error"
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	return AlertPayload{
		AlertID:     "test-123",
		AlertType:   db.AlertNewIssue,
		TriggeredAt: now,
		Project:     ProjectInfo{ID: 1, Name: "Test Project", Slug: "test-project"},
		Issue: IssueInfo{
			ID: "abc-123", ShortID: "TEST-1",
			Title: "TypeError: Cannot read property 'x' of undefined",
			Level: &level, FirstSeen: now, LastSeen: now, EventCount: 5,
		},
		IssueURL: "https://example.com/issues/abc-123",
		Actor:    "Rustrak",
	}
}
