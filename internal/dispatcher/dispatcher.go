// Package dispatcher implements alert rule matching, cooldown-gated
// triggering, and idempotent fan-out to pluggable notification channels,
// grounded in the reference services/alert.rs and the notification-service's
// webhook dispatcher for the HMAC-signing idiom.
package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/repository/db"
)

const maxRetryAttempts = int32(8)

// ProjectInfo is the project slice embedded in an AlertPayload.
type ProjectInfo struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// IssueInfo is the issue slice embedded in an AlertPayload.
type IssueInfo struct {
	ID         string    `json:"id"`
	ShortID    string    `json:"short_id"`
	Title      string    `json:"title"`
	Level      *string   `json:"level,omitempty"`
	FirstSeen  time.Time `json:"first_seen"`
	LastSeen   time.Time `json:"last_seen"`
	EventCount int32     `json:"event_count"`
}

// AlertPayload is the wire shape handed to every notifier, identical across
// channel types so a new channel type never touches the trigger algorithm.
type AlertPayload struct {
	AlertID     string      `json:"alert_id"`
	AlertType   db.AlertType `json:"alert_type"`
	TriggeredAt time.Time   `json:"triggered_at"`
	Project     ProjectInfo `json:"project"`
	Issue       IssueInfo   `json:"issue"`
	IssueURL    string      `json:"issue_url"`
	Actor       string      `json:"actor"`
}

// SendResult is the outcome of one notifier delivery attempt.
type SendResult struct {
	Success      bool
	HTTPStatus   *int32
	ErrorMessage string
}

// Notifier is the capability set every channel type implements: validate a
// channel's config at creation/update time, and attempt delivery at fan-out
// time. Adding a channel type means adding an implementation here, nothing
// else.
type Notifier interface {
	ValidateConfig(config []byte) error
	Send(ctx context.Context, channel db.NotificationChannel, payload AlertPayload) SendResult
}

// Begin is satisfied by *pgxpool.Pool, mirroring internal/digest's use of
// the same narrow interface for the rule+channel-link transaction.
type Begin interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Dispatcher owns channel/rule CRUD, alert triggering, and retry sweeping.
type Dispatcher struct {
	pool         Begin
	querier      db.Querier
	notifiers    map[db.ChannelType]Notifier
	dashboardURL string
	logger       *zap.Logger
	now          func() time.Time
}

// New constructs a Dispatcher with the default webhook/email/slack
// notifiers. dashboardURL is the management UI base URL used to build
// issue_url links.
func New(pool Begin, querier db.Querier, dashboardURL, smtpHost string, smtpPort int, smtpUsername, smtpPassword, smtpFrom string, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		pool:         pool,
		querier:      querier,
		dashboardURL: dashboardURL,
		logger:       logger,
		now:          time.Now,
		notifiers: map[db.ChannelType]Notifier{
			db.ChannelWebhook: NewWebhookNotifier(),
			db.ChannelSlack:   NewSlackNotifier(),
			db.ChannelEmail:   NewEmailNotifier(smtpHost, smtpPort, smtpUsername, smtpPassword, smtpFrom),
		},
	}
}

// ValidateChannelConfig dispatches to the notifier registered for
// channelType, erroring on an unknown type.
func (d *Dispatcher) ValidateChannelConfig(channelType db.ChannelType, config []byte) error {
	notifier, ok := d.notifiers[channelType]
	if !ok {
		return apperr.Validation(fmt.Sprintf("unknown channel type %q", channelType))
	}
	return notifier.ValidateConfig(config)
}

// CreateChannel validates config against the channel's own notifier before
// persisting it.
func (d *Dispatcher) CreateChannel(ctx context.Context, name string, channelType db.ChannelType, config []byte) (db.NotificationChannel, error) {
	if err := d.ValidateChannelConfig(channelType, config); err != nil {
		return db.NotificationChannel{}, err
	}
	channel, err := d.querier.CreateChannel(ctx, db.CreateChannelParams{Name: name, ChannelType: channelType, Config: config})
	if err != nil {
		return db.NotificationChannel{}, wrapConflict(err, "notification channel name already in use")
	}
	return channel, nil
}

// UpdateChannel re-validates config only when the caller supplies a new one.
func (d *Dispatcher) UpdateChannel(ctx context.Context, id int32, name pgtype.Text, config []byte, enabled pgtype.Bool) (db.NotificationChannel, error) {
	if config != nil {
		existing, err := d.querier.GetChannel(ctx, id)
		if err != nil {
			return db.NotificationChannel{}, apperr.NotFound("notification channel not found")
		}
		if err := d.ValidateChannelConfig(existing.ChannelType, config); err != nil {
			return db.NotificationChannel{}, err
		}
	}
	channel, err := d.querier.UpdateChannel(ctx, db.UpdateChannelParams{ID: id, Name: name, Config: config, Enabled: enabled})
	if err != nil {
		return db.NotificationChannel{}, apperr.Database(err)
	}
	return channel, nil
}

// CreateRule inserts a rule and links it to channelIDs inside one
// transaction; an FK violation on any channel id surfaces as NotFound.
func (d *Dispatcher) CreateRule(ctx context.Context, projectID int32, alertType db.AlertType, conditions []byte, cooldownMinutes int32, channelIDs []int32) (db.AlertRule, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return db.AlertRule{}, apperr.Database(err)
	}
	defer tx.Rollback(ctx)

	qtx := db.New(tx)
	rule, err := qtx.CreateRule(ctx, db.CreateRuleParams{
		ProjectID: projectID, AlertType: alertType, Conditions: conditions, CooldownMinutes: cooldownMinutes,
	})
	if err != nil {
		return db.AlertRule{}, wrapConflict(err, "a rule for this project and alert type already exists")
	}
	for _, channelID := range channelIDs {
		if err := qtx.LinkRuleChannel(ctx, rule.ID, channelID); err != nil {
			return db.AlertRule{}, apperr.NotFound(fmt.Sprintf("channel %d not found", channelID))
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return db.AlertRule{}, apperr.Database(err)
	}
	return rule, nil
}

// UpdateRule applies a partial field update and, when channelIDs is
// non-nil, replaces the rule's channel links wholesale.
func (d *Dispatcher) UpdateRule(ctx context.Context, id int32, enabled pgtype.Bool, conditions []byte, cooldownMinutes pgtype.Int4, channelIDs []int32) (db.AlertRule, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return db.AlertRule{}, apperr.Database(err)
	}
	defer tx.Rollback(ctx)

	qtx := db.New(tx)
	rule, err := qtx.UpdateRule(ctx, db.UpdateRuleParams{ID: id, Enabled: enabled, Conditions: conditions, CooldownMinutes: cooldownMinutes})
	if err != nil {
		return db.AlertRule{}, apperr.Database(err)
	}
	if channelIDs != nil {
		if err := qtx.UnlinkRuleChannels(ctx, id); err != nil {
			return db.AlertRule{}, apperr.Database(err)
		}
		for _, channelID := range channelIDs {
			if err := qtx.LinkRuleChannel(ctx, id, channelID); err != nil {
				return db.AlertRule{}, apperr.NotFound(fmt.Sprintf("channel %d not found", channelID))
			}
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return db.AlertRule{}, apperr.Database(err)
	}
	return rule, nil
}

func wrapConflict(err error, message string) error {
	if err == nil {
		return nil
	}
	// A unique_violation surfaces from pgx as a *pgconn.PgError with code
	// 23505; the db layer does not type-assert this itself so callers that
	// care about Conflict vs generic Database do it at this boundary.
	if isUniqueViolation(err) {
		return apperr.Conflict(message)
	}
	return apperr.Database(err)
}

// TriggerNewIssue satisfies internal/digest.AlertTrigger. It is invoked
// fire-and-forget from the digest worker's post-commit step, so failures
// are logged rather than propagated.
func (d *Dispatcher) TriggerNewIssue(ctx context.Context, projectID int32, issueID pgtype.UUID) {
	project, err := d.querier.GetProjectByID(ctx, projectID)
	if err != nil {
		d.logger.Error("trigger_new_issue: project lookup failed", zap.Error(err), zap.Int32("project_id", projectID))
		return
	}
	issue, err := d.querier.GetIssueByID(ctx, issueID)
	if err != nil {
		d.logger.Error("trigger_new_issue: issue lookup failed", zap.Error(err))
		return
	}
	if err := d.Trigger(ctx, project, issue, db.AlertNewIssue); err != nil {
		d.logger.Error("trigger_new_issue failed", zap.Error(err), zap.Int32("project_id", projectID))
	}
}

// Trigger runs the full rule-match, cooldown, and fan-out algorithm for one
// (project, issue, alert_type) occurrence.
func (d *Dispatcher) Trigger(ctx context.Context, project db.Project, issue db.Issue, alertType db.AlertType) error {
	rule, err := d.querier.GetEnabledRule(ctx, db.GetEnabledRuleParams{ProjectID: project.ID, AlertType: alertType})
	if err == pgx.ErrNoRows {
		return nil
	}
	if err != nil {
		return apperr.Database(err)
	}

	now := d.now()
	if rule.LastTriggeredAt.Valid && now.Sub(rule.LastTriggeredAt.Time) < time.Duration(rule.CooldownMinutes)*time.Minute {
		return nil
	}

	channels, err := d.querier.ListEnabledChannelsForRule(ctx, rule.ID)
	if err != nil {
		return apperr.Database(err)
	}
	if len(channels) == 0 {
		return nil
	}

	payload := buildPayload(project, issue, alertType, d.dashboardURL, now)

	if err := d.querier.TouchRuleLastTriggered(ctx, rule.ID); err != nil {
		d.logger.Error("touch rule last_triggered_at failed", zap.Error(err), zap.Int32("rule_id", rule.ID))
	}

	for _, channel := range channels {
		go d.dispatchToChannel(context.WithoutCancel(ctx), channel, payload, rule.ID)
	}
	return nil
}

func buildPayload(project db.Project, issue db.Issue, alertType db.AlertType, dashboardURL string, now time.Time) AlertPayload {
	issueID := uuidText(issue.ID)
	payload := AlertPayload{
		AlertID:     fmt.Sprintf("%d-%s-%d", project.ID, issueID, now.UnixMilli()),
		AlertType:   alertType,
		TriggeredAt: now,
		Project:     ProjectInfo{ID: project.ID, Name: project.Name, Slug: project.Slug},
		Issue: IssueInfo{
			ID:         issueID,
			ShortID:    fmt.Sprintf("%s-%d", upperSlug(project.Slug), issue.DigestOrder),
			Title:      issue.Title(),
			FirstSeen:  issue.FirstSeen,
			LastSeen:   issue.LastSeen,
			EventCount: issue.DigestedEvents,
		},
		Actor: "Rustrak",
	}
	if issue.Level.Valid {
		level := issue.Level.String
		payload.Issue.Level = &level
	}
	payload.IssueURL = fmt.Sprintf("%s/projects/%s/issues/%s", dashboardURL, project.Slug, issueID)
	return payload
}

func (d *Dispatcher) dispatchToChannel(ctx context.Context, channel db.NotificationChannel, payload AlertPayload, ruleID int32) {
	idempotencyKey := fmt.Sprintf("%s-%d", payload.AlertID, channel.ID)
	if _, err := d.querier.GetAlertHistoryByIdempotencyKey(ctx, idempotencyKey); err == nil {
		return // already dispatched to this channel for this alert
	}

	issueID := pgtypeUUIDFromString(payload.Issue.ID)
	history, err := d.querier.InsertAlertHistoryPending(ctx, db.InsertAlertHistoryPendingParams{
		AlertRuleID: ruleID, ChannelID: pgtype.Int4{Int32: channel.ID, Valid: true}, IssueID: issueID,
		ProjectID: payload.Project.ID, AlertType: payload.AlertType, ChannelType: channel.ChannelType,
		ChannelName: channel.Name, IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		d.logger.Error("insert alert history failed", zap.Error(err), zap.String("idempotency_key", idempotencyKey))
		return
	}

	notifier, ok := d.notifiers[channel.ChannelType]
	if !ok {
		d.logger.Error("no notifier registered for channel type", zap.String("channel_type", string(channel.ChannelType)))
		return
	}

	result := notifier.Send(ctx, channel, payload)
	if result.Success {
		if err := d.querier.MarkAlertHistorySent(ctx, db.MarkAlertHistorySentParams{ID: history.ID, HTTPStatusCode: optionalInt32(result.HTTPStatus)}); err != nil {
			d.logger.Error("mark alert history sent failed", zap.Error(err))
		}
		if err := d.querier.MarkChannelSuccess(ctx, channel.ID); err != nil {
			d.logger.Error("mark channel success failed", zap.Error(err))
		}
		return
	}

	nextRetry := d.now().Add(backoffWithJitter(1))
	if err := d.querier.MarkAlertHistoryRetry(ctx, db.MarkAlertHistoryRetryParams{
		ID: history.ID, AttemptCount: 1, ErrorMessage: textOf(result.ErrorMessage),
		HTTPStatusCode: optionalInt32(result.HTTPStatus), NextRetryAt: tsAt(nextRetry),
	}); err != nil {
		d.logger.Error("mark alert history retry failed", zap.Error(err))
	}
	if err := d.querier.MarkChannelFailure(ctx, db.MarkChannelFailureParams{ID: channel.ID, ErrorMessage: textOf(result.ErrorMessage)}); err != nil {
		d.logger.Error("mark channel failure failed", zap.Error(err))
	}
}

// backoffWithJitter computes min(3600, 60*2^(attempt-1)) seconds plus up to
// 10% uniform jitter.
func backoffWithJitter(attempt int32) time.Duration {
	delay := 60 * (int64(1) << (attempt - 1))
	if delay > 3600 {
		delay = 3600
	}
	jitter := time.Duration(rand.Int63n(int64(time.Duration(delay) * time.Second / 10)))
	return time.Duration(delay)*time.Second + jitter
}

// SweepRetries is invoked periodically (see cron scheduler) to redrive
// pending deliveries whose retry deadline has passed.
func (d *Dispatcher) SweepRetries(ctx context.Context) {
	pending, err := d.querier.ListPendingRetries(ctx, maxRetryAttempts)
	if err != nil {
		d.logger.Error("list pending retries failed", zap.Error(err))
		return
	}
	for _, h := range pending {
		d.retryOne(ctx, h)
	}
}

func (d *Dispatcher) retryOne(ctx context.Context, h db.AlertHistory) {
	if !h.ChannelID.Valid {
		if err := d.querier.MarkAlertHistoryFailed(ctx, db.MarkAlertHistoryFailedParams{ID: h.ID, ErrorMessage: textOf("Channel deleted")}); err != nil {
			d.logger.Error("mark alert history failed (channel deleted) error", zap.Error(err))
		}
		return
	}
	channel, err := d.querier.GetChannel(ctx, h.ChannelID.Int32)
	if err != nil {
		if err := d.querier.MarkAlertHistoryFailed(ctx, db.MarkAlertHistoryFailedParams{ID: h.ID, ErrorMessage: textOf("Channel deleted")}); err != nil {
			d.logger.Error("mark alert history failed (channel missing) error", zap.Error(err))
		}
		return
	}
	notifier, ok := d.notifiers[channel.ChannelType]
	if !ok {
		return
	}

	payload := AlertPayload{
		AlertID: h.IdempotencyKey[:max(0, len(h.IdempotencyKey)-len(fmt.Sprintf("-%d", channel.ID)))],
		AlertType: h.AlertType, TriggeredAt: h.CreatedAt, Actor: "Rustrak",
		Project: ProjectInfo{ID: h.ProjectID}, Issue: IssueInfo{ID: uuidText(h.IssueID)},
	}

	result := notifier.Send(ctx, channel, payload)
	if result.Success {
		if err := d.querier.MarkAlertHistorySent(ctx, db.MarkAlertHistorySentParams{ID: h.ID, HTTPStatusCode: optionalInt32(result.HTTPStatus)}); err != nil {
			d.logger.Error("mark alert history sent (retry) failed", zap.Error(err))
		}
		if err := d.querier.MarkChannelSuccess(ctx, channel.ID); err != nil {
			d.logger.Error("mark channel success (retry) failed", zap.Error(err))
		}
		return
	}

	attempt := h.AttemptCount + 1
	if attempt >= maxRetryAttempts {
		if err := d.querier.MarkAlertHistoryFailed(ctx, db.MarkAlertHistoryFailedParams{ID: h.ID, ErrorMessage: textOf(result.ErrorMessage)}); err != nil {
			d.logger.Error("mark alert history failed (retries exhausted) error", zap.Error(err))
		}
		return
	}
	nextRetry := d.now().Add(backoffWithJitter(attempt))
	if err := d.querier.MarkAlertHistoryRetry(ctx, db.MarkAlertHistoryRetryParams{
		ID: h.ID, AttemptCount: attempt, ErrorMessage: textOf(result.ErrorMessage),
		HTTPStatusCode: optionalInt32(result.HTTPStatus), NextRetryAt: tsAt(nextRetry),
	}); err != nil {
		d.logger.Error("mark alert history retry (resweep) failed", zap.Error(err))
	}
	if err := d.querier.MarkChannelFailure(ctx, db.MarkChannelFailureParams{ID: channel.ID, ErrorMessage: textOf(result.ErrorMessage)}); err != nil {
		d.logger.Error("mark channel failure (retry) failed", zap.Error(err))
	}
}

func upperSlug(slug string) string {
	out := make([]byte, len(slug))
	for i := 0; i < len(slug); i++ {
		c := slug[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

func uuidText(id pgtype.UUID) string {
	b, err := id.MarshalJSON()
	if err != nil {
		return ""
	}
	var s string
	_ = json.Unmarshal(b, &s)
	return s
}

func pgtypeUUIDFromString(s string) pgtype.UUID {
	var u pgtype.UUID
	_ = u.Scan(s)
	return u
}

func optionalInt32(v *int32) pgtype.Int4 {
	if v == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: *v, Valid: true}
}

func textOf(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func tsAt(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// isUniqueViolation reports whether err is a Postgres unique_violation
// (SQLSTATE 23505), the signal for CreateChannel/CreateRule name conflicts.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
