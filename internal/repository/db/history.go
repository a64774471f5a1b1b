package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const historyColumns = `id, alert_rule_id, channel_id, issue_id, project_id, alert_type, channel_type, channel_name,
	status, attempt_count, next_retry_at, error_message, http_status_code, idempotency_key, created_at, sent_at`

func scanHistory(row interface{ Scan(...interface{}) error }) (AlertHistory, error) {
	var h AlertHistory
	err := row.Scan(&h.ID, &h.AlertRuleID, &h.ChannelID, &h.IssueID, &h.ProjectID, &h.AlertType, &h.ChannelType, &h.ChannelName,
		&h.Status, &h.AttemptCount, &h.NextRetryAt, &h.ErrorMessage, &h.HTTPStatusCode, &h.IdempotencyKey, &h.CreatedAt, &h.SentAt)
	return h, err
}

const getAlertHistoryByIdempotencyKey = `SELECT ` + historyColumns + ` FROM alert_history WHERE idempotency_key = $1`

func (q *Queries) GetAlertHistoryByIdempotencyKey(ctx context.Context, key string) (AlertHistory, error) {
	row := q.db.QueryRow(ctx, getAlertHistoryByIdempotencyKey, key)
	return scanHistory(row)
}

// InsertAlertHistoryPendingParams records the initial pending row for a
// dispatch attempt; idempotency_key's unique constraint is the sole
// deduplication primitive for alert fan-out (§4.J).
type InsertAlertHistoryPendingParams struct {
	AlertRuleID    int32
	ChannelID      pgtype.Int4
	IssueID        pgtype.UUID
	ProjectID      int32
	AlertType      AlertType
	ChannelType    ChannelType
	ChannelName    string
	IdempotencyKey string
}

const insertAlertHistoryPending = `
INSERT INTO alert_history (alert_rule_id, channel_id, issue_id, project_id, alert_type, channel_type, channel_name, status, idempotency_key)
VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending', $8)
RETURNING ` + historyColumns

func (q *Queries) InsertAlertHistoryPending(ctx context.Context, arg InsertAlertHistoryPendingParams) (AlertHistory, error) {
	row := q.db.QueryRow(ctx, insertAlertHistoryPending,
		arg.AlertRuleID, arg.ChannelID, arg.IssueID, arg.ProjectID, arg.AlertType, arg.ChannelType, arg.ChannelName, arg.IdempotencyKey)
	return scanHistory(row)
}

// MarkAlertHistorySentParams records a successful delivery.
type MarkAlertHistorySentParams struct {
	ID             int64
	HTTPStatusCode pgtype.Int4
}

const markAlertHistorySent = `UPDATE alert_history SET status = 'sent', sent_at = NOW(), http_status_code = $2 WHERE id = $1`

func (q *Queries) MarkAlertHistorySent(ctx context.Context, arg MarkAlertHistorySentParams) error {
	_, err := q.db.Exec(ctx, markAlertHistorySent, arg.ID, arg.HTTPStatusCode)
	return err
}

// MarkAlertHistoryRetryParams records a failed delivery attempt and
// schedules the next retry with exponential backoff plus jitter.
type MarkAlertHistoryRetryParams struct {
	ID             int64
	AttemptCount   int32
	ErrorMessage   pgtype.Text
	HTTPStatusCode pgtype.Int4
	NextRetryAt    pgtype.Timestamptz
}

const markAlertHistoryRetry = `
UPDATE alert_history
SET status = 'pending', attempt_count = $2, error_message = $3, http_status_code = $4, next_retry_at = $5
WHERE id = $1`

func (q *Queries) MarkAlertHistoryRetry(ctx context.Context, arg MarkAlertHistoryRetryParams) error {
	_, err := q.db.Exec(ctx, markAlertHistoryRetry, arg.ID, arg.AttemptCount, arg.ErrorMessage, arg.HTTPStatusCode, arg.NextRetryAt)
	return err
}

// MarkAlertHistoryFailedParams terminates a row that exhausted its
// retries or whose channel was deleted.
type MarkAlertHistoryFailedParams struct {
	ID           int64
	ErrorMessage pgtype.Text
}

const markAlertHistoryFailed = `UPDATE alert_history SET status = 'failed', error_message = $2 WHERE id = $1`

func (q *Queries) MarkAlertHistoryFailed(ctx context.Context, arg MarkAlertHistoryFailedParams) error {
	_, err := q.db.Exec(ctx, markAlertHistoryFailed, arg.ID, arg.ErrorMessage)
	return err
}

// ListAlertHistoryByProjectParams drives the management API's alert
// history listing for one project, newest first.
type ListAlertHistoryByProjectParams struct {
	ProjectID int32
	Limit     int32
	Offset    int32
}

const listAlertHistoryByProject = `
SELECT ` + historyColumns + `
FROM alert_history
WHERE project_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

func (q *Queries) ListAlertHistoryByProject(ctx context.Context, arg ListAlertHistoryByProjectParams) ([]AlertHistory, error) {
	rows, err := q.db.Query(ctx, listAlertHistoryByProject, arg.ProjectID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AlertHistory
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

const countAlertHistoryByProject = `SELECT COUNT(*) FROM alert_history WHERE project_id = $1`

func (q *Queries) CountAlertHistoryByProject(ctx context.Context, projectID int32) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countAlertHistoryByProject, projectID).Scan(&count)
	return count, err
}

const listPendingRetries = `
SELECT ` + historyColumns + `
FROM alert_history
WHERE status = 'pending' AND next_retry_at <= NOW() AND attempt_count < $1
ORDER BY next_retry_at`

func (q *Queries) ListPendingRetries(ctx context.Context, maxAttempts int32) ([]AlertHistory, error) {
	rows, err := q.db.Query(ctx, listPendingRetries, maxAttempts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AlertHistory
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
