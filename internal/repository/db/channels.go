package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const channelColumns = `id, name, channel_type, config, enabled, failure_count, last_failure_at, last_failure_message, last_success_at`

func scanChannel(row interface{ Scan(...interface{}) error }) (NotificationChannel, error) {
	var c NotificationChannel
	err := row.Scan(&c.ID, &c.Name, &c.ChannelType, &c.Config, &c.Enabled, &c.FailureCount,
		&c.LastFailureAt, &c.LastFailureMessage, &c.LastSuccessAt)
	return c, err
}

// CreateChannelParams creates a notification channel after its config has
// been validated by the matching dispatcher (see internal/dispatcher).
type CreateChannelParams struct {
	Name        string
	ChannelType ChannelType
	Config      []byte
}

const createChannel = `
INSERT INTO notification_channels (name, channel_type, config, enabled, failure_count)
VALUES ($1, $2, $3, true, 0)
RETURNING ` + channelColumns

func (q *Queries) CreateChannel(ctx context.Context, arg CreateChannelParams) (NotificationChannel, error) {
	row := q.db.QueryRow(ctx, createChannel, arg.Name, arg.ChannelType, arg.Config)
	return scanChannel(row)
}

func (q *Queries) ListChannels(ctx context.Context) ([]NotificationChannel, error) {
	rows, err := q.db.Query(ctx, `SELECT `+channelColumns+` FROM notification_channels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []NotificationChannel
	for rows.Next() {
		c, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (q *Queries) GetChannel(ctx context.Context, id int32) (NotificationChannel, error) {
	row := q.db.QueryRow(ctx, `SELECT `+channelColumns+` FROM notification_channels WHERE id = $1`, id)
	return scanChannel(row)
}

// UpdateChannelParams applies a partial update; zero-value Config/Name
// leave the column unchanged via COALESCE, following the teacher's
// partial-update convention.
type UpdateChannelParams struct {
	ID      int32
	Name    pgtype.Text
	Config  []byte
	Enabled pgtype.Bool
}

const updateChannel = `
UPDATE notification_channels
SET name = COALESCE($2, name),
    config = COALESCE($3, config),
    enabled = COALESCE($4, enabled)
WHERE id = $1
RETURNING ` + channelColumns

func (q *Queries) UpdateChannel(ctx context.Context, arg UpdateChannelParams) (NotificationChannel, error) {
	row := q.db.QueryRow(ctx, updateChannel, arg.ID, arg.Name, arg.Config, arg.Enabled)
	return scanChannel(row)
}

func (q *Queries) DeleteChannel(ctx context.Context, id int32) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM notification_channels WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRows
	}
	return nil
}

func (q *Queries) ListEnabledChannelsForRule(ctx context.Context, ruleID int32) ([]NotificationChannel, error) {
	query := `
SELECT nc.` + channelColumnsAliased() + `
FROM notification_channels nc
INNER JOIN alert_rule_channels arc ON nc.id = arc.channel_id
WHERE arc.alert_rule_id = $1 AND nc.enabled = true`

	rows, err := q.db.Query(ctx, query, ruleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []NotificationChannel
	for rows.Next() {
		c, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func channelColumnsAliased() string {
	return "id, name, channel_type, config, enabled, failure_count, last_failure_at, last_failure_message, last_success_at"
}

func (q *Queries) MarkChannelSuccess(ctx context.Context, id int32) error {
	_, err := q.db.Exec(ctx, `UPDATE notification_channels SET last_success_at = NOW(), failure_count = 0 WHERE id = $1`, id)
	return err
}

// MarkChannelFailureParams records a delivery failure against a channel.
type MarkChannelFailureParams struct {
	ID           int32
	ErrorMessage pgtype.Text
}

func (q *Queries) MarkChannelFailure(ctx context.Context, arg MarkChannelFailureParams) error {
	_, err := q.db.Exec(ctx, `
UPDATE notification_channels
SET last_failure_at = NOW(), last_failure_message = $2, failure_count = failure_count + 1
WHERE id = $1`, arg.ID, arg.ErrorMessage)
	return err
}
