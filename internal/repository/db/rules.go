package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const ruleColumns = `id, project_id, alert_type, enabled, conditions, cooldown_minutes, last_triggered_at`

func scanRule(row interface{ Scan(...interface{}) error }) (AlertRule, error) {
	var r AlertRule
	err := row.Scan(&r.ID, &r.ProjectID, &r.AlertType, &r.Enabled, &r.Conditions, &r.CooldownMinutes, &r.LastTriggeredAt)
	return r, err
}

// GetEnabledRuleParams looks up the unique enabled rule for a
// (project, alert_type) pair.
type GetEnabledRuleParams struct {
	ProjectID int32
	AlertType AlertType
}

const getEnabledRule = `SELECT ` + ruleColumns + ` FROM alert_rules WHERE project_id = $1 AND alert_type = $2 AND enabled = true`

func (q *Queries) GetEnabledRule(ctx context.Context, arg GetEnabledRuleParams) (AlertRule, error) {
	row := q.db.QueryRow(ctx, getEnabledRule, arg.ProjectID, arg.AlertType)
	return scanRule(row)
}

func (q *Queries) TouchRuleLastTriggered(ctx context.Context, id int32) error {
	_, err := q.db.Exec(ctx, `UPDATE alert_rules SET last_triggered_at = NOW() WHERE id = $1`, id)
	return err
}

// CreateRuleParams creates an alert rule; (project_id, alert_type)
// uniqueness is enforced by the schema and surfaces as apperr.Conflict.
type CreateRuleParams struct {
	ProjectID       int32
	AlertType       AlertType
	Conditions      []byte
	CooldownMinutes int32
}

const createRule = `
INSERT INTO alert_rules (project_id, alert_type, enabled, conditions, cooldown_minutes)
VALUES ($1, $2, true, $3, $4)
RETURNING ` + ruleColumns

func (q *Queries) CreateRule(ctx context.Context, arg CreateRuleParams) (AlertRule, error) {
	row := q.db.QueryRow(ctx, createRule, arg.ProjectID, arg.AlertType, arg.Conditions, arg.CooldownMinutes)
	return scanRule(row)
}

func (q *Queries) ListRules(ctx context.Context, projectID int32) ([]AlertRule, error) {
	rows, err := q.db.Query(ctx, `SELECT `+ruleColumns+` FROM alert_rules WHERE project_id = $1 ORDER BY id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AlertRule
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpdateRuleParams applies a partial update; zero-value fields leave the
// column unchanged via COALESCE, mirroring UpdateChannelParams.
type UpdateRuleParams struct {
	ID              int32
	Enabled         pgtype.Bool
	Conditions      []byte
	CooldownMinutes pgtype.Int4
}

const updateRule = `
UPDATE alert_rules
SET enabled = COALESCE($2, enabled),
    conditions = COALESCE($3, conditions),
    cooldown_minutes = COALESCE($4, cooldown_minutes)
WHERE id = $1
RETURNING ` + ruleColumns

func (q *Queries) UpdateRule(ctx context.Context, arg UpdateRuleParams) (AlertRule, error) {
	row := q.db.QueryRow(ctx, updateRule, arg.ID, arg.Enabled, arg.Conditions, arg.CooldownMinutes)
	return scanRule(row)
}

func (q *Queries) GetRule(ctx context.Context, id int32) (AlertRule, error) {
	row := q.db.QueryRow(ctx, `SELECT `+ruleColumns+` FROM alert_rules WHERE id = $1`, id)
	return scanRule(row)
}

func (q *Queries) DeleteRule(ctx context.Context, id int32) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM alert_rules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRows
	}
	return nil
}

// LinkRuleChannel inserts one (alert_rule_id, channel_id) join row; a
// foreign-key violation on channel_id surfaces as the caller's NotFound.
func (q *Queries) LinkRuleChannel(ctx context.Context, ruleID, channelID int32) error {
	_, err := q.db.Exec(ctx, `INSERT INTO alert_rule_channels (alert_rule_id, channel_id) VALUES ($1, $2)`, ruleID, channelID)
	return err
}

// UnlinkRuleChannels removes every channel link for a rule, the first half
// of the update's delete-then-reinsert replacement strategy.
func (q *Queries) UnlinkRuleChannels(ctx context.Context, ruleID int32) error {
	_, err := q.db.Exec(ctx, `DELETE FROM alert_rule_channels WHERE alert_rule_id = $1`, ruleID)
	return err
}
