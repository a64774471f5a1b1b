package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const projectColumns = `id, slug, name, sdk_key, stored_events, digested_event_count,
	quota_exceeded_until, quota_exceeded_reason, next_quota_check, created_at`

func scanProject(row interface{ Scan(...interface{}) error }) (Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.SDKKey, &p.StoredEvents, &p.DigestedEventCount,
		&p.QuotaExceededUntil, &p.QuotaExceededReason, &p.NextQuotaCheck, &p.CreatedAt)
	return p, err
}

func (q *Queries) GetProjectByID(ctx context.Context, id int32) (Project, error) {
	row := q.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	return scanProject(row)
}

func (q *Queries) GetProjectBySDKKey(ctx context.Context, sdkKey pgtype.UUID) (Project, error) {
	row := q.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE sdk_key = $1`, sdkKey)
	return scanProject(row)
}

func (q *Queries) GetProjectBySlug(ctx context.Context, slug string) (Project, error) {
	row := q.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE slug = $1`, slug)
	return scanProject(row)
}

func (q *Queries) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := q.db.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CreateProjectParams are the fields required to create a Project; the
// rate-limit memo starts fresh (no quota exceeded, next_quota_check = 1).
type CreateProjectParams struct {
	Slug   string
	Name   string
	SDKKey pgtype.UUID
}

const createProject = `
INSERT INTO projects (slug, name, sdk_key, stored_events, digested_event_count, next_quota_check)
VALUES ($1, $2, $3, 0, 0, 1)
RETURNING ` + projectColumns

func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (Project, error) {
	row := q.db.QueryRow(ctx, createProject, arg.Slug, arg.Name, arg.SDKKey)
	return scanProject(row)
}

func (q *Queries) DeleteProject(ctx context.Context, id int32) error {
	_, err := q.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

func (q *Queries) IncrementProjectStoredEvents(ctx context.Context, id int32) error {
	_, err := q.db.Exec(ctx, `UPDATE projects SET stored_events = stored_events + 1 WHERE id = $1`, id)
	return err
}

func (q *Queries) UpdateProjectQuotaIncrement(ctx context.Context, id int32) error {
	_, err := q.db.Exec(ctx, `UPDATE projects SET digested_event_count = digested_event_count + 1 WHERE id = $1`, id)
	return err
}

// UpdateProjectQuotaRecomputeParams carries an exact recomputation result.
type UpdateProjectQuotaRecomputeParams struct {
	ID                  int32
	QuotaExceededUntil  pgtype.Timestamptz
	QuotaExceededReason pgtype.Text
	NextQuotaCheck      int64
}

const updateProjectQuotaRecompute = `
UPDATE projects
SET digested_event_count = digested_event_count + 1,
    quota_exceeded_until = $2, quota_exceeded_reason = $3, next_quota_check = $4
WHERE id = $1`

func (q *Queries) UpdateProjectQuotaRecompute(ctx context.Context, arg UpdateProjectQuotaRecomputeParams) error {
	_, err := q.db.Exec(ctx, updateProjectQuotaRecompute, arg.ID, arg.QuotaExceededUntil, arg.QuotaExceededReason, arg.NextQuotaCheck)
	return err
}

// CountProjectEventsSinceParams scopes an event count to one project and
// window start.
type CountProjectEventsSinceParams struct {
	ProjectID int32
	Since     time.Time
}

const countProjectEventsSince = `SELECT COUNT(*) FROM events WHERE project_id = $1 AND ingested_at >= $2`

func (q *Queries) CountProjectEventsSince(ctx context.Context, arg CountProjectEventsSinceParams) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countProjectEventsSince, arg.ProjectID, arg.Since).Scan(&count)
	return count, err
}

const acquireProjectAdvisoryLock = `SELECT pg_advisory_xact_lock($1)`

// AcquireProjectAdvisoryLock takes a transaction-scoped advisory lock keyed
// on projectID, serializing issue creation within the project. Must be
// called within an open transaction; it is automatically released on
// commit or rollback.
func (q *Queries) AcquireProjectAdvisoryLock(ctx context.Context, projectID int32) error {
	_, err := q.db.Exec(ctx, acquireProjectAdvisoryLock, int64(projectID))
	return err
}
