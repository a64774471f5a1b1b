package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const issueColumns = `id, project_id, digest_order, first_seen, last_seen, digested_events, stored_events,
	calculated_type, calculated_value, transaction, last_frame_filename, last_frame_module, last_frame_function,
	level, platform, resolved, muted, deleted`

func scanIssue(row interface{ Scan(...interface{}) error }) (Issue, error) {
	var i Issue
	err := row.Scan(&i.ID, &i.ProjectID, &i.DigestOrder, &i.FirstSeen, &i.LastSeen, &i.DigestedEvents, &i.StoredEvents,
		&i.CalculatedType, &i.CalculatedValue, &i.Transaction, &i.LastFrameFilename, &i.LastFrameModule, &i.LastFrameFunction,
		&i.Level, &i.Platform, &i.Resolved, &i.Muted, &i.Deleted)
	return i, err
}

// GetGroupingByHashParams looks up a Grouping by its project-scoped hash.
type GetGroupingByHashParams struct {
	ProjectID       int32
	GroupingKeyHash string
}

const getGroupingByHash = `SELECT id, project_id, issue_id, grouping_key, grouping_key_hash
FROM groupings WHERE project_id = $1 AND grouping_key_hash = $2`

func (q *Queries) GetGroupingByHash(ctx context.Context, arg GetGroupingByHashParams) (Grouping, error) {
	var g Grouping
	row := q.db.QueryRow(ctx, getGroupingByHash, arg.ProjectID, arg.GroupingKeyHash)
	err := row.Scan(&g.ID, &g.ProjectID, &g.IssueID, &g.GroupingKey, &g.GroupingKeyHash)
	return g, err
}

// InsertGroupingParams creates the grouping-key-to-issue mapping row.
type InsertGroupingParams struct {
	ProjectID       int32
	IssueID         pgtype.UUID
	GroupingKey     string
	GroupingKeyHash string
}

const insertGrouping = `
INSERT INTO groupings (project_id, issue_id, grouping_key, grouping_key_hash)
VALUES ($1, $2, $3, $4)
RETURNING id, project_id, issue_id, grouping_key, grouping_key_hash`

func (q *Queries) InsertGrouping(ctx context.Context, arg InsertGroupingParams) (Grouping, error) {
	var g Grouping
	row := q.db.QueryRow(ctx, insertGrouping, arg.ProjectID, arg.IssueID, arg.GroupingKey, arg.GroupingKeyHash)
	err := row.Scan(&g.ID, &g.ProjectID, &g.IssueID, &g.GroupingKey, &g.GroupingKeyHash)
	return g, err
}

// GetIssueForUpdate locks the issue row (FOR UPDATE) within the caller's
// transaction so its counters can be incremented safely; callers already
// hold the per-project advisory lock, so this is belt-and-suspenders.
func (q *Queries) GetIssueForUpdate(ctx context.Context, id pgtype.UUID) (Issue, error) {
	row := q.db.QueryRow(ctx, `SELECT `+issueColumns+` FROM issues WHERE id = $1 FOR UPDATE`, id)
	return scanIssue(row)
}

func (q *Queries) GetIssueByID(ctx context.Context, id pgtype.UUID) (Issue, error) {
	row := q.db.QueryRow(ctx, `SELECT `+issueColumns+` FROM issues WHERE id = $1`, id)
	return scanIssue(row)
}

const getMaxDigestOrder = `SELECT COALESCE(MAX(digest_order), 0) FROM issues WHERE project_id = $1`

func (q *Queries) GetMaxDigestOrder(ctx context.Context, projectID int32) (int32, error) {
	var max int32
	err := q.db.QueryRow(ctx, getMaxDigestOrder, projectID).Scan(&max)
	return max, err
}

// InsertIssueParams creates a new Issue for a first-seen grouping.
type InsertIssueParams struct {
	ID                pgtype.UUID
	ProjectID         int32
	DigestOrder       int32
	FirstSeen         pgtype.Timestamptz
	LastSeen          pgtype.Timestamptz
	CalculatedType    string
	CalculatedValue   string
	Transaction       string
	LastFrameFilename string
	LastFrameModule   string
	LastFrameFunction string
	Level             pgtype.Text
	Platform          pgtype.Text
}

const insertIssue = `
INSERT INTO issues (id, project_id, digest_order, first_seen, last_seen, digested_events, stored_events,
	calculated_type, calculated_value, transaction, last_frame_filename, last_frame_module, last_frame_function,
	level, platform, resolved, muted, deleted)
VALUES ($1, $2, $3, $4, $5, 1, 1, $6, $7, $8, $9, $10, $11, $12, $13, false, false, false)
RETURNING ` + issueColumns

func (q *Queries) InsertIssue(ctx context.Context, arg InsertIssueParams) (Issue, error) {
	row := q.db.QueryRow(ctx, insertIssue, arg.ID, arg.ProjectID, arg.DigestOrder, arg.FirstSeen, arg.LastSeen,
		arg.CalculatedType, arg.CalculatedValue, arg.Transaction, arg.LastFrameFilename, arg.LastFrameModule,
		arg.LastFrameFunction, arg.Level, arg.Platform)
	return scanIssue(row)
}

// IncrementIssueCountersParams updates an existing issue's digest counters
// on a grouping-key hit.
type IncrementIssueCountersParams struct {
	ID       pgtype.UUID
	LastSeen pgtype.Timestamptz
}

const incrementIssueCounters = `
UPDATE issues
SET digested_events = digested_events + 1, stored_events = stored_events + 1, last_seen = $2
WHERE id = $1
RETURNING ` + issueColumns

func (q *Queries) IncrementIssueCounters(ctx context.Context, arg IncrementIssueCountersParams) (Issue, error) {
	row := q.db.QueryRow(ctx, incrementIssueCounters, arg.ID, arg.LastSeen)
	return scanIssue(row)
}

// ListIssuesParams drives the offset-paginated issue listing of §4.I.
type ListIssuesParams struct {
	ProjectID int32
	Filter    string // open | resolved | muted | all
	Sort      string // digest_order | last_seen
	Order     string // asc | desc
	Limit     int32
	Offset    int32
}

func (q *Queries) ListIssues(ctx context.Context, arg ListIssuesParams) ([]Issue, error) {
	query, args := buildIssueListQuery(arg, false)
	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Issue
	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// CountIssuesParams mirrors ListIssuesParams' filter for total_count.
type CountIssuesParams struct {
	ProjectID int32
	Filter    string
}

func (q *Queries) CountIssues(ctx context.Context, arg CountIssuesParams) (int64, error) {
	query, args := buildIssueListQuery(ListIssuesParams{ProjectID: arg.ProjectID, Filter: arg.Filter}, true)
	var count int64
	err := q.db.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}

func buildIssueListQuery(arg ListIssuesParams, countOnly bool) (string, []interface{}) {
	where := "project_id = $1 AND deleted = false"
	switch arg.Filter {
	case "resolved":
		where += " AND resolved = true"
	case "muted":
		where += " AND muted = true AND resolved = false"
	case "all":
		// no further restriction beyond excluding deleted
	default: // "open"
		where += " AND resolved = false AND muted = false"
	}

	if countOnly {
		return `SELECT COUNT(*) FROM issues WHERE ` + where, []interface{}{arg.ProjectID}
	}

	sortCol := "digest_order"
	if arg.Sort == "last_seen" {
		sortCol = "last_seen"
	}
	order := "ASC"
	if arg.Order == "desc" {
		order = "DESC"
	}
	// last_seen ties break by id in the same direction.
	orderBy := sortCol + " " + order
	if sortCol == "last_seen" {
		orderBy += ", id " + order
	}

	query := `SELECT ` + issueColumns + ` FROM issues WHERE ` + where +
		` ORDER BY ` + orderBy + ` LIMIT $2 OFFSET $3`
	return query, []interface{}{arg.ProjectID, arg.Limit, arg.Offset}
}

// SetIssueStateParams applies a resolve/unresolve/mute/unmute/delete
// mutation, already validated against the resolved/muted lattice by the
// caller.
type SetIssueStateParams struct {
	ID       pgtype.UUID
	Resolved bool
	Muted    bool
	Deleted  bool
}

const setIssueState = `
UPDATE issues SET resolved = $2, muted = $3, deleted = $4
WHERE id = $1
RETURNING ` + issueColumns

func (q *Queries) SetIssueState(ctx context.Context, arg SetIssueStateParams) (Issue, error) {
	row := q.db.QueryRow(ctx, setIssueState, arg.ID, arg.Resolved, arg.Muted, arg.Deleted)
	return scanIssue(row)
}
