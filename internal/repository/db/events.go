package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const eventColumns = `id, event_id, project_id, issue_id, grouping_id, data, timestamp, ingested_at, digest_order,
	calculated_type, calculated_value, transaction, last_frame_filename, last_frame_module, last_frame_function,
	level, platform, release, environment, server_name, sdk_name, sdk_version, remote_addr`

func scanEvent(row interface{ Scan(...interface{}) error }) (Event, error) {
	var e Event
	err := row.Scan(&e.ID, &e.EventID, &e.ProjectID, &e.IssueID, &e.GroupingID, &e.Data, &e.Timestamp, &e.IngestedAt, &e.DigestOrder,
		&e.CalculatedType, &e.CalculatedValue, &e.Transaction, &e.LastFrameFilename, &e.LastFrameModule, &e.LastFrameFunction,
		&e.Level, &e.Platform, &e.Release, &e.Environment, &e.ServerName, &e.SDKName, &e.SDKVersion, &e.RemoteAddr)
	return e, err
}

// GetEventByProjectAndEventIDParams looks up an Event by the SDK-supplied
// event_id, scoped to the owning project, for duplicate-suppression checks.
type GetEventByProjectAndEventIDParams struct {
	ProjectID int32
	EventID   pgtype.UUID
}

const getEventByProjectAndEventID = `SELECT ` + eventColumns + ` FROM events WHERE project_id = $1 AND event_id = $2`

func (q *Queries) GetEventByProjectAndEventID(ctx context.Context, arg GetEventByProjectAndEventIDParams) (Event, error) {
	row := q.db.QueryRow(ctx, getEventByProjectAndEventID, arg.ProjectID, arg.EventID)
	return scanEvent(row)
}

// InsertEventParams creates the Event row for a digested payload.
type InsertEventParams struct {
	ID                pgtype.UUID
	EventID           pgtype.UUID
	ProjectID         int32
	IssueID           pgtype.UUID
	GroupingID        int32
	Data              []byte
	Timestamp         pgtype.Timestamptz
	IngestedAt        pgtype.Timestamptz
	DigestOrder       int32
	CalculatedType    string
	CalculatedValue   string
	Transaction       string
	LastFrameFilename string
	LastFrameModule   string
	LastFrameFunction string
	Level             pgtype.Text
	Platform          pgtype.Text
	Release           pgtype.Text
	Environment       pgtype.Text
	ServerName        pgtype.Text
	SDKName           pgtype.Text
	SDKVersion        pgtype.Text
	RemoteAddr        pgtype.Text
}

const insertEvent = `
INSERT INTO events (id, event_id, project_id, issue_id, grouping_id, data, timestamp, ingested_at, digest_order,
	calculated_type, calculated_value, transaction, last_frame_filename, last_frame_module, last_frame_function,
	level, platform, release, environment, server_name, sdk_name, sdk_version, remote_addr)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
RETURNING ` + eventColumns

func (q *Queries) InsertEvent(ctx context.Context, arg InsertEventParams) (Event, error) {
	row := q.db.QueryRow(ctx, insertEvent,
		arg.ID, arg.EventID, arg.ProjectID, arg.IssueID, arg.GroupingID, arg.Data, arg.Timestamp, arg.IngestedAt, arg.DigestOrder,
		arg.CalculatedType, arg.CalculatedValue, arg.Transaction, arg.LastFrameFilename, arg.LastFrameModule, arg.LastFrameFunction,
		arg.Level, arg.Platform, arg.Release, arg.Environment, arg.ServerName, arg.SDKName, arg.SDKVersion, arg.RemoteAddr)
	return scanEvent(row)
}

// ListEventsKeysetParams drives the cursor-paginated event listing of §4.I.
// AfterDigestOrder / BeforeDigestOrder are mutually exclusive keyset bounds;
// zero means "no bound" (first page).
type ListEventsKeysetParams struct {
	IssueID           pgtype.UUID
	Direction         string // asc | desc
	AfterDigestOrder  int32
	BeforeDigestOrder int32
	Limit             int32
}

func (q *Queries) ListEventsKeyset(ctx context.Context, arg ListEventsKeysetParams) ([]Event, error) {
	where := "issue_id = $1"
	args := []interface{}{arg.IssueID}
	argN := 2

	if arg.AfterDigestOrder != 0 {
		op := ">"
		if arg.Direction == "desc" {
			op = "<"
		}
		where += " AND digest_order " + op + " $" + itoa(argN)
		args = append(args, arg.AfterDigestOrder)
		argN++
	}
	if arg.BeforeDigestOrder != 0 {
		op := "<"
		if arg.Direction == "desc" {
			op = ">"
		}
		where += " AND digest_order " + op + " $" + itoa(argN)
		args = append(args, arg.BeforeDigestOrder)
		argN++
	}

	order := "ASC"
	if arg.Direction == "desc" {
		order = "DESC"
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE ` + where +
		` ORDER BY digest_order ` + order + ` LIMIT $` + itoa(argN)
	args = append(args, arg.Limit)

	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := make([]byte, 0, 4)
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
