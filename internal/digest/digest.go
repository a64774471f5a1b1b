// Package digest implements the transactional digest worker: it turns one
// spooled ingest payload into an Issue/Grouping/Event write, grounded in the
// reference DigestService and its per-project advisory-lock serialization.
package digest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/grouping"
	"github.com/arc-self/rustrak/internal/ratelimit"
	"github.com/arc-self/rustrak/internal/repository/db"
	"github.com/arc-self/rustrak/internal/spool"
)

// Begin is satisfied by *pgxpool.Pool; it is the one capability the digest
// worker needs beyond db.Querier, to run step 5-8 inside a transaction that
// also holds the per-project advisory lock.
type Begin interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// AlertTrigger schedules alert dispatch for a newly created issue. It is an
// interface (rather than a direct internal/dispatcher import) to avoid a
// digest<->dispatcher import cycle; cmd/server wires the concrete dispatcher.
type AlertTrigger interface {
	TriggerNewIssue(ctx context.Context, projectID int32, issueID pgtype.UUID)
}

// Worker processes one spooled event end to end.
type Worker struct {
	pool      Begin
	querier   db.Querier
	rateLimit *ratelimit.Controller
	spool     *spool.Store
	alerts    AlertTrigger
	logger    *zap.Logger
	now       func() time.Time
}

// New constructs a Worker. querier must be backed by the same pool as
// pool, so that non-transactional reads/writes (step 9) observe the
// transaction's effects once committed.
func New(pool Begin, querier db.Querier, rateLimit *ratelimit.Controller, store *spool.Store, alerts AlertTrigger, logger *zap.Logger) *Worker {
	return &Worker{pool: pool, querier: querier, rateLimit: rateLimit, spool: store, alerts: alerts, logger: logger, now: time.Now}
}

// Process runs the full digest algorithm for eventID (the spool filename
// key), per the reference service's step numbering.
func (w *Worker) Process(ctx context.Context, projectID int32, eventID string) error {
	// Step 0: admission.
	rejection, err := w.rateLimit.CheckAdmission(ctx, projectID)
	if err != nil {
		return err
	}
	if rejection != nil {
		return w.spool.Delete(eventID)
	}

	project, err := w.querier.GetProjectByID(ctx, projectID)
	if err != nil {
		return apperr.Database(err)
	}

	// Step 1: load + parse spool payload.
	raw, err := w.spool.Read(eventID)
	if err != nil {
		return apperr.Database(err)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return apperr.Validation("spooled event payload is not a JSON object")
	}

	// Step 2: parse event_id.
	eventUUID, err := parseEventID(payload)
	if err != nil {
		return err
	}

	// Step 3: duplicate suppression short-circuit.
	var eventUUIDPg pgtype.UUID
	_ = eventUUIDPg.Scan(eventUUID.String())
	if _, err := w.querier.GetEventByProjectAndEventID(ctx, db.GetEventByProjectAndEventIDParams{
		ProjectID: projectID, EventID: eventUUIDPg,
	}); err == nil {
		return w.spool.Delete(eventID)
	}

	// Step 4: grouping key + denormalized fields.
	groupingKey, groupingHash := grouping.Key(payload)
	fields := grouping.DenormalizedFields(payload)

	ingestedAt := ingestedAtOf(payload, w.now())
	eventTimestamp := timestampOf(payload, ingestedAt)
	level := optionalString(payload, "level")
	platform := optionalString(payload, "platform")
	release := optionalString(payload, "release")
	environment := optionalString(payload, "environment")
	serverName := optionalString(payload, "server_name")
	sdkName, sdkVersion := sdkInfo(payload)
	remoteAddr := optionalString(payload, "remote_addr")

	// Steps 5-8: transactional issue/grouping/event write.
	issueID, issueCreated, err := w.writeTransactional(ctx, projectID, groupingKey, groupingHash, fields, eventUUIDPg,
		raw, ingestedAt, eventTimestamp, level, platform, release, environment, serverName, sdkName, sdkVersion, remoteAddr)
	if err != nil {
		return err
	}

	// Step 9: post-commit side effects.
	if err := w.querier.IncrementProjectStoredEvents(ctx, projectID); err != nil {
		w.logger.Error("increment project stored_events failed", zap.Error(err), zap.Int32("project_id", projectID))
	}
	if err := w.rateLimit.UpdateState(ctx, projectID); err != nil {
		w.logger.Error("rate limit state update failed", zap.Error(err), zap.Int32("project_id", projectID))
	}
	if err := w.spool.Delete(eventID); err != nil {
		w.logger.Error("spool delete failed", zap.Error(err), zap.String("event_id", eventID))
	}
	if issueCreated && w.alerts != nil {
		w.alerts.TriggerNewIssue(ctx, project.ID, issueID)
	}

	return nil
}

func (w *Worker) writeTransactional(
	ctx context.Context, projectID int32, groupingKey, groupingHash string, fields grouping.Fields,
	eventUUIDPg pgtype.UUID, raw []byte, ingestedAt, eventTimestamp time.Time,
	level, platform, release, environment, serverName, sdkName, sdkVersion, remoteAddr pgtype.Text,
) (pgtype.UUID, bool, error) {
	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return pgtype.UUID{}, false, apperr.Database(err)
	}
	defer tx.Rollback(ctx)

	qtx := db.New(tx)

	if err := qtx.AcquireProjectAdvisoryLock(ctx, projectID); err != nil {
		return pgtype.UUID{}, false, apperr.Database(err)
	}

	var issueID pgtype.UUID
	var issueCreated bool
	var groupingID int32
	var eventDigestOrder int32

	existing, err := qtx.GetGroupingByHash(ctx, db.GetGroupingByHashParams{ProjectID: projectID, GroupingKeyHash: groupingHash})
	switch {
	case err == nil:
		issueID = existing.IssueID
		groupingID = existing.ID
		if _, err := qtx.GetIssueForUpdate(ctx, issueID); err != nil {
			return pgtype.UUID{}, false, apperr.Database(err)
		}
		updated, err := qtx.IncrementIssueCounters(ctx, db.IncrementIssueCountersParams{ID: issueID, LastSeen: tsAt(ingestedAt)})
		if err != nil {
			return pgtype.UUID{}, false, apperr.Database(err)
		}
		eventDigestOrder = updated.DigestedEvents
		issueCreated = false

	case err == pgx.ErrNoRows:
		maxOrder, err := qtx.GetMaxDigestOrder(ctx, projectID)
		if err != nil {
			return pgtype.UUID{}, false, apperr.Database(err)
		}
		newIssueID := newUUIDPg()
		issue, err := qtx.InsertIssue(ctx, db.InsertIssueParams{
			ID: newIssueID, ProjectID: projectID, DigestOrder: maxOrder + 1,
			FirstSeen: tsAt(ingestedAt), LastSeen: tsAt(ingestedAt),
			CalculatedType: fields.CalculatedType, CalculatedValue: fields.CalculatedValue, Transaction: fields.Transaction,
			LastFrameFilename: fields.LastFrameFilename, LastFrameModule: fields.LastFrameModule, LastFrameFunction: fields.LastFrameFunction,
			Level: level, Platform: platform,
		})
		if err != nil {
			return pgtype.UUID{}, false, apperr.Database(err)
		}
		groupingRow, err := qtx.InsertGrouping(ctx, db.InsertGroupingParams{
			ProjectID: projectID, IssueID: issue.ID, GroupingKey: groupingKey, GroupingKeyHash: groupingHash,
		})
		if err != nil {
			return pgtype.UUID{}, false, apperr.Database(err)
		}
		issueID = issue.ID
		groupingID = groupingRow.ID
		eventDigestOrder = 1
		issueCreated = true

	default:
		return pgtype.UUID{}, false, apperr.Database(err)
	}

	if _, err := qtx.InsertEvent(ctx, db.InsertEventParams{
		ID: newUUIDPg(), EventID: eventUUIDPg, ProjectID: projectID, IssueID: issueID, GroupingID: groupingID,
		Data: raw, Timestamp: tsAt(eventTimestamp), IngestedAt: tsAt(ingestedAt), DigestOrder: eventDigestOrder,
		CalculatedType: fields.CalculatedType, CalculatedValue: fields.CalculatedValue, Transaction: fields.Transaction,
		LastFrameFilename: fields.LastFrameFilename, LastFrameModule: fields.LastFrameModule, LastFrameFunction: fields.LastFrameFunction,
		Level: level, Platform: platform, Release: release, Environment: environment, ServerName: serverName,
		SDKName: sdkName, SDKVersion: sdkVersion, RemoteAddr: remoteAddr,
	}); err != nil {
		return pgtype.UUID{}, false, apperr.Database(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return pgtype.UUID{}, false, apperr.Database(err)
	}
	return issueID, issueCreated, nil
}

func parseEventID(payload map[string]interface{}) (uuid.UUID, error) {
	raw, ok := payload["event_id"].(string)
	if !ok || raw == "" {
		return uuid.UUID{}, apperr.Validation("event payload missing event_id")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.UUID{}, apperr.Validation("event_id is not a valid identifier")
	}
	return id, nil
}

// ingestedAtOf reads the server-receipt instant stamped onto the payload at
// ingress (handler.withIngestMetadata), rather than deriving it from
// digest-processing time: by the time the digest worker runs, the event may
// have sat in the spool/queue for an arbitrary delay, and the quota-window
// queries (installation.go, projects.go) key on this column expecting it to
// reflect true ingress time. fallback covers spool files written before
// this field existed.
func ingestedAtOf(payload map[string]interface{}, fallback time.Time) time.Time {
	if ts, ok := payload["_rustrak_ingested_at"].(float64); ok {
		return time.Unix(int64(ts), 0).UTC()
	}
	return fallback
}

// timestampOf parses the event's own timestamp field (§6: float unix or
// RFC-3339 string), distinct from ingestedAt. It falls back to fallback
// only when the field is absent or unparseable.
func timestampOf(payload map[string]interface{}, fallback time.Time) time.Time {
	switch ts := payload["timestamp"].(type) {
	case float64:
		return time.Unix(int64(ts), 0).UTC()
	case string:
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			return parsed.UTC()
		}
	}
	return fallback
}

func optionalString(payload map[string]interface{}, key string) pgtype.Text {
	s, ok := payload[key].(string)
	if !ok || s == "" {
		return pgtype.Text{}
	}
	var t pgtype.Text
	_ = t.Scan(s)
	return t
}

func sdkInfo(payload map[string]interface{}) (pgtype.Text, pgtype.Text) {
	sdk, ok := payload["sdk"].(map[string]interface{})
	if !ok {
		return pgtype.Text{}, pgtype.Text{}
	}
	var name, version pgtype.Text
	if n, ok := sdk["name"].(string); ok && n != "" {
		_ = name.Scan(n)
	}
	if v, ok := sdk["version"].(string); ok && v != "" {
		_ = version.Scan(v)
	}
	return name, version
}

func tsAt(t time.Time) pgtype.Timestamptz {
	var ts pgtype.Timestamptz
	_ = ts.Scan(t)
	return ts
}

func newUUIDPg() pgtype.UUID {
	var u pgtype.UUID
	_ = u.Scan(uuid.New().String())
	return u
}
