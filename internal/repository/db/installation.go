package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const getInstallation = `SELECT id, digested_event_count, quota_exceeded_until, quota_exceeded_reason, next_quota_check
FROM installation WHERE id = 1`

func (q *Queries) GetInstallation(ctx context.Context) (Installation, error) {
	var i Installation
	row := q.db.QueryRow(ctx, getInstallation)
	err := row.Scan(&i.ID, &i.DigestedEventCount, &i.QuotaExceededUntil, &i.QuotaExceededReason, &i.NextQuotaCheck)
	return i, err
}

const updateInstallationQuotaIncrement = `UPDATE installation SET digested_event_count = $1 WHERE id = 1`

func (q *Queries) UpdateInstallationQuotaIncrement(ctx context.Context, newCount int64) error {
	_, err := q.db.Exec(ctx, updateInstallationQuotaIncrement, newCount)
	return err
}

// UpdateInstallationQuotaRecomputeParams carries the result of an exact
// window recomputation to persist atomically.
type UpdateInstallationQuotaRecomputeParams struct {
	DigestedEventCount  int64
	QuotaExceededUntil  pgtype.Timestamptz
	QuotaExceededReason pgtype.Text
	NextQuotaCheck      int64
}

const updateInstallationQuotaRecompute = `
UPDATE installation
SET digested_event_count = $1, quota_exceeded_until = $2, quota_exceeded_reason = $3, next_quota_check = $4
WHERE id = 1`

func (q *Queries) UpdateInstallationQuotaRecompute(ctx context.Context, arg UpdateInstallationQuotaRecomputeParams) error {
	_, err := q.db.Exec(ctx, updateInstallationQuotaRecompute,
		arg.DigestedEventCount, arg.QuotaExceededUntil, arg.QuotaExceededReason, arg.NextQuotaCheck)
	return err
}

const countGlobalEventsSince = `SELECT COUNT(*) FROM events WHERE ingested_at >= $1`

func (q *Queries) CountGlobalEventsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countGlobalEventsSince, since).Scan(&count)
	return count, err
}
