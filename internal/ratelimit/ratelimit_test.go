package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-self/rustrak/internal/repository/db"
)

// fakeQuerier is a hand-written stub of db.Querier covering only the
// methods the rate-limit controller calls, in the abc-service mock style.
type fakeQuerier struct {
	db.Querier

	installation db.Installation
	project      db.Project

	globalMinuteCount  int64
	globalHourCount    int64
	projectMinuteCount int64
	projectHourCount   int64

	recomputedInstallation *db.UpdateInstallationQuotaRecomputeParams
	recomputedProject      *db.UpdateProjectQuotaRecomputeParams
	incrementedInstalled   bool
	incrementedProject     bool
}

func (f *fakeQuerier) GetInstallation(ctx context.Context) (db.Installation, error) {
	return f.installation, nil
}

func (f *fakeQuerier) UpdateInstallationQuotaIncrement(ctx context.Context, newCount int64) error {
	f.incrementedInstalled = true
	f.installation.DigestedEventCount = newCount
	return nil
}

func (f *fakeQuerier) UpdateInstallationQuotaRecompute(ctx context.Context, arg db.UpdateInstallationQuotaRecomputeParams) error {
	f.recomputedInstallation = &arg
	f.installation.DigestedEventCount = arg.DigestedEventCount
	f.installation.QuotaExceededUntil = arg.QuotaExceededUntil
	f.installation.QuotaExceededReason = arg.QuotaExceededReason
	f.installation.NextQuotaCheck = arg.NextQuotaCheck
	return nil
}

func (f *fakeQuerier) CountGlobalEventsSince(ctx context.Context, since time.Time) (int64, error) {
	if time.Since(since) < 2*time.Minute {
		return f.globalMinuteCount, nil
	}
	return f.globalHourCount, nil
}

func (f *fakeQuerier) GetProjectByID(ctx context.Context, id int32) (db.Project, error) {
	return f.project, nil
}

func (f *fakeQuerier) UpdateProjectQuotaIncrement(ctx context.Context, id int32) error {
	f.incrementedProject = true
	f.project.DigestedEventCount++
	return nil
}

func (f *fakeQuerier) UpdateProjectQuotaRecompute(ctx context.Context, arg db.UpdateProjectQuotaRecomputeParams) error {
	f.recomputedProject = &arg
	f.project.QuotaExceededUntil = arg.QuotaExceededUntil
	f.project.QuotaExceededReason = arg.QuotaExceededReason
	f.project.NextQuotaCheck = arg.NextQuotaCheck
	return nil
}

func (f *fakeQuerier) CountProjectEventsSince(ctx context.Context, arg db.CountProjectEventsSinceParams) (int64, error) {
	if time.Since(arg.Since) < 2*time.Minute {
		return f.projectMinuteCount, nil
	}
	return f.projectHourCount, nil
}

func newController(q db.Querier) *Controller {
	return New(q, Config{PerMinute: 60, PerHour: 1000}, Config{PerMinute: 30, PerHour: 500})
}

func TestCheckAdmission_Admits(t *testing.T) {
	q := &fakeQuerier{installation: db.Installation{NextQuotaCheck: 100}, project: db.Project{NextQuotaCheck: 100}}
	c := newController(q)

	rej, err := c.CheckAdmission(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, rej)
}

func TestCheckAdmission_InstallationExceeded(t *testing.T) {
	until := pgtype.Timestamptz{}
	_ = until.Scan(time.Now().Add(30 * time.Second))
	q := &fakeQuerier{installation: db.Installation{QuotaExceededUntil: until}}
	c := newController(q)

	rej, err := c.CheckAdmission(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, rej)
	assert.Equal(t, ScopeInstallation, rej.Scope)
	assert.GreaterOrEqual(t, rej.RetryAfterSeconds, int64(1))
}

func TestCheckAdmission_ProjectExceeded(t *testing.T) {
	until := pgtype.Timestamptz{}
	_ = until.Scan(time.Now().Add(10 * time.Second))
	q := &fakeQuerier{project: db.Project{QuotaExceededUntil: until}}
	c := newController(q)

	rej, err := c.CheckAdmission(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, rej)
	assert.Equal(t, ScopeProject, rej.Scope)
}

func TestCheckAdmission_ExpiredWindowAdmits(t *testing.T) {
	past := pgtype.Timestamptz{}
	_ = past.Scan(time.Now().Add(-1 * time.Minute))
	q := &fakeQuerier{installation: db.Installation{QuotaExceededUntil: past, NextQuotaCheck: 100}, project: db.Project{NextQuotaCheck: 100}}
	c := newController(q)

	rej, err := c.CheckAdmission(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, rej)
}

func TestUpdateState_BelowThreshold_CheapIncrement(t *testing.T) {
	q := &fakeQuerier{
		installation: db.Installation{DigestedEventCount: 1, NextQuotaCheck: 1000},
		project:      db.Project{DigestedEventCount: 1, NextQuotaCheck: 1000},
	}
	c := newController(q)

	err := c.UpdateState(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, q.incrementedInstalled)
	assert.True(t, q.incrementedProject)
	assert.Nil(t, q.recomputedInstallation)
	assert.Nil(t, q.recomputedProject)
}

func TestUpdateState_ReachesNextCheck_RecomputesAndTripsMinute(t *testing.T) {
	q := &fakeQuerier{
		installation:      db.Installation{DigestedEventCount: 9, NextQuotaCheck: 10},
		project:           db.Project{DigestedEventCount: 0, NextQuotaCheck: 1000},
		globalMinuteCount: 59, // +1 == PerMinute (60) -> trips
		globalHourCount:   59,
	}
	c := newController(q)

	err := c.UpdateState(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, q.recomputedInstallation)
	assert.True(t, q.recomputedInstallation.QuotaExceededUntil.Valid)
	assert.True(t, q.recomputedInstallation.QuotaExceededReason.Valid)
	assert.Equal(t, int64(10), q.recomputedInstallation.DigestedEventCount)
}

func TestUpdateState_HourThresholdWinsWhenMinuteNotTripped(t *testing.T) {
	q := &fakeQuerier{
		installation:      db.Installation{DigestedEventCount: 9, NextQuotaCheck: 10},
		project:           db.Project{DigestedEventCount: 0, NextQuotaCheck: 1000},
		globalMinuteCount: 1,
		globalHourCount:   999, // +1 == PerHour (1000) -> trips
	}
	c := newController(q)

	err := c.UpdateState(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, q.recomputedInstallation)
	assert.True(t, q.recomputedInstallation.QuotaExceededUntil.Valid)
}

func TestUpdateState_EarlyRecomputeOptimizationTriggers(t *testing.T) {
	// next_quota_check - new_count (1) > min(per_minute, per_hour)=60? false here,
	// so use a config with a tiny minThreshold to force the early branch.
	q := &fakeQuerier{
		installation: db.Installation{DigestedEventCount: 0, NextQuotaCheck: 50},
		project:      db.Project{DigestedEventCount: 0, NextQuotaCheck: 1000},
	}
	c := New(q, Config{PerMinute: 1, PerHour: 1}, Config{PerMinute: 30, PerHour: 500})

	err := c.UpdateState(context.Background(), 1)
	require.NoError(t, err)
	// newCount=1, nextQuotaCheck-newCount = 49 > min(1,1)=1 -> should recompute
	assert.NotNil(t, q.recomputedInstallation)
}
