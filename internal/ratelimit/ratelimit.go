// Package ratelimit implements the two-tier (installation + project) quota
// controller: an O(1) memoized admission check and an amortized exact
// recomputation on state update, mirroring the reference RateLimitService.
package ratelimit

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/repository/db"
)

// Config is the {per_minute, per_hour} admission limits for one scope.
type Config struct {
	PerMinute int64
	PerHour   int64
}

// Controller enforces installation-wide and per-project quotas.
type Controller struct {
	querier      db.Querier
	installation Config
	project      Config
	now          func() time.Time
}

// New constructs a Controller. installation and project carry the
// {max_events_per_minute, max_events_per_hour} and
// {max_events_per_project_per_minute, max_events_per_project_per_hour}
// configuration values respectively.
func New(querier db.Querier, installation, project Config) *Controller {
	return &Controller{querier: querier, installation: installation, project: project, now: time.Now}
}

// Scope identifies which tier rejected an admission.
type Scope string

const (
	ScopeInstallation Scope = "installation"
	ScopeProject      Scope = "project"
)

// Rejection carries the retry-after duration and the scope that rejected.
type Rejection struct {
	RetryAfterSeconds int64
	Scope             Scope
}

// CheckAdmission evaluates the memoized quota state for both scopes,
// installation first, and returns a Rejection if either is currently
// exceeded. A nil Rejection means admit.
func (c *Controller) CheckAdmission(ctx context.Context, projectID int32) (*Rejection, error) {
	now := c.now()

	installation, err := c.querier.GetInstallation(ctx)
	if err != nil {
		return nil, apperr.Database(err)
	}
	if installation.QuotaExceededUntil.Valid && now.Before(installation.QuotaExceededUntil.Time) {
		return &Rejection{
			RetryAfterSeconds: retryAfter(installation.QuotaExceededUntil.Time, now),
			Scope:             ScopeInstallation,
		}, nil
	}

	project, err := c.querier.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, apperr.Database(err)
	}
	if project.QuotaExceededUntil.Valid && now.Before(project.QuotaExceededUntil.Time) {
		return &Rejection{
			RetryAfterSeconds: retryAfter(project.QuotaExceededUntil.Time, now),
			Scope:             ScopeProject,
		}, nil
	}

	return nil, nil
}

func retryAfter(until, now time.Time) int64 {
	secs := int64(math.Ceil(until.Sub(now).Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}

// UpdateState is called by the digest worker after a successful store. It
// increments both scopes' digested counts and, once next_quota_check is
// reached (or while next_quota_check still lies more than
// min(per_minute, per_hour) events ahead — an early-recompute check carried
// over from the reference implementation), recomputes exact window counts.
func (c *Controller) UpdateState(ctx context.Context, projectID int32) error {
	now := c.now()
	if err := c.updateInstallation(ctx, now); err != nil {
		return err
	}
	return c.updateProject(ctx, projectID, now)
}

func (c *Controller) updateInstallation(ctx context.Context, now time.Time) error {
	installation, err := c.querier.GetInstallation(ctx)
	if err != nil {
		return apperr.Database(err)
	}

	newCount := installation.DigestedEventCount + 1
	minThreshold := min64(c.installation.PerMinute, c.installation.PerHour)
	shouldCheck := newCount >= installation.NextQuotaCheck || (installation.NextQuotaCheck-newCount) > minThreshold

	if !shouldCheck {
		return wrapDBErr(c.querier.UpdateInstallationQuotaIncrement(ctx, newCount))
	}

	minuteCount, err := c.querier.CountGlobalEventsSince(ctx, now.Add(-time.Minute))
	if err != nil {
		return apperr.Database(err)
	}
	hourCount, err := c.querier.CountGlobalEventsSince(ctx, now.Add(-time.Hour))
	if err != nil {
		return apperr.Database(err)
	}

	exceededUntil, exceededReason := evaluateWindows(now, minuteCount, hourCount, c.installation.PerMinute, c.installation.PerHour)
	checkAgainAfter := max64(min64(c.installation.PerMinute-minuteCount-1, c.installation.PerHour-hourCount-1), 1)

	return wrapDBErr(c.querier.UpdateInstallationQuotaRecompute(ctx, db.UpdateInstallationQuotaRecomputeParams{
		DigestedEventCount:  newCount,
		QuotaExceededUntil:  exceededUntil,
		QuotaExceededReason: exceededReason,
		NextQuotaCheck:      newCount + checkAgainAfter,
	}))
}

func (c *Controller) updateProject(ctx context.Context, projectID int32, now time.Time) error {
	project, err := c.querier.GetProjectByID(ctx, projectID)
	if err != nil {
		return apperr.Database(err)
	}

	newCount := project.DigestedEventCount + 1
	minThreshold := min64(c.project.PerMinute, c.project.PerHour)
	shouldCheck := newCount >= project.NextQuotaCheck || (project.NextQuotaCheck-newCount) > minThreshold

	if !shouldCheck {
		return wrapDBErr(c.querier.UpdateProjectQuotaIncrement(ctx, projectID))
	}

	minuteCount, err := c.querier.CountProjectEventsSince(ctx, db.CountProjectEventsSinceParams{ProjectID: projectID, Since: now.Add(-time.Minute)})
	if err != nil {
		return apperr.Database(err)
	}
	hourCount, err := c.querier.CountProjectEventsSince(ctx, db.CountProjectEventsSinceParams{ProjectID: projectID, Since: now.Add(-time.Hour)})
	if err != nil {
		return apperr.Database(err)
	}

	exceededUntil, exceededReason := evaluateWindows(now, minuteCount, hourCount, c.project.PerMinute, c.project.PerHour)
	checkAgainAfter := max64(min64(c.project.PerMinute-minuteCount-1, c.project.PerHour-hourCount-1), 1)

	return wrapDBErr(c.querier.UpdateProjectQuotaRecompute(ctx, db.UpdateProjectQuotaRecomputeParams{
		ID:                  projectID,
		QuotaExceededUntil:  exceededUntil,
		QuotaExceededReason: exceededReason,
		NextQuotaCheck:      newCount + checkAgainAfter,
	}))
}

func wrapDBErr(err error) error {
	if err == nil {
		return nil
	}
	return apperr.Database(err)
}

func evaluateWindows(now time.Time, minuteCount, hourCount, perMinute, perHour int64) (pgtype.Timestamptz, pgtype.Text) {
	var until pgtype.Timestamptz
	var reason pgtype.Text

	switch {
	case minuteCount+1 >= perMinute:
		until = tsAt(now.Add(time.Minute))
		reason = jsonReason("minute", 1, perMinute)
	case hourCount+1 >= perHour:
		until = tsAt(now.Add(time.Hour))
		reason = jsonReason("hour", 1, perHour)
	}
	return until, reason
}

func tsAt(t time.Time) pgtype.Timestamptz {
	var ts pgtype.Timestamptz
	_ = ts.Scan(t)
	return ts
}

func jsonReason(kind string, count, limit int64) pgtype.Text {
	b, _ := json.Marshal([]interface{}{kind, count, limit})
	var t pgtype.Text
	_ = t.Scan(string(b))
	return t
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
