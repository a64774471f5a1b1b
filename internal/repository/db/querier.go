package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Querier is the typed data-access surface consumed by the service and
// handler layers. Mirroring the teacher's db.Querier interfaces, it lets
// tests substitute a hand-written mock without touching a real pool.
type Querier interface {
	// Installation / rate limiting
	GetInstallation(ctx context.Context) (Installation, error)
	UpdateInstallationQuotaIncrement(ctx context.Context, newCount int64) error
	UpdateInstallationQuotaRecompute(ctx context.Context, arg UpdateInstallationQuotaRecomputeParams) error
	CountGlobalEventsSince(ctx context.Context, since time.Time) (int64, error)

	// Projects
	GetProjectByID(ctx context.Context, id int32) (Project, error)
	GetProjectBySDKKey(ctx context.Context, sdkKey pgtype.UUID) (Project, error)
	GetProjectBySlug(ctx context.Context, slug string) (Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	CreateProject(ctx context.Context, arg CreateProjectParams) (Project, error)
	DeleteProject(ctx context.Context, id int32) error
	IncrementProjectStoredEvents(ctx context.Context, id int32) error
	UpdateProjectQuotaIncrement(ctx context.Context, id int32) error
	UpdateProjectQuotaRecompute(ctx context.Context, arg UpdateProjectQuotaRecomputeParams) error
	CountProjectEventsSince(ctx context.Context, arg CountProjectEventsSinceParams) (int64, error)

	// Advisory lock
	AcquireProjectAdvisoryLock(ctx context.Context, projectID int32) error

	// Groupings / issues
	GetGroupingByHash(ctx context.Context, arg GetGroupingByHashParams) (Grouping, error)
	InsertGrouping(ctx context.Context, arg InsertGroupingParams) (Grouping, error)
	GetIssueForUpdate(ctx context.Context, id pgtype.UUID) (Issue, error)
	GetMaxDigestOrder(ctx context.Context, projectID int32) (int32, error)
	InsertIssue(ctx context.Context, arg InsertIssueParams) (Issue, error)
	IncrementIssueCounters(ctx context.Context, arg IncrementIssueCountersParams) (Issue, error)
	GetIssueByID(ctx context.Context, id pgtype.UUID) (Issue, error)
	ListIssues(ctx context.Context, arg ListIssuesParams) ([]Issue, error)
	CountIssues(ctx context.Context, arg CountIssuesParams) (int64, error)
	SetIssueState(ctx context.Context, arg SetIssueStateParams) (Issue, error)

	// Events
	GetEventByProjectAndEventID(ctx context.Context, arg GetEventByProjectAndEventIDParams) (Event, error)
	InsertEvent(ctx context.Context, arg InsertEventParams) (Event, error)
	ListEventsKeyset(ctx context.Context, arg ListEventsKeysetParams) ([]Event, error)

	// Notification channels / alert rules / history
	GetEnabledRule(ctx context.Context, arg GetEnabledRuleParams) (AlertRule, error)
	TouchRuleLastTriggered(ctx context.Context, id int32) error
	ListEnabledChannelsForRule(ctx context.Context, ruleID int32) ([]NotificationChannel, error)
	GetAlertHistoryByIdempotencyKey(ctx context.Context, key string) (AlertHistory, error)
	InsertAlertHistoryPending(ctx context.Context, arg InsertAlertHistoryPendingParams) (AlertHistory, error)
	MarkAlertHistorySent(ctx context.Context, arg MarkAlertHistorySentParams) error
	MarkAlertHistoryRetry(ctx context.Context, arg MarkAlertHistoryRetryParams) error
	MarkAlertHistoryFailed(ctx context.Context, arg MarkAlertHistoryFailedParams) error
	MarkChannelSuccess(ctx context.Context, id int32) error
	MarkChannelFailure(ctx context.Context, arg MarkChannelFailureParams) error
	ListPendingRetries(ctx context.Context, maxAttempts int32) ([]AlertHistory, error)
	ListAlertHistoryByProject(ctx context.Context, arg ListAlertHistoryByProjectParams) ([]AlertHistory, error)
	CountAlertHistoryByProject(ctx context.Context, projectID int32) (int64, error)

	CreateChannel(ctx context.Context, arg CreateChannelParams) (NotificationChannel, error)
	ListChannels(ctx context.Context) ([]NotificationChannel, error)
	GetChannel(ctx context.Context, id int32) (NotificationChannel, error)
	UpdateChannel(ctx context.Context, arg UpdateChannelParams) (NotificationChannel, error)
	DeleteChannel(ctx context.Context, id int32) error

	CreateRule(ctx context.Context, arg CreateRuleParams) (AlertRule, error)
	ListRules(ctx context.Context, projectID int32) ([]AlertRule, error)
	UpdateRule(ctx context.Context, arg UpdateRuleParams) (AlertRule, error)
	GetRule(ctx context.Context, id int32) (AlertRule, error)
	DeleteRule(ctx context.Context, id int32) error
	LinkRuleChannel(ctx context.Context, ruleID, channelID int32) error
	UnlinkRuleChannels(ctx context.Context, ruleID int32) error

	// Auth tokens
	GetAuthTokenByToken(ctx context.Context, token string) (AuthToken, error)
	TouchAuthTokenLastUsed(ctx context.Context, id int32) error
	CreateAuthToken(ctx context.Context, arg CreateAuthTokenParams) (AuthToken, error)
}
