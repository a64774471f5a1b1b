// Package db is a hand-authored, sqlc-shaped data access layer: a DBTX
// abstraction satisfied by both *pgxpool.Pool and pgx.Tx (so the same
// Queries struct works inside and outside a transaction, following the
// db.New(tx) pattern used throughout the arc-core services), typed model
// structs using pgtype for nullable columns, and one method per query.
package db

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Installation is the singleton (id = 1) row holding global rate-limit
// state.
type Installation struct {
	ID                  int32
	DigestedEventCount  int64
	QuotaExceededUntil  pgtype.Timestamptz
	QuotaExceededReason pgtype.Text
	NextQuotaCheck      int64
}

// Project is a tenant boundary: an ingest identity plus its own rate-limit
// memo.
type Project struct {
	ID                  int32
	Slug                string
	Name                string
	SDKKey              pgtype.UUID
	StoredEvents        int32
	DigestedEventCount  int64
	QuotaExceededUntil  pgtype.Timestamptz
	QuotaExceededReason pgtype.Text
	NextQuotaCheck      int64
	CreatedAt           time.Time
}

// Issue is an equivalence class of events sharing a grouping hash.
type Issue struct {
	ID                 pgtype.UUID
	ProjectID           int32
	DigestOrder         int32
	FirstSeen           time.Time
	LastSeen            time.Time
	DigestedEvents      int32
	StoredEvents        int32
	CalculatedType      string
	CalculatedValue     string
	Transaction         string
	LastFrameFilename   string
	LastFrameModule     string
	LastFrameFunction   string
	Level               pgtype.Text
	Platform            pgtype.Text
	Resolved            bool
	Muted               bool
	Deleted             bool
}

// Title renders the human-facing issue title from its denormalized fields.
func (i Issue) Title() string {
	if i.CalculatedValue == "" {
		return i.CalculatedType
	}
	return i.CalculatedType + ": " + i.CalculatedValue
}

// Grouping maps a grouping-key hash to the Issue it belongs to.
type Grouping struct {
	ID              int32
	ProjectID       int32
	IssueID         pgtype.UUID
	GroupingKey     string
	GroupingKeyHash string
}

// Event is one stored error occurrence.
type Event struct {
	ID                pgtype.UUID
	EventID           pgtype.UUID
	ProjectID         int32
	IssueID           pgtype.UUID
	GroupingID        int32
	Data              []byte
	Timestamp         time.Time
	IngestedAt        time.Time
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

// ChannelType enumerates the pluggable notifier kinds.
type ChannelType string

const (
	ChannelWebhook ChannelType = "webhook"
	ChannelEmail   ChannelType = "email"
	ChannelSlack   ChannelType = "slack"
)

// NotificationChannel is a configured delivery target for alerts.
type NotificationChannel struct {
	ID                  int32
	Name                string
	ChannelType         ChannelType
	Config              []byte
	Enabled             bool
	FailureCount        int32
	LastFailureAt       pgtype.Timestamptz
	LastFailureMessage  pgtype.Text
	LastSuccessAt       pgtype.Timestamptz
}

// AlertType enumerates the conditions an AlertRule can fire on.
type AlertType string

const (
	AlertNewIssue   AlertType = "new_issue"
	AlertRegression AlertType = "regression"
	AlertUnmute     AlertType = "unmute"
)

// AlertRule binds a project and alert type to a cooldown policy.
type AlertRule struct {
	ID               int32
	ProjectID        int32
	AlertType        AlertType
	Enabled          bool
	Conditions       []byte
	CooldownMinutes  int32
	LastTriggeredAt  pgtype.Timestamptz
}

// AlertHistoryStatus enumerates delivery states for an AlertHistory row.
type AlertHistoryStatus string

const (
	HistoryPending AlertHistoryStatus = "pending"
	HistorySent    AlertHistoryStatus = "sent"
	HistoryFailed  AlertHistoryStatus = "failed"
)

// AlertHistory is an append-only audit row enforcing at-most-once delivery
// per channel via its unique idempotency key.
type AlertHistory struct {
	ID               int64
	AlertRuleID      int32
	ChannelID        pgtype.Int4
	IssueID          pgtype.UUID
	ProjectID        int32
	AlertType        AlertType
	ChannelType      ChannelType
	ChannelName      string
	Status           AlertHistoryStatus
	AttemptCount     int32
	NextRetryAt      pgtype.Timestamptz
	ErrorMessage     pgtype.Text
	HTTPStatusCode   pgtype.Int4
	IdempotencyKey   string
	CreatedAt        time.Time
	SentAt           pgtype.Timestamptz
}

// AuthToken is a management-API bearer credential.
type AuthToken struct {
	ID          int32
	Token       string
	Name        string
	LastUsedAt  pgtype.Timestamptz
	CreatedAt   time.Time
}
