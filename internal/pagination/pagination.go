// Package pagination implements the two listing strategies exposed by the
// management API: offset pagination for issues/alert history and opaque-cursor
// keyset pagination for events, grounded in the reference pagination module.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/arc-self/rustrak/internal/apperr"
)

// PageSize is the default page size for both pagination styles.
const PageSize = 20

// IssueSort selects the column issue listing orders by.
type IssueSort string

const (
	SortDigestOrder IssueSort = "digest_order"
	SortLastSeen    IssueSort = "last_seen"
)

// SortOrder is the listing direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// IssueFilter restricts issue listing by lifecycle state.
type IssueFilter string

const (
	FilterOpen     IssueFilter = "open"
	FilterResolved IssueFilter = "resolved"
	FilterMuted    IssueFilter = "muted"
	FilterAll      IssueFilter = "all"
)

// OffsetResponse wraps an offset-paginated listing.
type OffsetResponse[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int64 `json:"page"`
	PerPage    int64 `json:"per_page"`
	TotalPages int64 `json:"total_pages"`
}

// NewOffsetResponse computes total_pages via ceiling division.
func NewOffsetResponse[T any](items []T, totalCount, page, perPage int64) OffsetResponse[T] {
	totalPages := (totalCount + perPage - 1) / perPage
	if totalPages < 0 {
		totalPages = 0
	}
	return OffsetResponse[T]{Items: items, TotalCount: totalCount, Page: page, PerPage: perPage, TotalPages: totalPages}
}

// CursorResponse wraps a cursor-paginated listing.
type CursorResponse[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"next_cursor,omitempty"`
	HasMore    bool    `json:"has_more"`
}

// IssueCursor positions an issue listing at a resume point; Sort/Order are
// echoed back on decode so a client cannot mix a cursor minted under one
// sort mode with a request under another.
type IssueCursor struct {
	Sort            IssueSort  `json:"sort"`
	Order           SortOrder  `json:"order"`
	LastDigestOrder *int32     `json:"last_digest_order,omitempty"`
	LastSeen        *time.Time `json:"last_seen,omitempty"`
	LastID          *uuid.UUID `json:"last_id,omitempty"`
}

// WithDigestOrder sets the digest_order resume point.
func (c IssueCursor) WithDigestOrder(digestOrder int32) IssueCursor {
	c.LastDigestOrder = &digestOrder
	return c
}

// WithLastSeen sets the last_seen resume point and its id tie-breaker.
func (c IssueCursor) WithLastSeen(lastSeen time.Time, id uuid.UUID) IssueCursor {
	c.LastSeen = &lastSeen
	c.LastID = &id
	return c
}

// Encode renders the cursor as URL-safe, unpadded base64 of its JSON form.
func (c IssueCursor) Encode() (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DecodeIssueCursor parses a cursor previously produced by Encode.
func DecodeIssueCursor(s string) (IssueCursor, error) {
	var c IssueCursor
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return c, apperr.Validation("invalid cursor encoding")
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return c, apperr.Validation("invalid cursor format")
	}
	return c, nil
}

// EventCursor positions an event listing at a digest_order resume point.
type EventCursor struct {
	Order           SortOrder `json:"order"`
	LastDigestOrder int32     `json:"last_digest_order"`
}

// Encode renders the cursor as URL-safe, unpadded base64 of its JSON form.
func (c EventCursor) Encode() (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DecodeEventCursor parses a cursor previously produced by Encode.
func DecodeEventCursor(s string) (EventCursor, error) {
	var c EventCursor
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return c, apperr.Validation("invalid cursor encoding")
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return c, apperr.Validation("invalid cursor format")
	}
	return c, nil
}

// ListIssuesQuery is the parsed, defaulted query-string shape for issue
// listing.
type ListIssuesQuery struct {
	Page    int64
	PerPage int64
	Sort    IssueSort
	Order   SortOrder
	Filter  IssueFilter
}

// DefaultListIssuesQuery returns the zero-value query defaults (page 1,
// PageSize per page, sort by last_seen descending, open issues only),
// matching the reference ListIssuesQuery#[serde(default)] fields.
func DefaultListIssuesQuery() ListIssuesQuery {
	return ListIssuesQuery{Page: 1, PerPage: PageSize, Sort: SortLastSeen, Order: OrderDesc, Filter: FilterOpen}
}

// ListEventsQuery is the parsed query-string shape for event listing.
type ListEventsQuery struct {
	Order  SortOrder
	Cursor *string
}

// DefaultListEventsQuery returns the zero-value query defaults (newest
// first, no cursor).
func DefaultListEventsQuery() ListEventsQuery {
	return ListEventsQuery{Order: OrderDesc}
}
