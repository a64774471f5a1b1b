package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/pagination"
	"github.com/arc-self/rustrak/internal/repository/db"
)

// EventsHandler lists the events belonging to one issue via cursor-keyset
// pagination (§4.I).
type EventsHandler struct {
	querier db.Querier
}

// NewEventsHandler constructs an EventsHandler.
func NewEventsHandler(q db.Querier) *EventsHandler {
	return &EventsHandler{querier: q}
}

// Register mounts the event routes under an issue scope.
func (h *EventsHandler) Register(g *echo.Group) {
	g.GET("/issues/:issue_id/events", h.List)
}

func (h *EventsHandler) List(c echo.Context) error {
	issueID, err := parseUUIDParam(c, "issue_id")
	if err != nil {
		return writeError(c, err)
	}

	q := pagination.DefaultListEventsQuery()
	if v := c.QueryParam("order"); v != "" {
		q.Order = pagination.SortOrder(v)
	}

	var after int32
	if v := c.QueryParam("cursor"); v != "" {
		cursor, err := pagination.DecodeEventCursor(v)
		if err != nil {
			return writeError(c, err)
		}
		after = cursor.LastDigestOrder
		q.Order = cursor.Order
	}

	// ListEventsKeyset's Direction field already flips the comparator for
	// AfterDigestOrder, so "continue past the last row seen" is always
	// expressed through AfterDigestOrder regardless of sort direction.
	const limit = 20
	rows, err := h.querier.ListEventsKeyset(c.Request().Context(), db.ListEventsKeysetParams{
		IssueID: issueID, Direction: string(q.Order), AfterDigestOrder: after,
		Limit: limit + 1,
	})
	if err != nil {
		return writeError(c, apperr.Database(err))
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	resp := pagination.CursorResponse[db.Event]{Items: rows, HasMore: hasMore}
	if hasMore && len(rows) > 0 {
		next := pagination.EventCursor{Order: q.Order, LastDigestOrder: rows[len(rows)-1].DigestOrder}
		encoded, err := next.Encode()
		if err != nil {
			return writeError(c, err)
		}
		resp.NextCursor = &encoded
	}

	return c.JSON(http.StatusOK, resp)
}
