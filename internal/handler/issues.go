package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/pagination"
	"github.com/arc-self/rustrak/internal/repository/db"
)

// IssuesHandler lists issues for a project and applies lifecycle
// mutations (resolve/unresolve/mute/unmute/delete).
type IssuesHandler struct {
	querier db.Querier
}

// NewIssuesHandler constructs an IssuesHandler.
func NewIssuesHandler(q db.Querier) *IssuesHandler {
	return &IssuesHandler{querier: q}
}

// Register mounts the issue routes under a project scope.
func (h *IssuesHandler) Register(g *echo.Group) {
	g.GET("/projects/:project_id/issues", h.List)
	g.GET("/issues/:id", h.Get)
	g.POST("/issues/:id/resolve", h.Resolve)
	g.POST("/issues/:id/unresolve", h.Unresolve)
	g.POST("/issues/:id/mute", h.Mute)
	g.POST("/issues/:id/unmute", h.Unmute)
	g.DELETE("/issues/:id", h.Delete)
}

func (h *IssuesHandler) List(c echo.Context) error {
	projectID, err := parseInt32Param(c, "project_id")
	if err != nil {
		return writeError(c, err)
	}

	q := pagination.DefaultListIssuesQuery()
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 1 {
			q.Page = n
		}
	}
	if v := c.QueryParam("per_page"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 1 {
			q.PerPage = n
		}
	}
	if v := c.QueryParam("sort"); v != "" {
		q.Sort = pagination.IssueSort(v)
	}
	if v := c.QueryParam("order"); v != "" {
		q.Order = pagination.SortOrder(v)
	}
	if v := c.QueryParam("filter"); v != "" {
		q.Filter = pagination.IssueFilter(v)
	}

	ctx := c.Request().Context()
	offset := (q.Page - 1) * q.PerPage
	issues, err := h.querier.ListIssues(ctx, db.ListIssuesParams{
		ProjectID: projectID, Filter: string(q.Filter), Sort: string(q.Sort), Order: string(q.Order),
		Limit: int32(q.PerPage), Offset: int32(offset),
	})
	if err != nil {
		return writeError(c, apperr.Database(err))
	}
	total, err := h.querier.CountIssues(ctx, db.CountIssuesParams{ProjectID: projectID, Filter: string(q.Filter)})
	if err != nil {
		return writeError(c, apperr.Database(err))
	}

	return c.JSON(http.StatusOK, pagination.NewOffsetResponse(issues, total, q.Page, q.PerPage))
}

func (h *IssuesHandler) Get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	issue, err := h.querier.GetIssueByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, apperr.NotFound("issue not found"))
	}
	return c.JSON(http.StatusOK, issue)
}

// Resolve sets resolved=true, muted=false (resolve clears muted per the
// state lattice).
func (h *IssuesHandler) Resolve(c echo.Context) error {
	return h.withCurrent(c, func(i db.Issue) (db.SetIssueStateParams, error) {
		return db.SetIssueStateParams{ID: i.ID, Resolved: true, Muted: false, Deleted: i.Deleted}, nil
	})
}

// Unresolve clears resolved without touching muted.
func (h *IssuesHandler) Unresolve(c echo.Context) error {
	return h.withCurrent(c, func(i db.Issue) (db.SetIssueStateParams, error) {
		return db.SetIssueStateParams{ID: i.ID, Resolved: false, Muted: i.Muted, Deleted: i.Deleted}, nil
	})
}

// Mute is forbidden on a resolved issue per the state lattice.
func (h *IssuesHandler) Mute(c echo.Context) error {
	return h.withCurrent(c, func(i db.Issue) (db.SetIssueStateParams, error) {
		if i.Resolved {
			return db.SetIssueStateParams{}, apperr.Validation("cannot mute a resolved issue")
		}
		return db.SetIssueStateParams{ID: i.ID, Resolved: false, Muted: true, Deleted: i.Deleted}, nil
	})
}

func (h *IssuesHandler) Unmute(c echo.Context) error {
	return h.withCurrent(c, func(i db.Issue) (db.SetIssueStateParams, error) {
		return db.SetIssueStateParams{ID: i.ID, Resolved: i.Resolved, Muted: false, Deleted: i.Deleted}, nil
	})
}

func (h *IssuesHandler) Delete(c echo.Context) error {
	return h.withCurrent(c, func(i db.Issue) (db.SetIssueStateParams, error) {
		return db.SetIssueStateParams{ID: i.ID, Resolved: i.Resolved, Muted: i.Muted, Deleted: true}, nil
	})
}

// withCurrent loads the current issue, lets next decide (and validate) the
// target state, then applies it in one write.
func (h *IssuesHandler) withCurrent(c echo.Context, next func(db.Issue) (db.SetIssueStateParams, error)) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	ctx := c.Request().Context()

	current, err := h.querier.GetIssueByID(ctx, id)
	if err != nil {
		return writeError(c, apperr.NotFound("issue not found"))
	}

	target, err := next(current)
	if err != nil {
		return writeError(c, err)
	}

	updated, err := h.querier.SetIssueState(ctx, target)
	if err != nil {
		return writeError(c, apperr.Database(err))
	}
	return c.JSON(http.StatusOK, updated)
}
