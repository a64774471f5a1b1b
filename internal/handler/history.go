package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/pagination"
	"github.com/arc-self/rustrak/internal/repository/db"
)

// HistoryHandler lists alert delivery history for a project.
type HistoryHandler struct {
	querier db.Querier
}

// NewHistoryHandler constructs a HistoryHandler.
func NewHistoryHandler(q db.Querier) *HistoryHandler {
	return &HistoryHandler{querier: q}
}

// Register mounts the alert history route under a project scope.
func (h *HistoryHandler) Register(g *echo.Group) {
	g.GET("/projects/:project_id/alert-history", h.List)
}

func (h *HistoryHandler) List(c echo.Context) error {
	projectID, err := parseInt32Param(c, "project_id")
	if err != nil {
		return writeError(c, err)
	}

	page := int64(1)
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 1 {
			page = n
		}
	}
	perPage := int64(pagination.PageSize)
	if v := c.QueryParam("per_page"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 1 {
			perPage = n
		}
	}

	ctx := c.Request().Context()
	rows, err := h.querier.ListAlertHistoryByProject(ctx, db.ListAlertHistoryByProjectParams{
		ProjectID: projectID, Limit: int32(perPage), Offset: int32((page - 1) * perPage),
	})
	if err != nil {
		return writeError(c, apperr.Database(err))
	}
	total, err := h.querier.CountAlertHistoryByProject(ctx, projectID)
	if err != nil {
		return writeError(c, apperr.Database(err))
	}

	return c.JSON(http.StatusOK, pagination.NewOffsetResponse(rows, total, page, perPage))
}
