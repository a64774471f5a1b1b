package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/dispatcher"
	"github.com/arc-self/rustrak/internal/repository/db"
)

// RulesHandler exposes CRUD over alert rules, scoped to a project.
type RulesHandler struct {
	querier    db.Querier
	dispatcher *dispatcher.Dispatcher
}

// NewRulesHandler constructs a RulesHandler.
func NewRulesHandler(q db.Querier, d *dispatcher.Dispatcher) *RulesHandler {
	return &RulesHandler{querier: q, dispatcher: d}
}

// Register mounts the rule routes under a project scope.
func (h *RulesHandler) Register(g *echo.Group) {
	g.GET("/projects/:project_id/rules", h.List)
	g.POST("/projects/:project_id/rules", h.Create)
	g.PUT("/rules/:id", h.Update)
	g.DELETE("/rules/:id", h.Delete)
}

func (h *RulesHandler) List(c echo.Context) error {
	projectID, err := parseInt32Param(c, "project_id")
	if err != nil {
		return writeError(c, err)
	}
	rules, err := h.querier.ListRules(c.Request().Context(), projectID)
	if err != nil {
		return writeError(c, apperr.Database(err))
	}
	return c.JSON(http.StatusOK, rules)
}

type createRuleReq struct {
	AlertType       db.AlertType    `json:"alert_type"`
	Conditions      json.RawMessage `json:"conditions"`
	CooldownMinutes int32           `json:"cooldown_minutes"`
	ChannelIDs      []int32         `json:"channel_ids"`
}

func (h *RulesHandler) Create(c echo.Context) error {
	projectID, err := parseInt32Param(c, "project_id")
	if err != nil {
		return writeError(c, err)
	}
	var req createRuleReq
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperr.Validation("invalid request body"))
	}
	if req.Conditions == nil {
		req.Conditions = json.RawMessage("{}")
	}

	rule, err := h.dispatcher.CreateRule(c.Request().Context(), projectID, req.AlertType, req.Conditions, req.CooldownMinutes, req.ChannelIDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, rule)
}

type updateRuleReq struct {
	Enabled         *bool           `json:"enabled"`
	Conditions      json.RawMessage `json:"conditions"`
	CooldownMinutes *int32          `json:"cooldown_minutes"`
	ChannelIDs      []int32         `json:"channel_ids"`
}

func (h *RulesHandler) Update(c echo.Context) error {
	id, err := parseInt32Param(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req updateRuleReq
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperr.Validation("invalid request body"))
	}

	var enabled pgtype.Bool
	if req.Enabled != nil {
		_ = enabled.Scan(*req.Enabled)
	}
	var cooldown pgtype.Int4
	if req.CooldownMinutes != nil {
		_ = cooldown.Scan(*req.CooldownMinutes)
	}

	rule, err := h.dispatcher.UpdateRule(c.Request().Context(), id, enabled, req.Conditions, cooldown, req.ChannelIDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rule)
}

func (h *RulesHandler) Delete(c echo.Context) error {
	id, err := parseInt32Param(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.querier.DeleteRule(c.Request().Context(), id); err != nil {
		return writeError(c, apperr.Database(err))
	}
	return c.NoContent(http.StatusNoContent)
}
