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

// ChannelsHandler exposes CRUD over notification channels, delegating
// config validation and persistence to the dispatcher so a channel can
// never be stored with a config its own notifier would reject.
type ChannelsHandler struct {
	querier    db.Querier
	dispatcher *dispatcher.Dispatcher
}

// NewChannelsHandler constructs a ChannelsHandler.
func NewChannelsHandler(q db.Querier, d *dispatcher.Dispatcher) *ChannelsHandler {
	return &ChannelsHandler{querier: q, dispatcher: d}
}

// Register mounts the channel routes.
func (h *ChannelsHandler) Register(g *echo.Group) {
	g.GET("/channels", h.List)
	g.POST("/channels", h.Create)
	g.GET("/channels/:id", h.Get)
	g.PUT("/channels/:id", h.Update)
	g.DELETE("/channels/:id", h.Delete)
}

func (h *ChannelsHandler) List(c echo.Context) error {
	channels, err := h.querier.ListChannels(c.Request().Context())
	if err != nil {
		return writeError(c, apperr.Database(err))
	}
	return c.JSON(http.StatusOK, channels)
}

func (h *ChannelsHandler) Get(c echo.Context) error {
	id, err := parseInt32Param(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	channel, err := h.querier.GetChannel(c.Request().Context(), id)
	if err != nil {
		return writeError(c, apperr.NotFound("channel not found"))
	}
	return c.JSON(http.StatusOK, channel)
}

type createChannelReq struct {
	Name        string          `json:"name"`
	ChannelType db.ChannelType  `json:"channel_type"`
	Config      json.RawMessage `json:"config"`
}

func (h *ChannelsHandler) Create(c echo.Context) error {
	var req createChannelReq
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperr.Validation("invalid request body"))
	}
	if req.Name == "" {
		return writeError(c, apperr.Validation("name is required"))
	}

	channel, err := h.dispatcher.CreateChannel(c.Request().Context(), req.Name, req.ChannelType, req.Config)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, channel)
}

type updateChannelReq struct {
	Name    *string         `json:"name"`
	Config  json.RawMessage `json:"config"`
	Enabled *bool           `json:"enabled"`
}

func (h *ChannelsHandler) Update(c echo.Context) error {
	id, err := parseInt32Param(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req updateChannelReq
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperr.Validation("invalid request body"))
	}

	var name pgtype.Text
	if req.Name != nil {
		_ = name.Scan(*req.Name)
	}
	var enabled pgtype.Bool
	if req.Enabled != nil {
		_ = enabled.Scan(*req.Enabled)
	}

	channel, err := h.dispatcher.UpdateChannel(c.Request().Context(), id, name, req.Config, enabled)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, channel)
}

func (h *ChannelsHandler) Delete(c echo.Context) error {
	id, err := parseInt32Param(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.querier.DeleteChannel(c.Request().Context(), id); err != nil {
		return writeError(c, apperr.Database(err))
	}
	return c.NoContent(http.StatusNoContent)
}
