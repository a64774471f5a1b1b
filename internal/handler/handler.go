package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/arc-self/rustrak/internal/digestqueue"
	"github.com/arc-self/rustrak/internal/dispatcher"
	"github.com/arc-self/rustrak/internal/ratelimit"
	"github.com/arc-self/rustrak/internal/repository/db"
	"github.com/arc-self/rustrak/internal/spool"
)

// RegisterAll mounts the ingest endpoint (unauthenticated at the route
// level — it authenticates via SDK key internally) and the Bearer-gated
// management API onto e, following the teacher's per-resource Register(e)
// convention but grouping the management surface under one authenticated
// echo.Group so new resources opt in automatically.
func RegisterAll(
	e *echo.Echo,
	querier db.Querier,
	rateLimit *ratelimit.Controller,
	store *spool.Store,
	queue *digestqueue.Queue,
	disp *dispatcher.Dispatcher,
	logger *zap.Logger,
) {
	NewIngestHandler(querier, rateLimit, store, queue, logger).Register(e)

	api := e.Group("/api/v1", BearerAuth(querier))
	NewProjectsHandler(querier).Register(api)
	NewTokensHandler(querier).Register(api)
	NewChannelsHandler(querier, disp).Register(api)
	NewRulesHandler(querier, disp).Register(api)
	NewIssuesHandler(querier).Register(api)
	NewEventsHandler(querier).Register(api)
	NewHistoryHandler(querier).Register(api)
}
