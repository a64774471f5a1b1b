package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/auth"
	"github.com/arc-self/rustrak/internal/decompress"
	"github.com/arc-self/rustrak/internal/digestqueue"
	"github.com/arc-self/rustrak/internal/envelope"
	"github.com/arc-self/rustrak/internal/ratelimit"
	"github.com/arc-self/rustrak/internal/repository/db"
	"github.com/arc-self/rustrak/internal/spool"
)

// IngestHandler implements the SDK-facing envelope endpoint (§4.G).
type IngestHandler struct {
	querier   db.Querier
	rateLimit *ratelimit.Controller
	spool     *spool.Store
	queue     *digestqueue.Queue
	logger    *zap.Logger
	now       func() time.Time
}

// NewIngestHandler constructs an IngestHandler.
func NewIngestHandler(querier db.Querier, rateLimit *ratelimit.Controller, store *spool.Store, queue *digestqueue.Queue, logger *zap.Logger) *IngestHandler {
	return &IngestHandler{querier: querier, rateLimit: rateLimit, spool: store, queue: queue, logger: logger, now: time.Now}
}

// Register mounts the ingest routes.
func (h *IngestHandler) Register(e *echo.Echo) {
	e.POST("/api/:project_id/envelope/", h.Envelope)
	e.POST("/api/:project_id/store/", h.DeprecatedStore)
}

type rateLimitBody struct {
	Error      string `json:"error"`
	RetryAfter int64  `json:"retry_after"`
}

type ingestAckBody struct {
	ID string `json:"id"`
}

// Envelope handles POST /api/{project_id}/envelope/.
func (h *IngestHandler) Envelope(c echo.Context) error {
	ctx := c.Request().Context()
	projectIDStr := c.Param("project_id")

	project, err := auth.AuthenticateSentrySDK(ctx, h.querier, projectIDStr,
		c.QueryParam("sentry_key"), c.Request().Header.Get("X-Sentry-Auth"))
	if err != nil {
		return writeError(c, err)
	}

	// Step 1: admission.
	rejection, err := h.rateLimit.CheckAdmission(ctx, project.ID)
	if err != nil {
		return writeError(c, err)
	}
	if rejection != nil {
		c.Response().Header().Set("Retry-After", strconv.FormatInt(rejection.RetryAfterSeconds, 10))
		return c.JSON(http.StatusTooManyRequests, rateLimitBody{
			Error: "rate_limit_exceeded", RetryAfter: rejection.RetryAfterSeconds,
		})
	}

	ingestedAt := h.now()
	remoteAddr := c.RealIP()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return writeError(c, apperr.Wrap(apperr.KindInternal, "failed to read request body", err))
	}

	decoded, err := decompress.Body(body, c.Request().Header.Get("Content-Encoding"))
	if err != nil {
		return writeError(c, err)
	}

	env, err := envelope.Parse(decoded)
	if err != nil {
		return writeError(c, err)
	}
	if env.Headers.EventID == "" {
		return writeError(c, apperr.Validation("envelope header missing event_id"))
	}

	item, found := env.FirstEventItem()
	if !found {
		// No event item: accepted no-op per §4.G step 6.
		return c.JSON(http.StatusOK, ingestAckBody{ID: env.Headers.EventID})
	}

	payload, err := withIngestMetadata(item.Payload, remoteAddr, ingestedAt)
	if err != nil {
		return writeError(c, err)
	}
	payload, err = digestqueue.StampProjectID(payload, project.ID)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.spool.Write(env.Headers.EventID, payload); err != nil {
		return writeError(c, err)
	}

	if err := h.queue.Publish(ctx, project.ID, env.Headers.EventID); err != nil {
		// The event survives on disk even if the publish failed; the boot
		// sweep will redrive it, so this is logged rather than failing
		// the request the SDK is waiting on.
		h.logger.Error("failed to publish digest task", zap.Error(err),
			zap.Int32("project_id", project.ID), zap.String("event_id", env.Headers.EventID))
	}

	return c.JSON(http.StatusOK, ingestAckBody{ID: env.Headers.EventID})
}

// DeprecatedStore responds to the permanently retired /store/ endpoint.
func (h *IngestHandler) DeprecatedStore(c echo.Context) error {
	return writeError(c, apperr.Validation("this endpoint has been removed; migrate to POST /api/{project_id}/envelope/"))
}
