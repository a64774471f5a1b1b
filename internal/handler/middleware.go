package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/arc-self/rustrak/internal/auth"
	"github.com/arc-self/rustrak/internal/repository/db"
)

// BearerAuth gates the management API behind the 40-lowercase-hex bearer
// credential, mirroring privacy-service's InternalContextMiddleware shape
// but performing a direct credential lookup since rustrak terminates its
// own auth rather than trusting an upstream gateway's injected headers.
func BearerAuth(querier db.Querier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			token, err := auth.AuthenticateBearer(ctx, querier, c.Request().Header.Get("Authorization"))
			if err != nil {
				return writeError(c, err)
			}

			// Best-effort, non-blocking last_used_at touch; detached from
			// the request context so it isn't cancelled the instant the
			// response is written.
			go func() {
				_ = querier.TouchAuthTokenLastUsed(context.WithoutCancel(ctx), token.ID)
			}()

			c.SetRequest(c.Request().WithContext(auth.WithToken(ctx, token)))
			return next(c)
		}
	}
}
