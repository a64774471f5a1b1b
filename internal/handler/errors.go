// Package handler wires the HTTP surface: the SDK-facing ingress endpoint
// and the Bearer-authenticated management API, following privacy-service's
// one-handler-per-resource layout and its errResponse/handleSvcError shape.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arc-self/rustrak/internal/apperr"
)

type errEnvelope struct {
	Error errBody `json:"error"`
}

type errBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// kindStatus maps apperr.Kind to HTTP status per the error taxonomy. Unlike
// the teacher's handleSvcError (which maps its one validation sentinel to
// 422), this server maps Validation to 400 — an intentional deviation
// recorded in DESIGN.md.
func kindStatus(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case apperr.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as the {"error":{"type","message"}} envelope from
// spec §6. Any error that isn't an *apperr.Error is treated as Internal,
// so a handler can return a raw driver error without wrapping it first.
func writeError(c echo.Context, err error) error {
	appErr, ok := apperr.As(err)
	if !ok {
		appErr = apperr.Internal(err)
	}
	return c.JSON(kindStatus(appErr.Kind), errEnvelope{Error: errBody{
		Type:    string(appErr.Kind),
		Message: appErr.Message,
	}})
}
