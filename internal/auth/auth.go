// Package auth implements the two authentication schemes the API exposes:
// bearer tokens for the management API and Sentry SDK key auth for the
// ingest endpoints, grounded in the reference auth/extractors.rs.
package auth

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/repository/db"
)

type contextKey string

const (
	tokenContextKey   contextKey = "rustrak_auth_token"
	projectContextKey contextKey = "rustrak_auth_project"
)

// WithToken attaches the authenticated AuthToken to ctx.
func WithToken(ctx context.Context, token db.AuthToken) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// TokenFromContext retrieves the AuthToken attached by WithToken.
func TokenFromContext(ctx context.Context) (db.AuthToken, bool) {
	t, ok := ctx.Value(tokenContextKey).(db.AuthToken)
	return t, ok
}

// WithProject attaches the authenticated ingest Project to ctx.
func WithProject(ctx context.Context, project db.Project) context.Context {
	return context.WithValue(ctx, projectContextKey, project)
}

// ProjectFromContext retrieves the Project attached by WithProject.
func ProjectFromContext(ctx context.Context) (db.Project, bool) {
	p, ok := ctx.Value(projectContextKey).(db.Project)
	return p, ok
}

// AuthenticateBearer validates an "Authorization: Bearer <token>" header
// value (the 40-lowercase-hex-char management API credential) against the
// auth_tokens table.
func AuthenticateBearer(ctx context.Context, querier db.Querier, authorizationHeader string) (db.AuthToken, error) {
	if authorizationHeader == "" {
		return db.AuthToken{}, apperr.Unauthorized("missing Authorization header")
	}
	if !strings.HasPrefix(authorizationHeader, "Bearer ") {
		return db.AuthToken{}, apperr.Unauthorized("invalid Authorization header format, expected 'Bearer <token>'")
	}

	tokenStr := strings.TrimSpace(authorizationHeader[len("Bearer "):])
	if !isBearerTokenFormat(tokenStr) {
		return db.AuthToken{}, apperr.Unauthorized("malformed bearer token, must be 40 lowercase hex chars")
	}

	token, err := querier.GetAuthTokenByToken(ctx, tokenStr)
	if err != nil {
		return db.AuthToken{}, apperr.Unauthorized("invalid bearer token")
	}

	return token, nil
}

func isBearerTokenFormat(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, r := range s {
		isLowerHexDigit := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
		if !isLowerHexDigit {
			return false
		}
	}
	return true
}

// ParseSentryAuthHeader parses an "X-Sentry-Auth" header value of the form
// "Sentry sentry_key=xxx, sentry_version=7, sentry_client=..." into its
// comma-separated key/value pairs. Returns an empty map for any value that
// does not start with the literal "Sentry " prefix.
func ParseSentryAuthHeader(headerValue string) map[string]string {
	out := map[string]string{}
	if !strings.HasPrefix(headerValue, "Sentry ") {
		return out
	}

	pairs := strings.TrimPrefix(headerValue, "Sentry ")
	for _, pair := range strings.Split(pairs, ",") {
		pair = strings.TrimSpace(pair)
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}

// AuthenticateSentrySDK validates the ingest key for projectIDStr (the
// project_id URL path segment) against a sentry_key supplied either via the
// "sentry_key" query parameter or an X-Sentry-Auth header, query param
// taking precedence.
func AuthenticateSentrySDK(ctx context.Context, querier db.Querier, projectIDStr, querySentryKey, sentryAuthHeader string) (db.Project, error) {
	projectID, err := strconv.ParseInt(projectIDStr, 10, 32)
	if err != nil {
		return db.Project{}, apperr.Validation("missing or invalid project_id in URL")
	}

	sentryKeyStr := querySentryKey
	if sentryKeyStr == "" {
		sentryKeyStr = ParseSentryAuthHeader(sentryAuthHeader)["sentry_key"]
	}
	if sentryKeyStr == "" {
		return db.Project{}, apperr.Unauthorized("missing sentry_key in query param or X-Sentry-Auth header")
	}

	sentryKey, err := uuid.Parse(sentryKeyStr)
	if err != nil {
		return db.Project{}, apperr.Unauthorized("invalid sentry_key format")
	}

	project, err := querier.GetProjectByID(ctx, int32(projectID))
	if err != nil {
		return db.Project{}, apperr.Unauthorized("invalid sentry_key for project")
	}

	var sdkKey pgtype.UUID
	if scanErr := sdkKey.Scan(sentryKey.String()); scanErr != nil {
		return db.Project{}, apperr.Unauthorized("invalid sentry_key format")
	}
	if project.SDKKey.Bytes != sdkKey.Bytes || !project.SDKKey.Valid {
		return db.Project{}, apperr.Unauthorized("invalid sentry_key for project")
	}

	return project, nil
}
