package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/repository/db"
)

type stubQuerier struct {
	db.Querier
	token   db.AuthToken
	tokenOK bool
	project db.Project
}

func (s *stubQuerier) GetAuthTokenByToken(ctx context.Context, token string) (db.AuthToken, error) {
	if !s.tokenOK {
		return db.AuthToken{}, assertNotFound{}
	}
	return s.token, nil
}

func (s *stubQuerier) GetProjectByID(ctx context.Context, id int32) (db.Project, error) {
	return s.project, nil
}

type assertNotFound struct{}

func (assertNotFound) Error() string { return "not found" }

func TestAuthenticateBearer_Valid(t *testing.T) {
	tok := db.AuthToken{ID: 1, Token: "0123456789abcdef0123456789abcdef01234567"}
	q := &stubQuerier{token: tok, tokenOK: true}

	got, err := AuthenticateBearer(context.Background(), q, "Bearer "+tok.Token)
	require.NoError(t, err)
	assert.Equal(t, tok, got)
}

func TestAuthenticateBearer_MissingHeader(t *testing.T) {
	_, err := AuthenticateBearer(context.Background(), &stubQuerier{}, "")
	require.Error(t, err)
	appErr, _ := apperr.As(err)
	assert.Equal(t, apperr.KindUnauthorized, appErr.Kind)
}

func TestAuthenticateBearer_WrongPrefix(t *testing.T) {
	_, err := AuthenticateBearer(context.Background(), &stubQuerier{}, "Basic abc")
	require.Error(t, err)
}

func TestAuthenticateBearer_MalformedToken(t *testing.T) {
	_, err := AuthenticateBearer(context.Background(), &stubQuerier{}, "Bearer TOOSHORT")
	require.Error(t, err)
}

func TestAuthenticateBearer_UppercaseRejected(t *testing.T) {
	upper := "0123456789ABCDEF0123456789ABCDEF01234567"
	_, err := AuthenticateBearer(context.Background(), &stubQuerier{}, "Bearer "+upper)
	require.Error(t, err)
}

func TestAuthenticateBearer_UnknownToken(t *testing.T) {
	valid := "0123456789abcdef0123456789abcdef01234567"
	_, err := AuthenticateBearer(context.Background(), &stubQuerier{tokenOK: false}, "Bearer "+valid)
	require.Error(t, err)
	appErr, _ := apperr.As(err)
	assert.Equal(t, apperr.KindUnauthorized, appErr.Kind)
}

func TestParseSentryAuthHeader(t *testing.T) {
	m := ParseSentryAuthHeader("Sentry sentry_key=abc123, sentry_version=7, sentry_client=sentry.go/1.0")
	assert.Equal(t, "abc123", m["sentry_key"])
	assert.Equal(t, "7", m["sentry_version"])
	assert.Equal(t, "sentry.go/1.0", m["sentry_client"])
}

func TestParseSentryAuthHeader_WrongPrefix(t *testing.T) {
	m := ParseSentryAuthHeader("Bearer xyz")
	assert.Empty(t, m)
}

func sdkKeyOf(id uuid.UUID) pgtype.UUID {
	var u pgtype.UUID
	_ = u.Scan(id.String())
	return u
}

func TestAuthenticateSentrySDK_QueryParam(t *testing.T) {
	key := uuid.New()
	project := db.Project{ID: 7, SDKKey: sdkKeyOf(key)}
	q := &stubQuerier{project: project}

	got, err := AuthenticateSentrySDK(context.Background(), q, "7", key.String(), "")
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ID)
}

func TestAuthenticateSentrySDK_HeaderFallback(t *testing.T) {
	key := uuid.New()
	project := db.Project{ID: 7, SDKKey: sdkKeyOf(key)}
	q := &stubQuerier{project: project}

	header := "Sentry sentry_key=" + key.String() + ", sentry_version=7"
	got, err := AuthenticateSentrySDK(context.Background(), q, "7", "", header)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ID)
}

func TestAuthenticateSentrySDK_InvalidProjectID(t *testing.T) {
	_, err := AuthenticateSentrySDK(context.Background(), &stubQuerier{}, "not-a-number", uuid.New().String(), "")
	require.Error(t, err)
	appErr, _ := apperr.As(err)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
}

func TestAuthenticateSentrySDK_MissingKey(t *testing.T) {
	_, err := AuthenticateSentrySDK(context.Background(), &stubQuerier{}, "7", "", "")
	require.Error(t, err)
	appErr, _ := apperr.As(err)
	assert.Equal(t, apperr.KindUnauthorized, appErr.Kind)
}

func TestAuthenticateSentrySDK_KeyMismatch(t *testing.T) {
	project := db.Project{ID: 7, SDKKey: sdkKeyOf(uuid.New())}
	q := &stubQuerier{project: project}

	_, err := AuthenticateSentrySDK(context.Background(), q, "7", uuid.New().String(), "")
	require.Error(t, err)
	appErr, _ := apperr.As(err)
	assert.Equal(t, apperr.KindUnauthorized, appErr.Kind)
}

func TestWithTokenAndProjectContext(t *testing.T) {
	ctx := context.Background()
	tok := db.AuthToken{ID: 3}
	ctx = WithToken(ctx, tok)
	got, ok := TokenFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, tok, got)

	proj := db.Project{ID: 9}
	ctx = WithProject(ctx, proj)
	gotProj, ok := ProjectFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, proj, gotProj)
}
