package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-self/rustrak/internal/handler"
	"github.com/arc-self/rustrak/internal/repository/db"
)

// managementStub overrides only what each test below touches.
type managementStub struct {
	db.Querier
	tokenCreated  db.AuthToken
	issue         db.Issue
	setStateCalls []db.SetIssueStateParams
}

func (m *managementStub) CreateAuthToken(_ context.Context, arg db.CreateAuthTokenParams) (db.AuthToken, error) {
	m.tokenCreated = db.AuthToken{ID: 1, Token: arg.Token, Name: arg.Name}
	return m.tokenCreated, nil
}

func (m *managementStub) GetIssueByID(_ context.Context, id pgtype.UUID) (db.Issue, error) {
	m.issue.ID = id
	return m.issue, nil
}

func (m *managementStub) SetIssueState(_ context.Context, arg db.SetIssueStateParams) (db.Issue, error) {
	m.setStateCalls = append(m.setStateCalls, arg)
	return db.Issue{ID: arg.ID, Resolved: arg.Resolved, Muted: arg.Muted, Deleted: arg.Deleted}, nil
}

func TestTokensCreate_RejectsMissingName(t *testing.T) {
	e := echo.New()
	g := e.Group("")
	handler.NewTokensHandler(&managementStub{}).Register(g)

	req := httptest.NewRequest(http.MethodPost, "/tokens", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTokensCreate_GeneratesFortyCharHexToken(t *testing.T) {
	e := echo.New()
	g := e.Group("")
	stub := &managementStub{}
	handler.NewTokensHandler(stub).Register(g)

	req := httptest.NewRequest(http.MethodPost, "/tokens", strings.NewReader(`{"name":"ci"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, stub.tokenCreated.Token, 40)
	for _, r := range stub.tokenCreated.Token {
		assert.True(t, (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f'))
	}
}

func TestIssuesMute_RejectsResolvedIssue(t *testing.T) {
	e := echo.New()
	g := e.Group("")
	stub := &managementStub{issue: db.Issue{Resolved: true}}
	handler.NewIssuesHandler(stub).Register(g)

	var id pgtype.UUID
	_ = id.Scan("9ec79c33-ec99-42ab-8353-589fcb2e04dc")
	req := httptest.NewRequest(http.MethodPost, "/issues/9ec79c33-ec99-42ab-8353-589fcb2e04dc/mute", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, stub.setStateCalls)
}

func TestIssuesResolve_ClearsMuted(t *testing.T) {
	e := echo.New()
	g := e.Group("")
	stub := &managementStub{issue: db.Issue{Muted: true}}
	handler.NewIssuesHandler(stub).Register(g)

	req := httptest.NewRequest(http.MethodPost, "/issues/9ec79c33-ec99-42ab-8353-589fcb2e04dc/resolve", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, stub.setStateCalls, 1)
	assert.True(t, stub.setStateCalls[0].Resolved)
	assert.False(t, stub.setStateCalls[0].Muted)
}
