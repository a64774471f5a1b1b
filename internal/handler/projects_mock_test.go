package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/arc-self/rustrak/internal/handler"
	"github.com/arc-self/rustrak/internal/repository/db"
	"github.com/arc-self/rustrak/internal/repository/db/mock"
)

func TestProjectsGet_TranslatesQueryErrorToNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQ := mock.NewMockQuerier(ctrl)
	mockQ.EXPECT().
		GetProjectByID(gomock.Any(), int32(42)).
		Return(db.Project{}, errors.New("no rows in result set")).
		Times(1)

	e := echo.New()
	handler.NewProjectsHandler(mockQ).Register(e.Group(""))

	req := httptest.NewRequest(http.MethodGet, "/projects/42", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectsGet_ReturnsProjectOnHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	want := db.Project{ID: 42, Slug: "demo", Name: "Demo"}
	mockQ := mock.NewMockQuerier(ctrl)
	mockQ.EXPECT().
		GetProjectByID(gomock.Any(), int32(42)).
		Return(want, nil).
		Times(1)

	e := echo.New()
	handler.NewProjectsHandler(mockQ).Register(e.Group(""))

	req := httptest.NewRequest(http.MethodGet, "/projects/42", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "demo")
}
