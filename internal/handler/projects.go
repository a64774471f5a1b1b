package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/repository/db"
)

// ProjectsHandler exposes CRUD over ingest-identity projects.
type ProjectsHandler struct {
	querier db.Querier
}

// NewProjectsHandler constructs a ProjectsHandler.
func NewProjectsHandler(q db.Querier) *ProjectsHandler {
	return &ProjectsHandler{querier: q}
}

// Register mounts the project routes under a Bearer-authenticated group.
func (h *ProjectsHandler) Register(g *echo.Group) {
	g.GET("/projects", h.List)
	g.POST("/projects", h.Create)
	g.GET("/projects/:id", h.Get)
	g.DELETE("/projects/:id", h.Delete)
}

func (h *ProjectsHandler) List(c echo.Context) error {
	projects, err := h.querier.ListProjects(c.Request().Context())
	if err != nil {
		return writeError(c, apperr.Database(err))
	}
	return c.JSON(http.StatusOK, projects)
}

type createProjectReq struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func (h *ProjectsHandler) Create(c echo.Context) error {
	var req createProjectReq
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperr.Validation("invalid request body"))
	}
	if req.Slug == "" || req.Name == "" {
		return writeError(c, apperr.Validation("slug and name are required"))
	}

	var sdkKey pgtype.UUID
	_ = sdkKey.Scan(uuid.New().String())

	project, err := h.querier.CreateProject(c.Request().Context(), db.CreateProjectParams{
		Slug: req.Slug, Name: req.Name, SDKKey: sdkKey,
	})
	if err != nil {
		if isUniqueViolationErr(err) {
			return writeError(c, apperr.Conflict("a project with this slug already exists"))
		}
		return writeError(c, apperr.Database(err))
	}
	return c.JSON(http.StatusCreated, project)
}

func (h *ProjectsHandler) Get(c echo.Context) error {
	id, err := parseInt32Param(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	project, err := h.querier.GetProjectByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, apperr.NotFound("project not found"))
	}
	return c.JSON(http.StatusOK, project)
}

func (h *ProjectsHandler) Delete(c echo.Context) error {
	id, err := parseInt32Param(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.querier.DeleteProject(c.Request().Context(), id); err != nil {
		return writeError(c, apperr.Database(err))
	}
	return c.NoContent(http.StatusNoContent)
}
