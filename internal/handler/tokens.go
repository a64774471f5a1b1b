package handler

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/repository/db"
)

// TokensHandler issues and revokes management-API bearer credentials.
type TokensHandler struct {
	querier db.Querier
}

// NewTokensHandler constructs a TokensHandler.
func NewTokensHandler(q db.Querier) *TokensHandler {
	return &TokensHandler{querier: q}
}

// Register mounts the token routes.
func (h *TokensHandler) Register(g *echo.Group) {
	g.POST("/tokens", h.Create)
}

type createTokenReq struct {
	Name string `json:"name"`
}

// Create mints a fresh 40-lowercase-hex bearer token, matching
// auth.isBearerTokenFormat's expected shape (20 random bytes, hex-encoded).
func (h *TokensHandler) Create(c echo.Context) error {
	var req createTokenReq
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperr.Validation("invalid request body"))
	}
	if req.Name == "" {
		return writeError(c, apperr.Validation("name is required"))
	}

	token, err := generateToken()
	if err != nil {
		return writeError(c, apperr.Internal(err))
	}

	created, err := h.querier.CreateAuthToken(c.Request().Context(), db.CreateAuthTokenParams{
		Token: token, Name: req.Name,
	})
	if err != nil {
		return writeError(c, apperr.Database(err))
	}
	return c.JSON(http.StatusCreated, created)
}

// generateToken produces a 40-lowercase-hex-char credential from 20 bytes
// of crypto/rand, satisfying the 8-testable-property "is_valid_token_format
// (generate_token()) holds for every call".
func generateToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
