package handler

import (
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"

	"github.com/arc-self/rustrak/internal/apperr"
)

func parseInt32Param(c echo.Context, name string) (int32, error) {
	v, err := strconv.ParseInt(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperr.Validation("invalid " + name + " path parameter")
	}
	return int32(v), nil
}

func parseUUIDParam(c echo.Context, name string) (pgtype.UUID, error) {
	var id pgtype.UUID
	if err := id.Scan(c.Param(name)); err != nil {
		return id, apperr.Validation("invalid " + name + " path parameter")
	}
	return id, nil
}

// isUniqueViolationErr reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505), the same check internal/dispatcher uses to
// translate a driver error into apperr.Conflict.
func isUniqueViolationErr(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
