package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// errNoRows is returned by mutations that check rows-affected (e.g.
// DeleteChannel) when the target row did not exist.
var errNoRows = errors.New("db: no rows affected")

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so the same Queries
// struct runs either directly against the pool or inside an open
// transaction — the same shape as db.New(tx) in the teacher's services.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Queries implements Querier against a DBTX.
type Queries struct {
	db DBTX
}

// New wraps db (a pool or an open transaction) in a Queries.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}
