package db

import "context"

const tokenColumns = `id, token, name, last_used_at, created_at`

func scanToken(row interface{ Scan(...interface{}) error }) (AuthToken, error) {
	var t AuthToken
	err := row.Scan(&t.ID, &t.Token, &t.Name, &t.LastUsedAt, &t.CreatedAt)
	return t, err
}

const getAuthTokenByToken = `SELECT ` + tokenColumns + ` FROM auth_tokens WHERE token = $1`

func (q *Queries) GetAuthTokenByToken(ctx context.Context, token string) (AuthToken, error) {
	row := q.db.QueryRow(ctx, getAuthTokenByToken, token)
	return scanToken(row)
}

func (q *Queries) TouchAuthTokenLastUsed(ctx context.Context, id int32) error {
	_, err := q.db.Exec(ctx, `UPDATE auth_tokens SET last_used_at = NOW() WHERE id = $1`, id)
	return err
}

// CreateAuthTokenParams creates a management-API bearer credential.
type CreateAuthTokenParams struct {
	Token string
	Name  string
}

const createAuthToken = `INSERT INTO auth_tokens (token, name) VALUES ($1, $2) RETURNING ` + tokenColumns

func (q *Queries) CreateAuthToken(ctx context.Context, arg CreateAuthTokenParams) (AuthToken, error) {
	row := q.db.QueryRow(ctx, createAuthToken, arg.Token, arg.Name)
	return scanToken(row)
}
