package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	UserId       int64
	Username     string
	PasswordHash []byte
	CreatedAt    pgtype.Timestamptz
}

type CreateUserParams struct {
	Username     string
	PasswordHash []byte
}

func (q *Queries) CreateUser(ctx context.Context, params CreateUserParams) (*User, error) {
	rows, _ := q.db.Query(
		ctx,
		"INSERT INTO users (username, password_hash) VALUES (@username, @password_hash) RETURNING *",
		pgx.NamedArgs{
			"username":      params.Username,
			"password_hash": params.PasswordHash,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[User])
}

func (q *Queries) FetchUser(ctx context.Context, username string) (*User, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM users WHERE username = $1", username,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[User])
}
