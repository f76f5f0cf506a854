package repository

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type Tree struct {
	TreeId    int64
	UserId    int64
	Name      string
	InitHash  int64
	Data      json.RawMessage
	CreatedAt pgtype.Timestamptz
}

// TreeInfo is a tree without its data, joined with the uploader.
type TreeInfo struct {
	TreeId    int64              `json:"tree_id"`
	Name      string             `json:"name"`
	InitHash  int64              `json:"init_hash"`
	Username  string             `json:"username"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type CreateTreeParams struct {
	UserId   int64
	Name     string
	InitHash int64
	Data     json.RawMessage
}

func (q *Queries) CreateTree(ctx context.Context, params CreateTreeParams) (*Tree, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO trees (user_id, name, init_hash, data)
		VALUES (@user_id, @name, @init_hash, @data)
		RETURNING *`,
		pgx.NamedArgs{
			"user_id":   params.UserId,
			"name":      params.Name,
			"init_hash": params.InitHash,
			"data":      params.Data,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Tree])
}

func (q *Queries) FetchTree(ctx context.Context, treeId int64) (*Tree, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM trees WHERE tree_id = $1", treeId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Tree])
}

type TreeFilter struct {
	Username *string
	Name     *string
}

func (f TreeFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.Name != nil {
		clauses = append(clauses, "name ILIKE '%' || @name || '%'")
		args["name"] = *f.Name
	}
	return strings.Join(clauses, " AND "), args
}

func (q *Queries) ListTrees(ctx context.Context, filter TreeFilter) ([]TreeInfo, error) {
	query := `
	SELECT
		tree_id,
		name,
		init_hash,
		username,
		trees.created_at
	FROM trees
		JOIN users USING (user_id)`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	query += " ORDER BY trees.created_at DESC"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[TreeInfo])
}

// DeleteTree removes a tree owned by userId and reports whether it existed.
func (q *Queries) DeleteTree(ctx context.Context, treeId int64, userId int64) (bool, error) {
	tag, err := q.db.Exec(
		ctx,
		"DELETE FROM trees WHERE tree_id = @tree_id AND user_id = @user_id",
		pgx.NamedArgs{"tree_id": treeId, "user_id": userId},
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
