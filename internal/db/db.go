// Package db is the hand-written data access layer, sqlc-shaped: a
// Queries struct wrapping a DBTX (pool or transaction), a Querier
// interface callers code against, and one *.sql.go file per domain area.
package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, letting Queries run
// against either the pool or a single transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a new Queries bound to the given transaction.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

// GetDBTX exposes the underlying DBTX, used by services that need to
// open a nested transaction explicitly (e.g. BeginTx on a pool).
func (q *Queries) GetDBTX() DBTX { return q.db }
