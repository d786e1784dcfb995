// internal/db/queries.go
package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so that every query can run
// standalone or inside RunInTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

// rowScanner covers the subset of *sql.Rows the scan helpers use.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}
