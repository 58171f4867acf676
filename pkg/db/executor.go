package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Executor adapts a pgx connection pool to the sqlkit executor contract.
// Statements use @name placeholders, which pgx rewrites through NamedArgs.
type Executor struct {
	pool *pgxpool.Pool
}

// NewExecutor wraps an existing pool. The pool stays owned by the caller;
// close it through Shutdown, not through the executor.
func NewExecutor(pool *pgxpool.Pool) *Executor {
	return &Executor{pool: pool}
}

// Exec runs a statement that returns no rows and reports the affected count.
func (e *Executor) Exec(ctx context.Context, query string, args map[string]any) (int64, error) {
	tag, err := e.pool.Exec(ctx, query, pgx.NamedArgs(args))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Query runs a row-returning statement and materializes every row into a
// column-keyed map.
func (e *Executor) Query(ctx context.Context, query string, args map[string]any) ([]map[string]any, error) {
	rows, err := e.pool.Query(ctx, query, pgx.NamedArgs(args))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToMap)
}
