package sqlkit

import "context"

// Executor runs rendered statements against a database. Implementations bind
// the @name placeholders in Statement.Query from the args mapping; pkg/db
// provides a pgx-backed executor and pkg/sqlite a database/sql-backed one.
type Executor interface {
	// Exec runs a statement that returns no rows and reports the number of
	// rows affected.
	Exec(ctx context.Context, query string, args map[string]any) (int64, error)

	// Query runs a statement and returns all rows as column-name keyed maps.
	Query(ctx context.Context, query string, args map[string]any) ([]map[string]any, error)
}
