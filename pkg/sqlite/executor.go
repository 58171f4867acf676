package sqlite

import (
	"context"
	"database/sql"
)

// Executor adapts a SQLite database handle to the sqlkit executor contract.
// SQLite understands @name placeholders natively; the argument map is
// converted to named arguments for the driver.
type Executor struct {
	db *sql.DB
}

// NewExecutor wraps an existing database handle. The handle stays owned by
// the caller; close it through Shutdown, not through the executor.
func NewExecutor(db *sql.DB) *Executor {
	return &Executor{db: db}
}

// Exec runs a statement that returns no rows and reports the affected count.
func (e *Executor) Exec(ctx context.Context, query string, args map[string]any) (int64, error) {
	res, err := e.db.ExecContext(ctx, query, namedArgs(args)...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Query runs a row-returning statement and materializes every row into a
// column-keyed map.
func (e *Executor) Query(ctx context.Context, query string, args map[string]any) ([]map[string]any, error) {
	rows, err := e.db.QueryContext(ctx, query, namedArgs(args)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []map[string]any
	values := make([]any, len(cols))
	scanTargets := make([]any, len(cols))
	for i := range values {
		scanTargets[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			// Byte slices may alias driver buffers that the next Scan
			// overwrites, so they are copied out as strings.
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func namedArgs(args map[string]any) []any {
	if len(args) == 0 {
		return nil
	}
	named := make([]any, 0, len(args))
	for name, value := range args {
		named = append(named, sql.Named(name, value))
	}
	return named
}
