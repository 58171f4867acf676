package sqlkit

import (
	"context"
	"errors"
	"log/slog"
)

// CRUD provides guarded single-table statements on top of an Executor.
//
// Validation faults (bad identifiers, empty required arguments, bad sort
// directions) return loud errors so programming mistakes surface immediately.
// Execution faults on the write methods are logged and reported as a false
// result instead, so callers branch on success without unwrapping driver
// errors. Read methods return ErrExecution because there is no result value
// to fold a failure into.
type CRUD struct {
	exec   Executor
	logger *slog.Logger
}

// NewCRUD returns a CRUD bound to the given executor. A nil logger falls back
// to slog.Default().
func NewCRUD(exec Executor, logger *slog.Logger) *CRUD {
	if logger == nil {
		logger = slog.Default()
	}
	return &CRUD{exec: exec, logger: logger}
}

// Insert adds one row. It reports whether the insert succeeded; execution
// faults are logged, not returned.
func (c *CRUD) Insert(ctx context.Context, table string, values map[string]any) (bool, error) {
	stmt, err := buildInsert(table, values)
	if err != nil {
		return false, err
	}
	if _, err := c.exec.Exec(ctx, stmt.Query, stmt.Args); err != nil {
		c.logExecFailure(ctx, "insert failed", table, stmt.Query, err)
		return false, nil
	}
	return true, nil
}

// Update modifies matching rows. Both the set and where mappings must be
// non-empty; an update without conditions is rejected with ErrEmptyArgument
// rather than applied to the whole table. It reports whether the update
// succeeded; execution faults are logged, not returned.
func (c *CRUD) Update(ctx context.Context, table string, set, where map[string]any) (bool, error) {
	stmt, err := buildUpdate(table, set, where)
	if err != nil {
		return false, err
	}
	if _, err := c.exec.Exec(ctx, stmt.Query, stmt.Args); err != nil {
		c.logExecFailure(ctx, "update failed", table, stmt.Query, err)
		return false, nil
	}
	return true, nil
}

// Delete removes matching rows. The where mapping must be non-empty; a delete
// without conditions is rejected with ErrEmptyArgument rather than applied to
// the whole table. It reports whether the delete succeeded; execution faults
// are logged, not returned.
func (c *CRUD) Delete(ctx context.Context, table string, where map[string]any) (bool, error) {
	stmt, err := buildDelete(table, where)
	if err != nil {
		return false, err
	}
	if _, err := c.exec.Exec(ctx, stmt.Query, stmt.Args); err != nil {
		c.logExecFailure(ctx, "delete failed", table, stmt.Query, err)
		return false, nil
	}
	return true, nil
}

// Select reads rows from one table with optional equality conditions,
// ordering and limit. Execution faults are logged and surface as ErrExecution
// without the driver cause attached.
func (c *CRUD) Select(ctx context.Context, table string, opts SelectOptions) ([]map[string]any, error) {
	stmt, err := buildSelect(table, opts)
	if err != nil {
		return nil, err
	}
	rows, err := c.exec.Query(ctx, stmt.Query, stmt.Args)
	if err != nil {
		c.logExecFailure(ctx, "select failed", table, stmt.Query, err)
		return nil, ErrExecution
	}
	return rows, nil
}

// PreparedQuery runs caller-supplied SQL with named arguments and returns the
// rows. The SQL text is trusted as written; only the values are bound. Unlike
// Select, the driver cause is joined into the returned error because the
// caller owns the statement and can act on it.
func (c *CRUD) PreparedQuery(ctx context.Context, query string, args map[string]any) ([]map[string]any, error) {
	rows, err := c.exec.Query(ctx, query, args)
	if err != nil {
		c.logExecFailure(ctx, "prepared query failed", "", query, err)
		return nil, errors.Join(ErrExecution, err)
	}
	return rows, nil
}

// Query runs a raw statement without arguments and reports whether it
// succeeded. Intended for DDL and maintenance statements where no result is
// read back; execution faults are logged, not returned.
func (c *CRUD) Query(ctx context.Context, query string) bool {
	if _, err := c.exec.Exec(ctx, query, nil); err != nil {
		c.logExecFailure(ctx, "query failed", "", query, err)
		return false
	}
	return true
}

// logExecFailure records an execution fault with the statement text but never
// the bound values, so row data stays out of the logs.
func (c *CRUD) logExecFailure(ctx context.Context, msg, table, query string, err error) {
	attrs := []any{
		slog.String("query", query),
		slog.String("error", err.Error()),
	}
	if table != "" {
		attrs = append(attrs, slog.String("table", table))
	}
	c.logger.ErrorContext(ctx, "sqlkit: "+msg, attrs...)
}
