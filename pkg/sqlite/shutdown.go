package sqlite

import (
	"context"
	"database/sql"
)

// Shutdown returns a function that closes the database handle.
// Use with anvil.ShutdownHook().
func Shutdown(db *sql.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return db.Close()
	}
}
