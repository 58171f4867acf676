package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Shutdown adapts pool closing to the hook shape Run expects, so the pool
// drains after the listener stops taking requests.
//
// Example:
//
//	err := app.Run(":8080",
//	    anvil.ShutdownHook(db.Shutdown(pool)),
//	)
func Shutdown(pool *pgxpool.Pool) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		pool.Close()
		return nil
	}
}
