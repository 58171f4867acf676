package sqlite

import (
	"context"
	"database/sql"
	"errors"
)

// Healthcheck returns a readiness probe that pings the SQLite handle, in
// the health.CheckFunc shape WithReadinessCheck expects.
func Healthcheck(db *sql.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		if db == nil {
			return ErrHealthcheckFailed
		}
		if err := db.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
