package sqlite

import "errors"

var (
	ErrFailedToOpenDatabase = errors.New("sqlite: failed to open database")
	ErrHealthcheckFailed    = errors.New("sqlite: healthcheck failed")
	ErrSetDialect           = errors.New("sqlite: failed to set migration dialect")
	ErrApplyMigrations      = errors.New("sqlite: failed to apply migrations")
)
