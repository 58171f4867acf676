package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	_ "github.com/mattn/go-sqlite3"
)

// Connect opens a SQLite database with WAL journaling and foreign key
// enforcement enabled through the DSN. The connection is verified with a
// ping before it is returned.
func Connect(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", buildDSN(cfg))
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDatabase, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrFailedToOpenDatabase, err)
	}

	return db, nil
}

// buildDSN encodes pragmas as go-sqlite3 connection string parameters so
// every pooled connection gets them, not just the first.
func buildDSN(cfg Config) string {
	params := url.Values{}
	params.Set("_journal_mode", "WAL")
	params.Set("_foreign_keys", "on")
	if cfg.BusyTimeout > 0 {
		params.Set("_busy_timeout", fmt.Sprintf("%d", cfg.BusyTimeout.Milliseconds()))
	}
	return "file:" + cfg.Path + "?" + params.Encode()
}
