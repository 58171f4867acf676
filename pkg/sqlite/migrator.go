package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// Migrate applies all pending goose migrations against a SQLite handle.
// The filesystem root must contain the .sql files directly; pass fs.Sub of
// an embed.FS when the files live in a subdirectory.
func Migrate(ctx context.Context, db *sql.DB, migrations fs.FS, migrationTable string, log *slog.Logger) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(slogAdapter{log})
	goose.SetTableName(migrationTable)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return errors.Join(ErrSetDialect, err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}
	return nil
}

// slogAdapter satisfies goose's logger without os.Exit: goose returns the
// error after Fatalf, so error-level logging is enough.
type slogAdapter struct {
	log *slog.Logger
}

func (a slogAdapter) Printf(format string, args ...any) {
	a.log.Info(fmt.Sprintf(format, args...))
}

func (a slogAdapter) Fatalf(format string, args ...any) {
	a.log.Error(fmt.Sprintf(format, args...))
}
