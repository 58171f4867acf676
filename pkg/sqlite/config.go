package sqlite

import "time"

// Config holds SQLite connection parameters.
type Config struct {
	// Path to the database file, or ":memory:" for an in-memory database.
	Path string `yaml:"path"`

	// BusyTimeout is how long a connection waits on a locked database
	// before giving up.
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// Connection pool limits. SQLite serializes writes, so a small pool
	// is enough; one open connection avoids SQLITE_BUSY entirely for
	// write-heavy workloads.
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
}

// DefaultConfig returns a Config suitable for a single-process service:
// WAL journaling, foreign keys on, a 5 second busy timeout.
func DefaultConfig() Config {
	return Config{
		Path:         ":memory:",
		BusyTimeout:  5 * time.Second,
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	}
}
