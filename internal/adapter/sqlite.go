package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // sqlite driver
)

// SQLiteAdapter connects to SQLite database files.
type SQLiteAdapter struct {
	BaseSQLAdapter
}

func init() {
	Register("sqlite", func(logger *slog.Logger) Adapter {
		return &SQLiteAdapter{BaseSQLAdapter{Logger: logger}}
	})
}

// DialectName returns the SQL dialect for this adapter.
func (a *SQLiteAdapter) DialectName() string {
	return "sqlite"
}

// Connect opens the SQLite file named by cfg.DSN, or an in-memory
// database for ":memory:" and the empty string.
func (a *SQLiteAdapter) Connect(ctx context.Context, cfg Config) error {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = ":memory:"
	}
	return a.open(ctx, "sqlite", dsn, cfg)
}

// Tables lists tables and views from sqlite_master.
func (a *SQLiteAdapter) Tables(ctx context.Context) (*sql.Rows, error) {
	return a.Query(ctx, `
		SELECT name, type FROM sqlite_master
		WHERE type IN ('table', 'view')
		AND name NOT LIKE 'sqlite_%'
		ORDER BY type, name`)
}

// Columns describes a table via PRAGMA table_info. SQLite has no schema
// qualification, so schema is ignored.
func (a *SQLiteAdapter) Columns(ctx context.Context, _, table string) (*sql.Rows, error) {
	if a.DB == nil {
		return nil, ErrNotConnected
	}
	// PRAGMA arguments cannot be bound; quote the identifier instead.
	return a.DB.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
}
