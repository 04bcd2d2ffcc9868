package adapter

import (
	"context"
	"database/sql"
	"log/slog"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// DuckDBAdapter connects to DuckDB database files.
type DuckDBAdapter struct {
	BaseSQLAdapter
}

func init() {
	Register("duckdb", func(logger *slog.Logger) Adapter {
		return &DuckDBAdapter{BaseSQLAdapter{Logger: logger}}
	})
}

// DialectName returns the SQL dialect for this adapter.
func (a *DuckDBAdapter) DialectName() string {
	return "duckdb"
}

// Connect opens the DuckDB file named by cfg.DSN, or an in-memory
// database for the empty string.
func (a *DuckDBAdapter) Connect(ctx context.Context, cfg Config) error {
	return a.open(ctx, "duckdb", cfg.DSN, cfg)
}

// Tables lists tables and views from information_schema.
func (a *DuckDBAdapter) Tables(ctx context.Context) (*sql.Rows, error) {
	return a.Query(ctx, `
		SELECT table_schema, table_name, table_type
		FROM information_schema.tables
		ORDER BY table_schema, table_name`)
}

// Columns describes a table from information_schema.columns.
func (a *DuckDBAdapter) Columns(ctx context.Context, schema, table string) (*sql.Rows, error) {
	if a.DB == nil {
		return nil, ErrNotConnected
	}
	if schema == "" {
		schema = "main"
	}
	return a.DB.QueryContext(ctx, `
		SELECT column_name, data_type, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position`, schema, table)
}
