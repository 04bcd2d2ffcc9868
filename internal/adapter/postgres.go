package adapter

import (
	"context"
	"database/sql"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
)

// PostgresAdapter connects to PostgreSQL via the pgx stdlib driver.
type PostgresAdapter struct {
	BaseSQLAdapter
}

func init() {
	Register("postgres", func(logger *slog.Logger) Adapter {
		return &PostgresAdapter{BaseSQLAdapter{Logger: logger}}
	})
}

// DialectName returns the SQL dialect for this adapter.
func (a *PostgresAdapter) DialectName() string {
	return "postgres"
}

// Connect opens a PostgreSQL connection. cfg.DSN accepts both URL and
// key=value forms.
func (a *PostgresAdapter) Connect(ctx context.Context, cfg Config) error {
	return a.open(ctx, "pgx", cfg.DSN, cfg)
}

// Tables lists tables and views from information_schema, excluding the
// system catalogs.
func (a *PostgresAdapter) Tables(ctx context.Context) (*sql.Rows, error) {
	return a.Query(ctx, `
		SELECT table_schema, table_name, table_type
		FROM information_schema.tables
		WHERE table_schema NOT IN ('pg_catalog', 'information_schema')
		ORDER BY table_schema, table_name`)
}

// Columns describes a table from information_schema.columns. An empty
// schema means the public schema.
func (a *PostgresAdapter) Columns(ctx context.Context, schema, table string) (*sql.Rows, error) {
	if a.DB == nil {
		return nil, ErrNotConnected
	}
	if schema == "" {
		schema = "public"
	}
	return a.DB.QueryContext(ctx, `
		SELECT column_name, data_type, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position`, schema, table)
}
