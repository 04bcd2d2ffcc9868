// Package adapter provides database connectivity for the shell: a small
// adapter interface, a driver registry, and implementations for the
// bundled drivers.
package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Config holds the settings for one connection.
type Config struct {
	// Driver is the registered adapter name (sqlite, postgres, duckdb).
	Driver string

	// DSN is the driver-specific data source name: a file path for
	// sqlite/duckdb, a URL or key=value string for postgres.
	DSN string
}

// Adapter is one live database connection. Implementations register
// themselves with Register in their init functions.
type Adapter interface {
	// Connect opens the connection described by cfg and verifies it
	// with a ping.
	Connect(ctx context.Context, cfg Config) error

	// Close releases the connection.
	Close() error

	// Exec runs a statement that returns no rows and reports the
	// affected row count where the driver knows it.
	Exec(ctx context.Context, stmt string) (int64, error)

	// Query runs a statement that returns rows. The caller closes them.
	Query(ctx context.Context, stmt string) (*sql.Rows, error)

	// Tables lists tables and views visible on the connection.
	Tables(ctx context.Context) (*sql.Rows, error)

	// Columns describes the columns of one table. schema may be empty
	// for drivers without schema qualification.
	Columns(ctx context.Context, schema, table string) (*sql.Rows, error)

	// DialectName names the SQL dialect, used to pick the identifier
	// quoting convention for the lexer.
	DialectName() string
}

// BaseSQLAdapter supplies the database/sql plumbing shared by all
// bundled adapters.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    Config
	Logger *slog.Logger
}

// Close closes the underlying connection pool.
func (b *BaseSQLAdapter) Close() error {
	if b.DB == nil {
		return nil
	}
	err := b.DB.Close()
	b.DB = nil
	return err
}

// Exec runs a statement without result rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, stmt string) (int64, error) {
	if b.DB == nil {
		return 0, ErrNotConnected
	}
	b.logger().Debug("exec", slog.String("stmt", stmt))
	res, err := b.DB.ExecContext(ctx, stmt)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		// Not every driver reports affected rows; that is not a failure.
		return 0, nil
	}
	return affected, nil
}

// Query runs a statement that returns rows.
func (b *BaseSQLAdapter) Query(ctx context.Context, stmt string) (*sql.Rows, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}
	b.logger().Debug("query", slog.String("stmt", stmt))
	return b.DB.QueryContext(ctx, stmt)
}

// open dials the given database/sql driver and pings it.
func (b *BaseSQLAdapter) open(ctx context.Context, driverName, dsn string, cfg Config) error {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s connection: %w", driverName, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping %s: %w", driverName, err)
	}
	b.DB = db
	b.Cfg = cfg
	return nil
}

func (b *BaseSQLAdapter) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}
