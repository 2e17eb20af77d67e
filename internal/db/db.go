// Package db owns the live database connection and the engine-specific
// schema statements behind verge sync-db.
//
// A Conn wraps database/sql with the Dialect for the configured engine.
// Three engines are supported: postgres (pgx), sqlite (embedded, pure
// Go), and mysql. The dialect renders existence queries and CREATE
// statements; Conn executes them. Nothing here decides sync outcomes;
// that policy lives in internal/sync.
//
// The connection pool is pinned to a single connection: schema sync
// issues DDL strictly sequentially, and the statements of a run must
// observe each other.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vergeframework/verge"
	"github.com/vergeframework/verge/internal/config"
)

// Conn is a live connection to the configured database.
// The caller MUST call Close() when done.
type Conn struct {
	sql     *sql.DB
	dialect Dialect
}

// Open connects to the database described by cfg and verifies the
// connection with a ping. Any failure is reported as ErrConnect with the
// driver cause attached; the caller treats it as fatal for the run.
//
// The ctx deadline, if any, bounds connection establishment. No retry is
// attempted.
//
// Example:
//
//	conn, err := db.Open(ctx, settings.Database)
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
func Open(ctx context.Context, cfg config.Database) (*Conn, error) {
	dialect, err := dialectFor(cfg.Engine)
	if err != nil {
		return nil, err
	}

	dsn, err := dialect.DSN(cfg)
	if err != nil {
		return nil, connectError("build dsn", err)
	}

	conn, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, connectError("open "+cfg.Engine, err)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, connectError("ping "+cfg.Engine, err)
	}

	// One connection, owned exclusively by the sync run.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := dialect.Setup(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, connectError("setup "+cfg.Engine, err)
	}

	return &Conn{sql: conn, dialect: dialect}, nil
}

// Close closes the database connection.
func (c *Conn) Close() error {
	if c.sql == nil {
		return nil
	}
	if err := c.sql.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	c.sql = nil
	return nil
}

// RawDB returns the underlying sql.DB connection.
// This is useful for integrating with other libraries that expect *sql.DB.
func (c *Conn) RawDB() *sql.DB {
	return c.sql
}

// Dialect returns the engine dialect the connection was opened with.
func (c *Conn) Dialect() Dialect {
	return c.dialect
}

// TableExists reports whether a table with the given name exists.
// Views and other non-table objects occupying the name do not count;
// creating over them is expected to fail and be reported per model.
func (c *Conn) TableExists(ctx context.Context, table string) (bool, error) {
	var exists bool
	err := c.sql.QueryRowContext(ctx, c.dialect.TableExistsQuery(), table).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check table %s: %w", table, err)
	}
	return exists, nil
}

// IndexExists reports whether a secondary index with the given name
// exists on the table.
func (c *Conn) IndexExists(ctx context.Context, table, index string) (bool, error) {
	var exists bool
	err := c.sql.QueryRowContext(ctx, c.dialect.IndexExistsQuery(), table, index).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check index %s on %s: %w", index, table, err)
	}
	return exists, nil
}

// CreateTable issues the CREATE TABLE statement for the model.
func (c *Conn) CreateTable(ctx context.Context, m verge.Model) error {
	ddl := c.dialect.CreateTableSQL(m)
	if _, err := c.sql.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", verge.TableName(m), err)
	}
	return nil
}

// CreateIndex issues the CREATE INDEX statement for the field on the
// model's table.
func (c *Conn) CreateIndex(ctx context.Context, m verge.Model, f verge.Field) error {
	ddl := c.dialect.CreateIndexSQL(m, f)
	if _, err := c.sql.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create index %s on %s: %w", verge.IndexName(f), verge.TableName(m), err)
	}
	return nil
}
