package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vergeframework/verge"
	"github.com/vergeframework/verge/internal/config"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// sqliteDialect targets the embedded pure-Go SQLite build. database.name
// is the database file path. This is also the engine the test suite
// runs against.
type sqliteDialect struct{}

func (sqliteDialect) Name() string       { return config.EngineSQLite }
func (sqliteDialect) DriverName() string { return "sqlite3" }

func (sqliteDialect) DSN(cfg config.Database) (string, error) {
	// The driver creates the file but not its directory.
	dir := filepath.Dir(cfg.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create database directory: %w", err)
	}
	return "file:" + cfg.Name, nil
}

// Setup enables WAL for concurrent reads, a busy timeout instead of
// immediate SQLITE_BUSY, and foreign key enforcement.
func (sqliteDialect) Setup(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

func (sqliteDialect) TableExistsQuery() string {
	return `SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?)`
}

func (sqliteDialect) IndexExistsQuery() string {
	return `SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'index' AND tbl_name = ? AND name = ?)`
}

func (d sqliteDialect) CreateTableSQL(m verge.Model) string {
	return buildCreateTable(d, m, "TEXT")
}

func (d sqliteDialect) CreateIndexSQL(m verge.Model, f verge.Field) string {
	return buildCreateIndex(d, m, f)
}

func (sqliteDialect) ColumnType(f verge.Field) string {
	switch f.Kind {
	case verge.KindText:
		return "TEXT"
	case verge.KindNumber:
		return "INTEGER"
	case verge.KindBoolean:
		return "INTEGER"
	case verge.KindDateTime:
		return "TEXT"
	case verge.KindReference:
		return "TEXT"
	default:
		return "TEXT"
	}
}

// QuoteIdent always quotes. SQLite accepts quoted identifiers anywhere,
// and model names like Order land on reserved words routinely.
func (sqliteDialect) QuoteIdent(name string) string {
	return `"` + name + `"`
}
