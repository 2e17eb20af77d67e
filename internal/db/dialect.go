package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vergeframework/verge"
	"github.com/vergeframework/verge/internal/config"
)

// Dialect renders the engine-specific half of schema synchronization:
// connection strings, existence queries, and CREATE statements. Conn
// executes what the dialect renders.
type Dialect interface {
	// Name returns the engine name as written in configuration.
	Name() string

	// DriverName returns the registered database/sql driver.
	DriverName() string

	// DSN builds the driver connection string from configuration. The
	// sqlite dialect also creates the database file's directory here.
	DSN(cfg config.Database) (string, error)

	// Setup runs engine session setup on a fresh connection, e.g.
	// sqlite pragmas. May be a no-op.
	Setup(ctx context.Context, db *sql.DB) error

	// TableExistsQuery returns a one-placeholder query (table name)
	// scanning to a boolean. Only real tables count, not views.
	TableExistsQuery() string

	// IndexExistsQuery returns a two-placeholder query (table name,
	// index name) scanning to a boolean.
	IndexExistsQuery() string

	// CreateTableSQL renders the CREATE TABLE statement for a model:
	// an id primary key column followed by one column per declared
	// field, in declaration order.
	CreateTableSQL(m verge.Model) string

	// CreateIndexSQL renders the CREATE INDEX statement for a field on
	// the model's table. Unique fields get a UNIQUE index.
	CreateIndexSQL(m verge.Model, f verge.Field) string

	// ColumnType maps a field to the engine column type.
	ColumnType(f verge.Field) string

	// QuoteIdent returns an identifier form safe to splice into DDL.
	QuoteIdent(name string) string
}

// dialectFor selects the dialect for a configured engine. Engines are
// validated by config before anything connects, so an unknown name here
// is a configuration error, not a connection error.
func dialectFor(engine string) (Dialect, error) {
	switch engine {
	case config.EnginePostgres:
		return postgresDialect{}, nil
	case config.EngineSQLite:
		return sqliteDialect{}, nil
	case config.EngineMySQL:
		return mysqlDialect{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown database engine %q", config.ErrInvalid, engine)
	}
}
