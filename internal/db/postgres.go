package db

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"

	"github.com/vergeframework/verge"
	"github.com/vergeframework/verge/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// postgresDialect targets PostgreSQL through the pgx stdlib driver.
type postgresDialect struct{}

func (postgresDialect) Name() string       { return config.EnginePostgres }
func (postgresDialect) DriverName() string { return "pgx" }

func (postgresDialect) DSN(cfg config.Database) (string, error) {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	switch {
	case cfg.User != "" && cfg.Password != "":
		u.User = url.UserPassword(cfg.User, cfg.Password)
	case cfg.User != "":
		u.User = url.User(cfg.User)
	}
	return u.String(), nil
}

func (postgresDialect) Setup(ctx context.Context, db *sql.DB) error {
	return nil
}

func (postgresDialect) TableExistsQuery() string {
	return `SELECT EXISTS (
		SELECT 1 FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_name = $1 AND table_type = 'BASE TABLE'
	)`
}

func (postgresDialect) IndexExistsQuery() string {
	return `SELECT EXISTS (
		SELECT 1 FROM pg_indexes
		WHERE schemaname = current_schema() AND tablename = $1 AND indexname = $2
	)`
}

func (d postgresDialect) CreateTableSQL(m verge.Model) string {
	return buildCreateTable(d, m, "TEXT")
}

func (d postgresDialect) CreateIndexSQL(m verge.Model, f verge.Field) string {
	return buildCreateIndex(d, m, f)
}

func (postgresDialect) ColumnType(f verge.Field) string {
	switch f.Kind {
	case verge.KindText:
		return "TEXT"
	case verge.KindNumber:
		return "BIGINT"
	case verge.KindBoolean:
		return "BOOLEAN"
	case verge.KindDateTime:
		return "TIMESTAMPTZ"
	case verge.KindReference:
		return "TEXT"
	default:
		return "TEXT"
	}
}

// QuoteIdent quotes reserved words and names that contain characters
// invalid in unquoted identifiers; everything else passes through bare.
func (postgresDialect) QuoteIdent(name string) string {
	if pgReservedWords[name] || pgNeedsQuoting(name) {
		return `"` + name + `"`
	}
	return name
}

// pgNeedsQuoting reports whether an identifier needs quoting beyond
// reserved-word checks (uppercase, hyphens, leading digits, etc).
func pgNeedsQuoting(name string) bool {
	for i, r := range name {
		if r >= 'a' && r <= 'z' || r == '_' {
			continue
		}
		if i > 0 && (r >= '0' && r <= '9' || r == '$') {
			continue
		}
		return true
	}
	return false
}

// pgReservedWords are PostgreSQL reserved words that must be quoted as
// identifiers. Model names like User or Order land on them routinely.
var pgReservedWords = map[string]bool{
	"all": true, "analyse": true, "analyze": true, "and": true, "any": true,
	"array": true, "as": true, "asc": true, "authorization": true, "between": true,
	"binary": true, "both": true, "case": true, "cast": true, "check": true,
	"collate": true, "column": true, "constraint": true, "create": true, "cross": true,
	"current_date": true, "current_role": true, "current_time": true,
	"current_timestamp": true, "current_user": true, "default": true, "deferrable": true,
	"desc": true, "distinct": true, "do": true, "else": true, "end": true, "except": true,
	"false": true, "fetch": true, "for": true, "foreign": true, "freeze": true,
	"from": true, "full": true, "grant": true, "group": true, "having": true,
	"ilike": true, "in": true, "initially": true, "inner": true, "intersect": true,
	"into": true, "is": true, "isnull": true, "join": true, "lateral": true,
	"leading": true, "left": true, "like": true, "limit": true, "localtime": true,
	"localtimestamp": true, "natural": true, "not": true, "notnull": true, "null": true,
	"offset": true, "on": true, "only": true, "or": true, "order": true, "outer": true,
	"overlaps": true, "placing": true, "primary": true, "references": true,
	"returning": true, "right": true, "select": true, "session_user": true,
	"similar": true, "some": true, "symmetric": true, "table": true, "then": true,
	"to": true, "trailing": true, "true": true, "union": true, "unique": true,
	"user": true, "using": true, "variadic": true, "verbose": true, "when": true,
	"where": true, "window": true, "with": true,
}
